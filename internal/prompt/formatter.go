package prompt

import (
	"regexp"
	"strings"
)

// Placeholders look like {subject}. Literal braces elsewhere in a template
// (the JSON example in the extraction prompt) never match this pattern.
var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Format renders the template for key with the supplied variables. A
// placeholder with no matching variable is left in place and logged rather
// than failing the operation; variables the template never references are
// ignored.
func (s *Store) Format(key string, vars map[string]string) string {
	tmpl := s.Get(key)

	var missing []string
	out := placeholderPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[1 : len(m)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		missing = append(missing, name)
		return m
	})

	if len(missing) > 0 {
		s.logger.Warn("Missing variables in prompt", key+":", strings.Join(missing, ", "))
	}
	return out
}
