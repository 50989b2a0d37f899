// Package jsonx recovers JSON values from text that may contain surrounding
// non-JSON prose, the usual shape of model output.
package jsonx

import (
	"encoding/json"
	"errors"
	"strings"
)

// DecodeArray decodes the first bracketed span of raw (greedy, from the
// first '[' to the last ']') into v. If no span exists or the span is not
// valid JSON, the whole trimmed text is tried instead. Callers supply their
// own default on error; DecodeArray never partially fills v on failure
// because json.Unmarshal into a slice replaces it wholesale.
func DecodeArray(raw string, v interface{}) error {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), v); err == nil {
			return nil
		}
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return errors.New("empty input")
	}
	return json.Unmarshal([]byte(trimmed), v)
}
