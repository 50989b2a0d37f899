package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"email-agent/internal/logger"
)

// Store persists the editable template set to a JSON file. Every operation
// re-reads the file, so concurrent writers are last-write-wins at the file
// level; there is no lock.
type Store struct {
	path   string
	logger *logger.Logger
}

func NewStore(path string, logger *logger.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load returns the persisted template set. A missing or unreadable file
// yields the defaults; a readable file missing individual keys has only
// those keys backfilled from the defaults.
func (s *Store) Load() Set {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read prompts file, using defaults:", err)
		}
		return Defaults()
	}

	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		s.logger.Warn("Invalid prompts file, using defaults:", err)
		return Defaults()
	}

	for _, key := range Keys {
		if _, ok := set[key]; !ok {
			set[key] = defaults[key]
		}
	}
	return set
}

// Save writes the full set, overwriting any prior content.
func (s *Store) Save(set Set) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create prompts directory: %w", err)
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode prompts: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write prompts file: %w", err)
	}
	return nil
}

// Get returns a single template by key.
func (s *Store) Get(key string) string {
	return s.Load()[key]
}

// Update replaces one template and persists the full set.
func (s *Store) Update(key, text string) error {
	if !ValidKey(key) {
		return fmt.Errorf("unknown prompt key %q", key)
	}
	set := s.Load()
	set[key] = text
	return s.Save(set)
}

// Reset persists the built-in defaults verbatim.
func (s *Store) Reset() error {
	return s.Save(Defaults())
}
