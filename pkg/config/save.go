package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// With returns a new Settings with the dotted key set to value. The
// receiver is left untouched; intermediate maps are created as needed.
// Fails if a path segment addresses into a non-map value.
func (s *Settings) With(key string, value any) (*Settings, error) {
	keys := strings.Split(key, ".")
	out := merge(s.values, nil)

	current := out
	for _, k := range keys[:len(keys)-1] {
		next, ok := current[k]
		if !ok {
			m := make(map[string]any)
			current[k] = m
			current = m
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cannot navigate to %s: %q is not a map", key, k)
		}
		// Copy-on-write: merge gives a fresh top level only.
		copied := merge(m, nil)
		current[k] = copied
		current = copied
	}
	current[keys[len(keys)-1]] = value
	return &Settings{values: out}, nil
}

// SaveFile writes the settings as YAML via a temp file and atomic rename,
// so a crash mid-write never leaves a truncated settings file.
func (s *Settings) SaveFile(path string) error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing settings file: %w", err)
	}
	return nil
}
