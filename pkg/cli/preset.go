package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/Fepozopo/grade/pkg/grade"
)

// LoadPreset reads a TOML preset. Keys missing from the file keep their
// neutral value; unknown keys and out-of-range values are errors.
func LoadPreset(path string) (grade.Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return grade.Settings{}, fmt.Errorf("read preset: %w", err)
	}
	s := grade.Defaults()
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return grade.Settings{}, fmt.Errorf("parse preset %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return grade.Settings{}, fmt.Errorf("preset %s: %w", path, err)
	}
	return s, nil
}

// SavePreset writes s as a TOML preset.
func SavePreset(path string, s grade.Settings) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	return nil
}
