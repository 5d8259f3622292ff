package descriptor

import (
	"bytes"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// MarshalJSON renders the descriptor tree as indented JSON. Validation and
// prepare functions are dropped.
func MarshalJSON(s *Schema) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// MarshalYAML renders the descriptor tree as YAML.
func MarshalYAML(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
