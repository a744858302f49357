package answers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Decode parses a YAML (or JSON, which is valid YAML) mapping of answers.
func Decode(data []byte) (map[string]Value, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing answers: %w", err)
	}
	out := make(map[string]Value, len(raw))
	for k, v := range raw {
		val, err := FromInterface(v)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", k, err)
		}
		out[k] = val
	}
	return out, nil
}

// LoadFile reads an answers file. Supported extensions are .yaml, .yml, and
// .json.
func LoadFile(path string) (map[string]Value, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("answers file %s: unsupported extension (want .yaml, .yml, or .json)", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file %s: %w", path, err)
	}
	vals, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vals, nil
}
