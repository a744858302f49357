package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// sortedSections are the package.json objects whose keys are sorted.
var sortedSections = map[string]bool{
	"dependencies":    true,
	"devDependencies": true,
}

// SortDependencies rewrites the package.json at path with its dependency
// maps sorted by name. The order of every other top-level key is kept. A
// missing file is not an error.
func SortDependencies(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	out, err := sortPackageJSON(data)
	if err != nil {
		return false, fmt.Errorf("sorting %s: %w", path, err)
	}
	if bytes.Equal(out, data) {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// sortPackageJSON returns data re-encoded with two-space indentation and
// sorted dependency sections.
func sortPackageJSON(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("top level is not an object")
	}

	var obj bytes.Buffer
	obj.WriteByte('{')
	for first := true; dec.More(); first = false {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding %q: %w", key, err)
		}

		if sortedSections[key] {
			if raw, err = sortObject(raw); err != nil {
				return nil, fmt.Errorf("%q: %w", key, err)
			}
		}

		if !first {
			obj.WriteByte(',')
		}
		k, err := encode(key)
		if err != nil {
			return nil, err
		}
		obj.Write(k)
		obj.WriteByte(':')
		obj.Write(raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after top-level object")
	}
	obj.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, obj.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// sortObject re-encodes a JSON object with its keys in sorted order.
func sortObject(raw json.RawMessage) (json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return raw, nil
	}
	// encoding/json writes map keys in sorted order.
	return encode(m)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
