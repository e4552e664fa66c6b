package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// readObjects reads a JSON file holding one object or an array of objects.
// Numbers stay json.Number so integers are sent back unchanged.
func readObjects(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	trimmed := bytes.TrimSpace(data)
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var objects []map[string]any
		if err := dec.Decode(&objects); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return objects, nil
	}

	var object map[string]any
	if err := dec.Decode(&object); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if object == nil {
		return nil, fmt.Errorf("decode %s: expected a JSON object", path)
	}
	return []map[string]any{object}, nil
}
