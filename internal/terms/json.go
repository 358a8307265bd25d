package terms

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSON writes the term list as a two-space indented JSON array,
// creating parent directories as needed. An empty list writes "[]", not
// "null".
func WriteJSON(path string, records []Term) error {
	if records == nil {
		records = []Term{}
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal term list: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write term list %q: %w", path, err)
	}
	return nil
}

// ReadJSON loads a previously written term list.
func ReadJSON(path string) ([]Term, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read term list %q: %w", path, err)
	}
	var records []Term
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse term list %q: %w", path, err)
	}
	return records, nil
}
