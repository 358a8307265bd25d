package terms

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteJSON_ReadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "terms.json")
	records := []Term{
		{Identifier: "snomed:111", Label: "Fever"},
		{Identifier: "snomed:222", Label: "Headache"},
	}

	if err := WriteJSON(path, records); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	loaded, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(loaded))
	}
	if loaded[0] != records[0] || loaded[1] != records[1] {
		t.Errorf("Round trip mismatch: %+v", loaded)
	}
}

func TestWriteJSON_EmptyListWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := WriteJSON(path, nil); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Expected empty JSON array, got %q", string(data))
	}
}
