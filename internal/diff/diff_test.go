package diff

import (
	"strings"
	"testing"

	"github.com/neurobagel/vocab-handling/internal/athena"
	"github.com/neurobagel/vocab-handling/internal/terms"
)

func TestDiff_PartitionsByIdentifier(t *testing.T) {
	old := []terms.Term{
		{Identifier: "a", Label: "A"},
		{Identifier: "b", Label: "B"},
	}
	new := []terms.Term{
		{Identifier: "b", Label: "B"},
		{Identifier: "c", Label: "C"},
	}

	oldOnly, newOnly := Diff(old, new)

	if len(oldOnly) != 1 || oldOnly[0].Identifier != "a" {
		t.Errorf("Expected old-only [a], got %+v", oldOnly)
	}
	if len(newOnly) != 1 || newOnly[0].Identifier != "c" {
		t.Errorf("Expected new-only [c], got %+v", newOnly)
	}
}

func TestDiff_LabelRenameIsInvisible(t *testing.T) {
	old := []terms.Term{{Identifier: "a", Label: "Old label"}}
	new := []terms.Term{{Identifier: "a", Label: "New label"}}

	oldOnly, newOnly := Diff(old, new)
	if len(oldOnly) != 0 || len(newOnly) != 0 {
		t.Errorf("Label-only rename must not appear in diff, got %+v / %+v", oldOnly, newOnly)
	}
}

func TestDiff_EmptyInputs(t *testing.T) {
	oldOnly, newOnly := Diff(nil, nil)
	if len(oldOnly) != 0 || len(newOnly) != 0 {
		t.Errorf("Expected empty results, got %+v / %+v", oldOnly, newOnly)
	}

	oldOnly, newOnly = Diff(nil, []terms.Term{{Identifier: "a"}})
	if len(oldOnly) != 0 || len(newOnly) != 1 {
		t.Errorf("Expected all-new result, got %+v / %+v", oldOnly, newOnly)
	}
}

func TestDuplicates_CountsRawOccurrences(t *testing.T) {
	records := []terms.Term{
		{Identifier: "1", Label: "X"},
		{Identifier: "2", Label: "X"},
		{Identifier: "3", Label: "Y"},
	}

	dupes := Duplicates(records)
	if len(dupes) != 1 {
		t.Fatalf("Expected 1 duplicate label, got %d: %v", len(dupes), dupes)
	}
	if dupes["X"] != 2 {
		t.Errorf("Expected X count 2, got %d", dupes["X"])
	}
}

func TestDuplicates_RepeatedIdentifiersStillCount(t *testing.T) {
	// Two records sharing an identifier count as two occurrences of the
	// label, not one.
	records := []terms.Term{
		{Identifier: "1", Label: "X"},
		{Identifier: "1", Label: "X"},
	}

	dupes := Duplicates(records)
	if dupes["X"] != 2 {
		t.Errorf("Expected X count 2, got %d", dupes["X"])
	}
}

func TestDuplicates_Empty(t *testing.T) {
	if dupes := Duplicates(nil); len(dupes) != 0 {
		t.Errorf("Expected no duplicates, got %v", dupes)
	}
}

func TestEnrichValidity_JoinsByCode(t *testing.T) {
	records := []terms.Term{
		{Identifier: "snomed:111", Label: "Retired term"},
		{Identifier: "snomed:404", Label: "Vanished term"},
	}
	concepts := []athena.Concept{
		{ID: 10, Code: "111", ValidEndDate: "20200101", InvalidReason: "D"},
	}

	tsv := EnrichValidity(records, concepts)
	lines := strings.Split(strings.TrimRight(tsv, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "identifier\tlabel\tvalid_end_date\tinvalid_reason" {
		t.Errorf("Unexpected header: %q", lines[0])
	}
	if lines[1] != "snomed:111\tRetired term\t20200101\tD" {
		t.Errorf("Unexpected joined row: %q", lines[1])
	}
	if lines[2] != "snomed:404\tVanished term\t\t" {
		t.Errorf("Expected blank validity columns for unknown code, got %q", lines[2])
	}
}
