package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/neurobagel/vocab-handling/internal/athena"
	"github.com/neurobagel/vocab-handling/internal/config"
	"github.com/neurobagel/vocab-handling/internal/diff"
	"github.com/neurobagel/vocab-handling/internal/observability"
	"github.com/neurobagel/vocab-handling/internal/terms"
)

type CompareResult struct {
	OldOnly         int
	NewOnly         int
	DuplicateLabels int
	Artifacts       []string
}

// Compare diffs the term lists under <dir>/old and <dir>/new and reports
// duplicate labels in the new list. Artifacts are only written when
// non-empty, matching the shape of a clean comparison: no files, no noise.
func Compare(cfg *config.Config, dir string) (CompareResult, error) {
	oldPath, err := findVocabFile(filepath.Join(dir, cfg.Diff.OldDir), cfg.Diff.Include)
	if err != nil {
		return CompareResult{}, err
	}
	newPath, err := findVocabFile(filepath.Join(dir, cfg.Diff.NewDir), cfg.Diff.Include)
	if err != nil {
		return CompareResult{}, err
	}

	oldTerms, err := terms.ReadJSON(oldPath)
	if err != nil {
		return CompareResult{}, err
	}
	newTerms, err := terms.ReadJSON(newPath)
	if err != nil {
		return CompareResult{}, err
	}

	slog.Info("comparing snapshots", "old", oldPath, "new", newPath,
		"old_terms", len(oldTerms), "new_terms", len(newTerms))

	oldOnly, newOnly := diff.Diff(oldTerms, newTerms)
	duplicates := diff.Duplicates(newTerms)
	observability.DuplicateLabels.Set(float64(len(duplicates)))

	result := CompareResult{
		OldOnly:         len(oldOnly),
		NewOnly:         len(newOnly),
		DuplicateLabels: len(duplicates),
	}

	if len(oldOnly) > 0 {
		path := filepath.Join(dir, "old_terms_unique.json")
		if err := terms.WriteJSON(path, oldOnly); err != nil {
			return CompareResult{}, err
		}
		result.Artifacts = append(result.Artifacts, path)

		// Old-only terms are usually retirements; join validity metadata
		// back from the concept table to show why each term dropped out.
		concepts, err := athena.LoadConcepts(cfg.Paths.ConceptTable)
		if err != nil {
			return CompareResult{}, err
		}
		tsvPath := filepath.Join(dir, "old_terms_unique.tsv")
		if err := os.WriteFile(tsvPath, []byte(diff.EnrichValidity(oldOnly, concepts)), 0o644); err != nil {
			return CompareResult{}, fmt.Errorf("write validity report %q: %w", tsvPath, err)
		}
		result.Artifacts = append(result.Artifacts, tsvPath)
	}

	if len(newOnly) > 0 {
		path := filepath.Join(dir, "new_terms_unique.json")
		if err := terms.WriteJSON(path, newOnly); err != nil {
			return CompareResult{}, err
		}
		result.Artifacts = append(result.Artifacts, path)
	}

	if len(duplicates) > 0 {
		path := filepath.Join(dir, "new_term_duplicates.json")
		if err := writeJSONMap(path, duplicates); err != nil {
			return CompareResult{}, err
		}
		result.Artifacts = append(result.Artifacts, path)
	}

	return result, nil
}

// findVocabFile locates the single vocabulary JSON in a snapshot directory.
// With more than one match the lexicographically first is used, with a
// warning.
func findVocabFile(dir, pattern string) (string, error) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid include pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read snapshot directory %q: %w", dir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matcher.Match(entry.Name()) {
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("no vocabulary file matching %q in %q", pattern, dir)
	}
	sort.Strings(matches)
	if len(matches) > 1 {
		slog.Warn("multiple vocabulary files match, using first", "dir", dir, "using", matches[0])
	}
	return matches[0], nil
}

func writeJSONMap(path string, m map[string]int) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal duplicate report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write duplicate report %q: %w", path, err)
	}
	return nil
}
