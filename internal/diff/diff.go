// Package diff compares two extracted term-list snapshots and reports
// duplicate labels within a snapshot.
//
// Diff equality is by identifier only: a record whose identifier survives
// between snapshots is "unchanged" even if its label was renamed.
package diff

import (
	"github.com/neurobagel/vocab-handling/internal/terms"
)

// Diff partitions the two lists by identifier membership: every record whose
// identifier is absent from the other list. Empty inputs yield empty results.
func Diff(old, new []terms.Term) (oldOnly, newOnly []terms.Term) {
	oldIDs := identifierSet(old)
	newIDs := identifierSet(new)

	for _, t := range old {
		if !newIDs[t.Identifier] {
			oldOnly = append(oldOnly, t)
		}
	}
	for _, t := range new {
		if !oldIDs[t.Identifier] {
			newOnly = append(newOnly, t)
		}
	}
	return oldOnly, newOnly
}

// Duplicates reports every label occurring more than once, counting raw
// record occurrences. Two records sharing a label under distinct identifiers
// count as a duplicate of 2; so do two records sharing both identifier and
// label, since the count is over records, not distinct identifiers.
func Duplicates(records []terms.Term) map[string]int {
	counts := make(map[string]int, len(records))
	for _, t := range records {
		counts[t.Label]++
	}

	dupes := make(map[string]int)
	for label, count := range counts {
		if count > 1 {
			dupes[label] = count
		}
	}
	return dupes
}

func identifierSet(records []terms.Term) map[string]bool {
	ids := make(map[string]bool, len(records))
	for _, t := range records {
		ids[t.Identifier] = true
	}
	return ids
}
