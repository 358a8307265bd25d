// Package terms turns filtered concept rows into the namespaced term records
// emitted as the vocabulary JSON. All transformations are pure slice-in,
// slice-out functions over immutable inputs.
package terms

import (
	"github.com/neurobagel/vocab-handling/internal/athena"
)

// Term is one output record: a namespaced identifier and its display label.
type Term struct {
	Identifier string `json:"identifier"`
	Label      string `json:"label"`
}

// Filter keeps concepts that are in the candidate set, flagged standard, and
// not invalidated. The invalid_reason check is redundant for standard
// concepts in OHDSI vocabularies but kept explicit. A non-empty domain
// restricts rows to that domain_id exactly.
func Filter(concepts []athena.Concept, candidates map[int64]bool, domain string) []athena.Concept {
	var kept []athena.Concept
	for _, c := range concepts {
		if !candidates[c.ID] {
			continue
		}
		if c.StandardConcept != "S" {
			continue
		}
		if c.InvalidReason != "" {
			continue
		}
		if domain != "" && c.DomainID != domain {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// Structure projects concept rows to term records, prefixing each code with
// the namespace.
func Structure(concepts []athena.Concept, namespace string) []Term {
	out := make([]Term, 0, len(concepts))
	for _, c := range concepts {
		out = append(out, Term{
			Identifier: namespace + ":" + c.Code,
			Label:      c.Name,
		})
	}
	return out
}

// MergeAdditions unions externally supplied terms into the extracted list and
// de-duplicates identifiers, first occurrence winning. Extracted terms come
// first, so an addition never overrides an extracted term with the same code.
func MergeAdditions(extracted []Term, additions []athena.Addition, namespace string) []Term {
	merged := make([]Term, 0, len(extracted)+len(additions))
	merged = append(merged, extracted...)
	for _, a := range additions {
		merged = append(merged, Term{
			Identifier: namespace + ":" + a.Code,
			Label:      a.Name,
		})
	}
	return Dedupe(merged)
}

// Dedupe removes records with repeated identifiers, keeping the first
// occurrence and preserving order.
func Dedupe(records []Term) []Term {
	seen := make(map[string]bool, len(records))
	out := make([]Term, 0, len(records))
	for _, t := range records {
		if seen[t.Identifier] {
			continue
		}
		seen[t.Identifier] = true
		out = append(out, t)
	}
	return out
}
