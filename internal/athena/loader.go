package athena

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	verrors "github.com/neurobagel/vocab-handling/internal/errors"
	"github.com/neurobagel/vocab-handling/internal/observability"
)

// isARelationship is the only relationship kind retained from the
// relationship table. Everything else (mappings, replacements, attribute
// links) is irrelevant to the hierarchy.
const isARelationship = "Is a"

// LoadRelationships reads the CONCEPT_RELATIONSHIP table and keeps only the
// hierarchical "Is a" rows, with concept_id_1 as the child and concept_id_2
// as the parent.
func LoadRelationships(path string) ([]Relationship, error) {
	slog.Info("loading relationship table", "path", path)
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, verrors.Wrap(err, verrors.CodeNotFound, "open relationship table")
	}
	defer f.Close()

	r := newTSVReader(f)
	cols, err := readHeader(r, path, "concept_id_1", "concept_id_2", "relationship_id")
	if err != nil {
		return nil, err
	}

	progress := newProgressReporter("relationship table")
	var rels []Relationship
	row := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(err, path, row)
		}
		row++
		progress.Observe(row)

		if record[cols["relationship_id"]] != isARelationship {
			continue
		}
		child, err := strconv.ParseInt(record[cols["concept_id_1"]], 10, 64)
		if err != nil {
			return nil, parseError(fmt.Errorf("concept_id_1: %w", err), path, row)
		}
		parent, err := strconv.ParseInt(record[cols["concept_id_2"]], 10, 64)
		if err != nil {
			return nil, parseError(fmt.Errorf("concept_id_2: %w", err), path, row)
		}
		rels = append(rels, Relationship{ChildID: child, ParentID: parent})
	}

	observability.TableLoadDuration.WithLabelValues("relationship").Observe(time.Since(start).Seconds())
	observability.TableRowsLoaded.WithLabelValues("relationship").Set(float64(len(rels)))
	slog.Info("relationship table loaded", "is_a_rows", len(rels), "duration", time.Since(start))
	return rels, nil
}

// LoadConcepts reads the CONCEPT table in full.
func LoadConcepts(path string) ([]Concept, error) {
	slog.Info("loading concept table", "path", path)
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, verrors.Wrap(err, verrors.CodeNotFound, "open concept table")
	}
	defer f.Close()

	r := newTSVReader(f)
	cols, err := readHeader(r, path,
		"concept_id", "concept_code", "concept_name", "domain_id", "standard_concept", "invalid_reason")
	if err != nil {
		return nil, err
	}
	// valid_end_date is only needed for diff enrichment; tolerate exports
	// that omit it.
	endDateCol, hasEndDate := cols["valid_end_date"]

	progress := newProgressReporter("concept table")
	var concepts []Concept
	row := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(err, path, row)
		}
		row++
		progress.Observe(row)

		id, err := strconv.ParseInt(record[cols["concept_id"]], 10, 64)
		if err != nil {
			return nil, parseError(fmt.Errorf("concept_id: %w", err), path, row)
		}
		c := Concept{
			ID:              id,
			Code:            record[cols["concept_code"]],
			Name:            record[cols["concept_name"]],
			DomainID:        record[cols["domain_id"]],
			StandardConcept: record[cols["standard_concept"]],
			InvalidReason:   record[cols["invalid_reason"]],
		}
		if hasEndDate {
			c.ValidEndDate = record[endDateCol]
		}
		concepts = append(concepts, c)
	}

	observability.TableLoadDuration.WithLabelValues("concept").Observe(time.Since(start).Seconds())
	observability.TableRowsLoaded.WithLabelValues("concept").Set(float64(len(concepts)))
	slog.Info("concept table loaded", "rows", len(concepts), "duration", time.Since(start))
	return concepts, nil
}

// LoadAdditions reads an add-terms table: concept_code and concept_name only.
func LoadAdditions(path string) ([]Addition, error) {
	slog.Info("loading additional terms", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, verrors.Wrap(err, verrors.CodeNotFound, "open add-terms table")
	}
	defer f.Close()

	r := newTSVReader(f)
	cols, err := readHeader(r, path, "concept_code", "concept_name")
	if err != nil {
		return nil, err
	}

	var additions []Addition
	row := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(err, path, row)
		}
		row++
		additions = append(additions, Addition{
			Code: record[cols["concept_code"]],
			Name: record[cols["concept_name"]],
		})
	}

	slog.Info("additional terms loaded", "rows", len(additions))
	return additions, nil
}

// newTSVReader configures a csv.Reader for Athena exports: tab-separated,
// no quoting rules applied to embedded quotes in concept names.
func newTSVReader(f io.Reader) *csv.Reader {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.ReuseRecord = false
	return r
}

// readHeader reads the header row and maps the required column names to
// their positions. A missing column is fatal.
func readHeader(r *csv.Reader, path string, required ...string) (map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		return nil, verrors.AddContext(
			verrors.Wrap(err, verrors.CodeParseError, "read header row"),
			verrors.CtxPath, path)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, verrors.AddContext(
				verrors.New(verrors.CodeParseError, fmt.Sprintf("missing required column %q", name)),
				verrors.CtxPath, path)
		}
	}
	return cols, nil
}

func parseError(err error, path string, row int) error {
	e := verrors.Wrap(err, verrors.CodeParseError, "parse row")
	e = verrors.AddContext(e, verrors.CtxPath, path)
	return verrors.AddContext(e, verrors.CtxRow, row)
}
