// Package athena loads OHDSI Athena vocabulary snapshot tables.
//
// All tables are tab-separated text with a header row. Fields are read as
// text; a value that is absent in the export is an empty string, never null.
package athena

// Concept is one row of the CONCEPT table. ID is the graph-node key;
// Code is the externally stable identifier emitted in term lists.
type Concept struct {
	ID              int64
	Code            string
	Name            string
	DomainID        string
	StandardConcept string
	InvalidReason   string
	ValidEndDate    string
}

// Relationship is one retained row of the CONCEPT_RELATIONSHIP table:
// ChildID is-a ParentID.
type Relationship struct {
	ChildID  int64
	ParentID int64
}

// Addition is one row of an add-terms table: a term to union into the
// extracted list.
type Addition struct {
	Code string
	Name string
}
