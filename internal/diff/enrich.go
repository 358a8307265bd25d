package diff

import (
	"fmt"
	"strings"

	"github.com/neurobagel/vocab-handling/internal/athena"
	"github.com/neurobagel/vocab-handling/internal/terms"
)

// EnrichValidity joins term records back to the concept table by code and
// renders a TSV with validity metadata. The join is by the identifier with
// its namespace prefix stripped; codes that no longer exist in the concept
// table get blank validity columns.
func EnrichValidity(records []terms.Term, concepts []athena.Concept) string {
	byCode := make(map[string]athena.Concept, len(concepts))
	for _, c := range concepts {
		byCode[c.Code] = c
	}

	var buf strings.Builder
	buf.WriteString("identifier\tlabel\tvalid_end_date\tinvalid_reason\n")
	for _, t := range records {
		code := stripNamespace(t.Identifier)
		c := byCode[code]
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%s\n",
			t.Identifier, t.Label, c.ValidEndDate, c.InvalidReason))
	}
	return buf.String()
}

func stripNamespace(identifier string) string {
	if i := strings.Index(identifier, ":"); i >= 0 {
		return identifier[i+1:]
	}
	return identifier
}
