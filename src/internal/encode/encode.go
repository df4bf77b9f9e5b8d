// Package encode turns command names and logical field values into the
// transport parameter set the tracker API expects.
package encode

import (
	"net/url"
	"strings"

	"github.com/fogz-io/fogz/src/internal/fields"
)

// caseColumns is the core column set requested on every case search.
var caseColumns = []string{
	"ixBug", "ixBugParent", "tags", "fOpen", "sTitle", "sFixFor",
	"ixPersonOpenedBy", "ixPersonAssignedTo", "ixBugChildren",
	"ixProject", "sProject", "sStatus",
	"hrsOrigEst", "hrsCurrEst", "hrsElapsed",
}

// Encode builds the parameter set for one command. Fields with empty values
// are dropped entirely: the remote treats absent and empty alike, and
// omitting them avoids accidental overwrites on edits. url.Values encodes
// keys in sorted order, so the output is deterministic for identical input.
func Encode(cmd string, fieldValues map[string]string) url.Values {
	params := url.Values{}
	params.Set("cmd", cmd)
	for name, value := range fieldValues {
		if value == "" {
			continue
		}
		params.Set(name, value)
	}
	return params
}

// Columns returns the search column list: core columns followed by the
// enabled custom columns in catalog order, comma separated with no trailing
// separator.
func Columns(catalog fields.Catalog) string {
	cols := make([]string, 0, len(caseColumns)+5)
	cols = append(cols, caseColumns...)
	cols = append(cols, catalog.Names()...)
	return strings.Join(cols, ",")
}
