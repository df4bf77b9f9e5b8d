package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fogz-io/fogz/src/internal/fields"
)

func TestEncodeDropsEmptyValues(t *testing.T) {
	params := Encode("edit", map[string]string{
		"ixBug":   "7",
		"sEvent":  "",
		"sFixFor": "",
		"sTags":   "merged",
	})
	assert.Equal(t, "edit", params.Get("cmd"))
	assert.Equal(t, "7", params.Get("ixBug"))
	assert.Equal(t, "merged", params.Get("sTags"))
	assert.False(t, params.Has("sEvent"))
	assert.False(t, params.Has("sFixFor"))
}

func TestEncodeNoFields(t *testing.T) {
	params := Encode("listProjects", nil)
	assert.Len(t, params, 1)
	assert.Equal(t, "listProjects", params.Get("cmd"))
}

func TestEncodeDeterministic(t *testing.T) {
	values := map[string]string{"q": "7", "cols": "ixBug,sTitle"}
	a := Encode("search", values).Encode()
	b := Encode("search", values).Encode()
	assert.Equal(t, a, b)
}

func TestColumnsWithoutCustomFields(t *testing.T) {
	cols := Columns(fields.Catalog{})
	assert.Equal(t,
		"ixBug,ixBugParent,tags,fOpen,sTitle,sFixFor,ixPersonOpenedBy,ixPersonAssignedTo,ixBugChildren,ixProject,sProject,sStatus,hrsOrigEst,hrsCurrEst,hrsElapsed",
		cols)
}

func TestColumnsAppendsEnabledCustomFields(t *testing.T) {
	cols := Columns(fields.Catalog{FeatureBranch: "cf_feature", CIProject: "cf_ci"})
	assert.Equal(t,
		"ixBug,ixBugParent,tags,fOpen,sTitle,sFixFor,ixPersonOpenedBy,ixPersonAssignedTo,ixBugChildren,ixProject,sProject,sStatus,hrsOrigEst,hrsCurrEst,hrsElapsed,cf_feature,cf_ci",
		cols)
}
