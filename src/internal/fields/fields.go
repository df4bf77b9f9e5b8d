// Package fields knows which optional custom case columns a deployment has
// configured and how they map onto the Case record.
package fields

import "github.com/fogz-io/fogz/src/internal/model"

// Catalog holds the remote column names of the five optional custom case
// fields. An empty name disables the field: it is never requested and always
// decodes to the empty string.
type Catalog struct {
	FeatureBranch    string
	OriginalBranch   string
	TargetBranch     string
	ApprovedRevision string
	CIProject        string
}

// Slot is one enabled custom field: its remote column name plus accessors
// into the Case record.
type Slot struct {
	Column string
	Get    func(*model.Case) string
	Set    func(*model.Case, string)
}

// Slots returns the enabled custom fields in fixed catalog order: feature
// branch, original branch, target branch, approved revision, CI project.
// The same order is used for read column lists and write parameters.
func (c Catalog) Slots() []Slot {
	all := []Slot{
		{c.FeatureBranch,
			func(cs *model.Case) string { return cs.FeatureBranch },
			func(cs *model.Case, v string) { cs.FeatureBranch = v }},
		{c.OriginalBranch,
			func(cs *model.Case) string { return cs.OriginalBranch },
			func(cs *model.Case, v string) { cs.OriginalBranch = v }},
		{c.TargetBranch,
			func(cs *model.Case) string { return cs.TargetBranch },
			func(cs *model.Case, v string) { cs.TargetBranch = v }},
		{c.ApprovedRevision,
			func(cs *model.Case) string { return cs.ApprovedRevision },
			func(cs *model.Case, v string) { cs.ApprovedRevision = v }},
		{c.CIProject,
			func(cs *model.Case) string { return cs.CIProject },
			func(cs *model.Case, v string) { cs.CIProject = v }},
	}
	enabled := make([]Slot, 0, len(all))
	for _, s := range all {
		if s.Column != "" {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

// Names returns the enabled custom column names in catalog order.
func (c Catalog) Names() []string {
	slots := c.Slots()
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.Column
	}
	return names
}
