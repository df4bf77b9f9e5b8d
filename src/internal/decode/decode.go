// Package decode maps parsed tracker XML responses onto domain records.
//
// Coercion policy, applied uniformly: missing or blank string fields are
// logically absent ("" on the record), missing numerics are 0, missing
// booleans false, missing timestamps nil. A value that is present but
// malformed fails the decode of the whole batch instead of being defaulted.
package decode

import (
	"strconv"
	"strings"
	"time"

	"github.com/fogz-io/fogz/src/internal/fberr"
	"github.com/fogz-io/fogz/src/internal/fields"
	"github.com/fogz-io/fogz/src/internal/model"
	"github.com/fogz-io/fogz/src/internal/xmldoc"
)

// Cases decodes a case search response. The declared count on the cases
// container gates the parse: a missing or non-numeric count reads as 0, and
// a count below 1 is a no-such-case failure before any row is touched.
func Cases(doc *xmldoc.Document, catalog fields.Catalog) ([]model.Case, error) {
	// The results container is a direct child of the response root; a
	// descendant search could be decoyed by a nested element of the same
	// name elsewhere in the document.
	count := 0
	if container := doc.Root.Child("cases"); container != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(container.Attr("count"))); err == nil {
			count = n
		}
	}
	if count < 1 {
		return nil, fberr.New(fberr.NoSuchCase, "tracker returned no matching cases")
	}

	nodes := doc.All("case")
	cases := make([]model.Case, 0, len(nodes))
	for _, node := range nodes {
		c, err := oneCase(node, catalog)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func oneCase(node *xmldoc.Element, catalog fields.Catalog) (model.Case, error) {
	var c model.Case
	var err error

	if c.ID, err = intValue(node, "ixBug"); err != nil {
		return model.Case{}, err
	}
	c.Title = stringValue(node, "sTitle")
	if c.OpenedBy, err = intValue(node, "ixPersonOpenedBy"); err != nil {
		return model.Case{}, err
	}
	if c.AssignedTo, err = intValue(node, "ixPersonAssignedTo"); err != nil {
		return model.Case{}, err
	}
	c.Open = boolValue(node, "fOpen")
	c.Milestone = stringValue(node, "sFixFor")
	if c.ParentID, err = intValue(node, "ixBugParent"); err != nil {
		return model.Case{}, err
	}
	if c.ProjectID, err = intValue(node, "ixProject"); err != nil {
		return model.Case{}, err
	}
	c.Project = stringValue(node, "sProject")
	c.Status = stringValue(node, "sStatus")
	if c.HrsOrigEstimate, err = hoursValue(node, "hrsOrigEst"); err != nil {
		return model.Case{}, err
	}
	if c.HrsCurrEstimate, err = hoursValue(node, "hrsCurrEst"); err != nil {
		return model.Case{}, err
	}
	if c.HrsElapsed, err = hoursValue(node, "hrsElapsed"); err != nil {
		return model.Case{}, err
	}

	for _, tagNode := range node.All("tag") {
		tag := strings.TrimSpace(tagNode.Text)
		if tag != "" {
			c.AddTag(tag)
		}
	}

	// Disabled custom columns stay "", so a save round-trip of a case
	// decoded without them never writes anything back.
	for _, slot := range catalog.Slots() {
		slot.Set(&c, stringValue(node, slot.Column))
	}
	return c, nil
}

// Events decodes the event history of one case. An absent container means an
// empty history, never a failure.
func Events(doc *xmldoc.Document, caseID int) ([]model.Event, error) {
	nodes := doc.All("event")
	events := make([]model.Event, 0, len(nodes))
	for _, node := range nodes {
		ev := model.Event{CaseID: caseID}
		var err error
		if ev.ID, err = intValue(node, "ixBugEvent"); err != nil {
			return nil, err
		}
		ev.Verb = stringValue(node, "sVerb")
		if ev.Person, err = intValue(node, "ixPerson"); err != nil {
			return nil, err
		}
		if ev.AssignedTo, err = intValue(node, "ixPersonAssignedTo"); err != nil {
			return nil, err
		}
		date, err := timeValue(node, "dt")
		if err != nil {
			return nil, err
		}
		if date != nil {
			ev.Date = *date
		}
		ev.Description = stringValue(node, "evtDescription")
		ev.PersonName = stringValue(node, "sPerson")
		events = append(events, ev)
	}
	return events, nil
}

// Users decodes a person listing.
func Users(doc *xmldoc.Document) ([]model.User, error) {
	nodes := doc.All("person")
	users := make([]model.User, 0, len(nodes))
	for _, node := range nodes {
		u, err := oneUser(node)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// User decodes a single-person response, or nil when none is present.
func User(doc *xmldoc.Document) (*model.User, error) {
	node := doc.First("person")
	if node == nil {
		return nil, nil
	}
	u, err := oneUser(node)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func oneUser(node *xmldoc.Element) (model.User, error) {
	var u model.User
	var err error
	if u.ID, err = intValue(node, "ixPerson"); err != nil {
		return model.User{}, err
	}
	u.Name = stringValue(node, "sFullName")
	u.Email = stringValue(node, "sEmail")
	u.Phone = stringValue(node, "sPhone")
	return u, nil
}

// Milestones decodes a fixfor listing.
func Milestones(doc *xmldoc.Document) ([]model.Milestone, error) {
	nodes := doc.All("fixfor")
	milestones := make([]model.Milestone, 0, len(nodes))
	for _, node := range nodes {
		var m model.Milestone
		var err error
		if m.ID, err = intValue(node, "ixFixFor"); err != nil {
			return nil, err
		}
		m.Name = stringValue(node, "sFixFor")
		m.Deleted = boolValue(node, "fDeleted")
		m.ReallyDeleted = boolValue(node, "fReallyDeleted")
		milestones = append(milestones, m)
	}
	return milestones, nil
}

// Projects decodes a project listing.
func Projects(doc *xmldoc.Document) ([]model.Project, error) {
	nodes := doc.All("project")
	projects := make([]model.Project, 0, len(nodes))
	for _, node := range nodes {
		var p model.Project
		var err error
		if p.ID, err = intValue(node, "ixProject"); err != nil {
			return nil, err
		}
		p.Name = stringValue(node, "sProject")
		p.Deleted = boolValue(node, "fDeleted")
		projects = append(projects, p)
	}
	return projects, nil
}

// Intervals decodes a time interval listing. Start and end are both
// optional on the wire.
func Intervals(doc *xmldoc.Document) ([]model.TimeInterval, error) {
	nodes := doc.All("interval")
	intervals := make([]model.TimeInterval, 0, len(nodes))
	for _, node := range nodes {
		var iv model.TimeInterval
		var err error
		if iv.ID, err = intValue(node, "ixInterval"); err != nil {
			return nil, err
		}
		if iv.CaseID, err = intValue(node, "ixBug"); err != nil {
			return nil, err
		}
		if iv.PersonID, err = intValue(node, "ixPerson"); err != nil {
			return nil, err
		}
		iv.Deleted = boolValue(node, "fDeleted")
		if iv.Start, err = timeValue(node, "dtStart"); err != nil {
			return nil, err
		}
		if iv.End, err = timeValue(node, "dtEnd"); err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// stringValue extracts the trimmed text of the first element with the given
// name. Absent elements and blank text both read as "".
func stringValue(node *xmldoc.Element, name string) string {
	el := node.First(name)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text)
}

// intValue reads an integer field, 0 when absent.
func intValue(node *xmldoc.Element, name string) (int, error) {
	s := stringValue(node, name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fberr.Wrap(fberr.DecodeFailure, err, "field %s is not a number", name)
	}
	return n, nil
}

// hoursValue reads a decimal hours field, 0.00 when absent, rounded
// half-to-even to two fraction digits.
func hoursValue(node *xmldoc.Element, name string) (model.Hours, error) {
	s := stringValue(node, name)
	if s == "" {
		return 0, nil
	}
	h, err := model.ParseHours(s)
	if err != nil {
		return 0, fberr.Wrap(fberr.DecodeFailure, err, "field %s is not a decimal", name)
	}
	return h, nil
}

// boolValue reads a textual boolean, false when absent.
func boolValue(node *xmldoc.Element, name string) bool {
	return strings.EqualFold(stringValue(node, name), "true")
}

// timeValue reads a timestamp field, nil when absent. A present but
// malformed timestamp fails the decode; timestamps are never defaulted.
func timeValue(node *xmldoc.Element, name string) (*time.Time, error) {
	s := stringValue(node, name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fberr.Wrap(fberr.DecodeFailure, err, "field %s is not a timestamp", name)
	}
	return &t, nil
}
