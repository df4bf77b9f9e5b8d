package model

import (
	"fmt"
	"strings"
	"time"
)

// Case holds the data of one tracker case. Id 0 means the case has not been
// created on the remote side yet; saving such a case issues a create instead
// of an edit.
type Case struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	OpenedBy   int      `json:"opened_by"`
	AssignedTo int      `json:"assigned_to"`
	Tags       []string `json:"tags,omitempty"`
	Open       bool     `json:"open"`
	Milestone  string   `json:"milestone,omitempty"`
	ParentID   int      `json:"parent_id,omitempty"`
	ProjectID  int      `json:"project_id,omitempty"`
	Project    string   `json:"project,omitempty"`
	Status     string   `json:"status,omitempty"`

	HrsOrigEstimate Hours `json:"hrs_orig_estimate"`
	HrsCurrEstimate Hours `json:"hrs_curr_estimate"`
	HrsElapsed      Hours `json:"hrs_elapsed"`

	// Deployment-configured custom columns. Empty string when the column is
	// not configured or the remote value is blank.
	FeatureBranch    string `json:"feature_branch,omitempty"`
	OriginalBranch   string `json:"original_branch,omitempty"`
	TargetBranch     string `json:"target_branch,omitempty"`
	ApprovedRevision string `json:"approved_revision,omitempty"`
	CIProject        string `json:"ci_project,omitempty"`
}

// TagsFromCSV splits a comma separated tag string, keeping order and
// dropping duplicates and blanks.
func TagsFromCSV(csv string) []string {
	var tags []string
	for _, tag := range strings.Split(csv, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if !containsTag(tags, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// TagsCSV renders the tag list as a comma separated string, no trailing comma.
func (c *Case) TagsCSV() string {
	return strings.Join(c.Tags, ",")
}

// AddTag appends a tag unless it is already present.
func (c *Case) AddTag(tag string) {
	if !c.HasTag(tag) {
		c.Tags = append(c.Tags, tag)
	}
}

// HasTag reports whether the tag is in the tag list.
func (c *Case) HasTag(tag string) bool {
	return containsTag(c.Tags, tag)
}

// RemoveTag removes the tag from the tag list if present.
func (c *Case) RemoveTag(tag string) {
	for i, t := range c.Tags {
		if t == tag {
			c.Tags = append(c.Tags[:i], c.Tags[i+1:]...)
			return
		}
	}
}

// AssignedToOpener returns a copy of the case assigned back to whoever
// opened it.
func (c Case) AssignedToOpener() Case {
	return c.WithAssignee(c.OpenedBy)
}

// WithAssignee returns a copy of the case with AssignedTo replaced.
func (c Case) WithAssignee(userID int) Case {
	c.AssignedTo = userID
	c.Tags = append([]string(nil), c.Tags...)
	return c
}

// Equal compares all fields; tags are compared as sets.
func (c *Case) Equal(o *Case) bool {
	if o == nil {
		return false
	}
	return c.ID == o.ID &&
		c.Title == o.Title &&
		c.OpenedBy == o.OpenedBy &&
		c.AssignedTo == o.AssignedTo &&
		sameTagSet(c.Tags, o.Tags) &&
		c.Open == o.Open &&
		c.Milestone == o.Milestone &&
		c.ParentID == o.ParentID &&
		c.ProjectID == o.ProjectID &&
		c.Project == o.Project &&
		c.Status == o.Status &&
		c.HrsOrigEstimate == o.HrsOrigEstimate &&
		c.HrsCurrEstimate == o.HrsCurrEstimate &&
		c.HrsElapsed == o.HrsElapsed &&
		c.FeatureBranch == o.FeatureBranch &&
		c.OriginalBranch == o.OriginalBranch &&
		c.TargetBranch == o.TargetBranch &&
		c.ApprovedRevision == o.ApprovedRevision &&
		c.CIProject == o.CIProject
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func sameTagSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, t := range a {
		if !containsTag(b, t) {
			return false
		}
	}
	return true
}

// Event is one entry in a case's history. Immutable once decoded.
type Event struct {
	ID          int       `json:"id"`
	CaseID      int       `json:"case_id"`
	Verb        string    `json:"verb"`
	Person      int       `json:"person"`
	AssignedTo  int       `json:"assigned_to"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	PersonName  string    `json:"person_name"`
}

// Before orders events by timestamp ascending, event id as tie-break so the
// order stays deterministic when the remote reports equal timestamps.
func (e Event) Before(o Event) bool {
	if !e.Date.Equal(o.Date) {
		return e.Date.Before(o.Date)
	}
	return e.ID < o.ID
}

func (e Event) String() string {
	return e.Description
}

// Describe renders the full event for diagnostic output.
func (e Event) Describe() string {
	return fmt.Sprintf("event %d for case %d: verb=%q person=%d assignedTo=%d date=%s description=%q personName=%q",
		e.ID, e.CaseID, e.Verb, e.Person, e.AssignedTo, e.Date.Format(time.RFC3339), e.Description, e.PersonName)
}

// User is a tracker account.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Equal compares id, name and email. Phone is informational only.
func (u User) Equal(o User) bool {
	return u.ID == o.ID && u.Name == o.Name && u.Email == o.Email
}

// Milestone is a tracker milestone (a "FixFor"). Id 0 means not yet created.
type Milestone struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Deleted       bool   `json:"deleted"`
	ReallyDeleted bool   `json:"really_deleted"`
}

// Project is a tracker project.
type Project struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

// TimeInterval is one tracked working interval on a case. Start and End are
// nil when the remote side reports no value.
type TimeInterval struct {
	ID       int        `json:"id"`
	CaseID   int        `json:"case_id"`
	PersonID int        `json:"person_id"`
	Deleted  bool       `json:"deleted"`
	Start    *time.Time `json:"start,omitempty"`
	End      *time.Time `json:"end,omitempty"`
}
