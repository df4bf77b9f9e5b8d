package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTagsFromCSV(t *testing.T) {
	assert.Equal(t, []string{"merged", "approved"}, TagsFromCSV("merged,approved"))
	assert.Equal(t, []string{"merged"}, TagsFromCSV("merged,merged"))
	assert.Equal(t, []string{"a", "b"}, TagsFromCSV(" a , b ,"))
	assert.Nil(t, TagsFromCSV(""))
}

func TestTagsCSVRoundTrip(t *testing.T) {
	c := Case{Tags: TagsFromCSV("one,two,three")}
	assert.Equal(t, "one,two,three", c.TagsCSV())
}

func TestAddTagRejectsDuplicates(t *testing.T) {
	var c Case
	c.AddTag("merged")
	c.AddTag("merged")
	c.AddTag("approved")
	assert.Equal(t, []string{"merged", "approved"}, c.Tags)
	assert.True(t, c.HasTag("merged"))
	assert.False(t, c.HasTag("rejected"))
}

func TestRemoveTag(t *testing.T) {
	c := Case{Tags: []string{"a", "b", "c"}}
	c.RemoveTag("b")
	assert.Equal(t, []string{"a", "c"}, c.Tags)
	c.RemoveTag("missing")
	assert.Equal(t, []string{"a", "c"}, c.Tags)
}

func TestCaseEqualComparesTagsAsSets(t *testing.T) {
	a := Case{ID: 7, Title: "x", Tags: []string{"one", "two"}}
	b := Case{ID: 7, Title: "x", Tags: []string{"two", "one"}}
	assert.True(t, a.Equal(&b))

	b.Tags = []string{"one"}
	assert.False(t, a.Equal(&b))

	b.Tags = []string{"one", "three"}
	assert.False(t, a.Equal(&b))
}

func TestCaseEqualAllFields(t *testing.T) {
	a := Case{ID: 7, Title: "x", FeatureBranch: "feat/1"}
	b := a
	assert.True(t, a.Equal(&b))
	b.FeatureBranch = "feat/2"
	assert.False(t, a.Equal(&b))
	assert.False(t, a.Equal(nil))
}

func TestWithAssigneeIsPure(t *testing.T) {
	orig := Case{ID: 1, AssignedTo: 2, Tags: []string{"a"}}
	changed := orig.WithAssignee(9)

	assert.Equal(t, 9, changed.AssignedTo)
	assert.Equal(t, 2, orig.AssignedTo)

	// The copy must not alias the original tag list.
	changed.AddTag("b")
	assert.Equal(t, []string{"a"}, orig.Tags)
}

func TestAssignedToOpener(t *testing.T) {
	c := Case{OpenedBy: 3, AssignedTo: 8}
	back := c.AssignedToOpener()
	assert.Equal(t, 3, back.AssignedTo)
	assert.Equal(t, 8, c.AssignedTo)
}

func TestEventOrdering(t *testing.T) {
	early := Event{ID: 1, Date: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	late := Event{ID: 2, Date: time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)}
	assert.True(t, early.Before(late))
	assert.False(t, late.Before(early))

	// Equal timestamps fall back to the event id.
	tied := Event{ID: 3, Date: early.Date}
	assert.True(t, early.Before(tied))
	assert.False(t, tied.Before(early))
}

func TestUserEqualIgnoresPhone(t *testing.T) {
	a := User{ID: 1, Name: "First Last", Email: "fl@example.com", Phone: "123"}
	b := User{ID: 1, Name: "First Last", Email: "fl@example.com", Phone: "456"}
	assert.True(t, a.Equal(b))

	b.Email = "other@example.com"
	assert.False(t, a.Equal(b))
}
