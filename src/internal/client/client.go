// Package client is the high level surface of the tracker API: it composes
// the field catalog, request encoder, fetch collaborator and response
// decoder into the public case/people/milestone/project/interval operations.
package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/fogz-io/fogz/src/internal/decode"
	"github.com/fogz-io/fogz/src/internal/encode"
	"github.com/fogz-io/fogz/src/internal/fberr"
	"github.com/fogz-io/fogz/src/internal/fields"
	"github.com/fogz-io/fogz/src/internal/history"
	"github.com/fogz-io/fogz/src/internal/model"
	"github.com/fogz-io/fogz/src/internal/xmldoc"
)

// Fetcher turns a transport parameter set into a parsed response document.
// Implementations own URL building, authentication and I/O; the client only
// requires that the call eventually returns a document or an error.
type Fetcher interface {
	FetchDocument(ctx context.Context, params url.Values) (*xmldoc.Document, error)
}

// Client issues tracker operations. One outbound fetch per call, no caching,
// no shared mutable state; concurrent use is safe as long as the Fetcher is.
type Client struct {
	fetcher Fetcher
	catalog fields.Catalog
	merge   int
	gate    int
	log     *zap.Logger
}

// New builds a Client. merge and gate are the reserved role user ids of the
// automated merge and gate accounts.
func New(fetcher Fetcher, catalog fields.Catalog, merge, gate int, logger *zap.Logger) *Client {
	return &Client{fetcher: fetcher, catalog: catalog, merge: merge, gate: gate, log: logger}
}

func (c *Client) fetch(ctx context.Context, params url.Values) (*xmldoc.Document, error) {
	doc, err := c.fetcher.FetchDocument(ctx, params)
	if err != nil {
		c.log.Error("fetch failed", zap.String("cmd", params.Get("cmd")), zap.Error(err))
		return nil, fberr.Wrap(fberr.InvalidResponse, err, "fetch %s", params.Get("cmd"))
	}
	return doc, nil
}

// GetCaseByID fetches exactly one case. More than one row for an id query is
// an ambiguous response.
func (c *Client) GetCaseByID(ctx context.Context, id int) (model.Case, error) {
	cases, err := c.SearchCases(ctx, strconv.Itoa(id))
	if err != nil {
		return model.Case{}, err
	}
	if len(cases) == 0 {
		// The declared count is a pre-check, not a row guarantee: a response
		// can announce matches yet carry no case rows.
		return model.Case{}, fberr.New(fberr.NoSuchCase, "no case row for id %d", id)
	}
	if len(cases) > 1 {
		return model.Case{}, fberr.New(fberr.AmbiguousResponse, "expected one case for id %d, got %d", id, len(cases))
	}
	return cases[0], nil
}

// SearchCases runs a free-text or id query. Zero matches is a no-such-case
// failure, unlike the listing endpoints.
func (c *Client) SearchCases(ctx context.Context, query string) ([]model.Case, error) {
	c.log.Debug("SearchCases: start", zap.String("query", query))
	params := encode.Encode("search", map[string]string{
		"q":    query,
		"cols": encode.Columns(c.catalog),
	})
	doc, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	cases, err := decode.Cases(doc, c.catalog)
	if err != nil {
		c.log.Debug("SearchCases: decode failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	c.log.Debug("SearchCases: success", zap.String("query", query), zap.Int("cases", len(cases)))
	return cases, nil
}

// SaveCase round-trips a case through the edit endpoint, or the create
// endpoint when the id is 0. comment becomes the event note on the change;
// empty fields are dropped by the encoder and left untouched remotely.
func (c *Client) SaveCase(ctx context.Context, cs model.Case, comment string) error {
	values := map[string]string{
		"ixPersonAssignedTo": strconv.Itoa(cs.AssignedTo),
		"ixPersonOpenedBy":   strconv.Itoa(cs.OpenedBy),
		"sTags":              cs.TagsCSV(),
		"sFixFor":            cs.Milestone,
		"sEvent":             comment,
	}
	cmd := "edit"
	if cs.ID == 0 {
		cmd = "new"
		values["sTitle"] = cs.Title
	} else {
		values["ixBug"] = strconv.Itoa(cs.ID)
	}
	for _, slot := range c.catalog.Slots() {
		values[slot.Column] = slot.Get(&cs)
	}

	c.log.Debug("SaveCase: start", zap.String("cmd", cmd), zap.Int("case", cs.ID))
	if _, err := c.fetch(ctx, encode.Encode(cmd, values)); err != nil {
		return err
	}
	c.log.Info("SaveCase: success", zap.String("cmd", cmd), zap.Int("case", cs.ID))
	return nil
}

// EventsForCase fetches the full event history of one case, oldest first.
func (c *Client) EventsForCase(ctx context.Context, caseID int) ([]model.Event, error) {
	params := encode.Encode("search", map[string]string{
		"q":    strconv.Itoa(caseID),
		"cols": "events",
	})
	doc, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	return decode.Events(doc, caseID)
}

// LastAssignedTo returns the most recent event assigning the case to userID
// where the actor was a human, not one of the reserved role accounts. Nil
// when the case has no qualifying history.
func (c *Client) LastAssignedTo(ctx context.Context, caseID, userID int) (*model.Event, error) {
	events, err := c.EventsForCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return history.LastAssignedTo(events, userID, []int{c.merge, c.gate}), nil
}

// LastAssignedToGatekeeper answers "when was this case last handed to the
// gate role by a human".
func (c *Client) LastAssignedToGatekeeper(ctx context.Context, caseID int) (*model.Event, error) {
	return c.LastAssignedTo(ctx, caseID, c.gate)
}

// AssignToMergekeeper returns a copy of the case assigned to the merge role
// account. Pure mutation; the case still has to be saved.
func (c *Client) AssignToMergekeeper(cs model.Case) model.Case {
	return cs.WithAssignee(c.merge)
}

// AssignToGatekeeper returns a copy of the case assigned to the gate role
// account. Pure mutation; the case still has to be saved.
func (c *Client) AssignToGatekeeper(cs model.Case) model.Case {
	return cs.WithAssignee(c.gate)
}

// Users lists all tracker accounts. An empty listing is valid.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	doc, err := c.fetch(ctx, encode.Encode("listPeople", nil))
	if err != nil {
		return nil, err
	}
	return decode.Users(doc)
}

// UserByID fetches one account. Returns nil without error when the response
// carries no person.
func (c *Client) UserByID(ctx context.Context, id int) (*model.User, error) {
	params := encode.Encode("viewPerson", map[string]string{
		"ixPerson": strconv.Itoa(id),
	})
	doc, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	return decode.User(doc)
}

// Milestones lists all milestones, deleted ones included.
func (c *Client) Milestones(ctx context.Context) ([]model.Milestone, error) {
	doc, err := c.fetch(ctx, encode.Encode("listFixFors", nil))
	if err != nil {
		return nil, err
	}
	return decode.Milestones(doc)
}

// CreateMilestone creates a new global milestone. Editing existing
// milestones is unsupported: a non-zero id is rejected outright.
func (c *Client) CreateMilestone(ctx context.Context, m model.Milestone) error {
	if m.ID != 0 {
		return fberr.New(fberr.MilestoneNotEditable, "editing existing milestones is not supported, milestone id must be 0, got %d", m.ID)
	}
	params := encode.Encode("newFixFor", map[string]string{
		"ixProject":   "-1",
		"fAssignable": "1",
		"sFixFor":     m.Name,
	})
	if _, err := c.fetch(ctx, params); err != nil {
		return err
	}
	c.log.Info("CreateMilestone: success", zap.String("milestone", m.Name))
	return nil
}

// CreateMilestoneIfNotExists lists milestones first and only creates when no
// milestone carries the name already. An existing milestone reports a
// MILESTONE_EXISTS outcome without any creation call.
func (c *Client) CreateMilestoneIfNotExists(ctx context.Context, name string) error {
	milestones, err := c.Milestones(ctx)
	if err != nil {
		return err
	}
	for _, m := range milestones {
		if m.Name == name {
			c.log.Debug("CreateMilestoneIfNotExists: already exists", zap.String("milestone", name))
			return fberr.New(fberr.MilestoneExists, "milestone %q already exists", name)
		}
	}
	return c.CreateMilestone(ctx, model.Milestone{Name: name})
}

// Projects lists all projects. An empty listing is valid.
func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	doc, err := c.fetch(ctx, encode.Encode("listProjects", nil))
	if err != nil {
		return nil, err
	}
	return decode.Projects(doc)
}

// IntervalQuery narrows a time interval search. Every field is optional;
// zero values are left out of the request, except the person id, which the
// endpoint requires and which falls back to account 1 when unset.
type IntervalQuery struct {
	CaseID   int
	PersonID int
	From     time.Time
	Till     time.Time
}

// SearchIntervals lists tracked time intervals matching the query. The till
// date is sent exclusive: the remote receives till + 1 day.
func (c *Client) SearchIntervals(ctx context.Context, q IntervalQuery) ([]model.TimeInterval, error) {
	values := map[string]string{}
	if q.CaseID > 0 {
		values["ixBug"] = strconv.Itoa(q.CaseID)
	}
	if q.PersonID > 0 {
		values["ixPerson"] = strconv.Itoa(q.PersonID)
	} else {
		values["ixPerson"] = "1"
	}
	if !q.From.IsZero() {
		values["dtStart"] = q.From.Format("2006-01-02")
	}
	if !q.Till.IsZero() {
		values["dtEnd"] = q.Till.AddDate(0, 0, 1).Format("2006-01-02")
	}
	doc, err := c.fetch(ctx, encode.Encode("listIntervals", values))
	if err != nil {
		return nil, err
	}
	return decode.Intervals(doc)
}

// IntervalsForCase lists intervals tracked on one case.
func (c *Client) IntervalsForCase(ctx context.Context, caseID int) ([]model.TimeInterval, error) {
	return c.SearchIntervals(ctx, IntervalQuery{CaseID: caseID})
}

// IntervalsBetween lists intervals in a date range, both dates inclusive.
func (c *Client) IntervalsBetween(ctx context.Context, from, till time.Time) ([]model.TimeInterval, error) {
	return c.SearchIntervals(ctx, IntervalQuery{From: from, Till: till})
}

// IntervalsForPerson lists one person's intervals in a date range.
func (c *Client) IntervalsForPerson(ctx context.Context, personID int, from, till time.Time) ([]model.TimeInterval, error) {
	return c.SearchIntervals(ctx, IntervalQuery{PersonID: personID, From: from, Till: till})
}
