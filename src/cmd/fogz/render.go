package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/viper"

	"github.com/fogz-io/fogz/src/internal/model"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	return t
}

func printCases(cases []model.Case) error {
	if viper.GetBool("json") {
		return printJSON(cases)
	}
	t := newTable(table.Row{"ID", "Title", "Open", "Assigned", "Milestone", "Status", "Tags", "Elapsed"})
	for _, c := range cases {
		t.AppendRow(table.Row{c.ID, c.Title, c.Open, c.AssignedTo, c.Milestone, c.Status, c.TagsCSV(), c.HrsElapsed.String()})
	}
	t.Render()
	return nil
}

func printEvents(events []model.Event) error {
	if viper.GetBool("json") {
		return printJSON(events)
	}
	t := newTable(table.Row{"ID", "Date", "Verb", "Person", "Assigned To", "Description"})
	for _, e := range events {
		t.AppendRow(table.Row{e.ID, e.Date.Format(time.RFC3339), e.Verb, e.PersonName, e.AssignedTo, e.Description})
	}
	t.Render()
	return nil
}

func printUsers(users []model.User) error {
	if viper.GetBool("json") {
		return printJSON(users)
	}
	t := newTable(table.Row{"ID", "Name", "Email", "Phone"})
	for _, u := range users {
		t.AppendRow(table.Row{u.ID, u.Name, u.Email, u.Phone})
	}
	t.Render()
	return nil
}

func printMilestones(milestones []model.Milestone) error {
	if viper.GetBool("json") {
		return printJSON(milestones)
	}
	t := newTable(table.Row{"ID", "Name", "Deleted", "Really Deleted"})
	for _, m := range milestones {
		t.AppendRow(table.Row{m.ID, m.Name, m.Deleted, m.ReallyDeleted})
	}
	t.Render()
	return nil
}

func printProjects(projects []model.Project) error {
	if viper.GetBool("json") {
		return printJSON(projects)
	}
	t := newTable(table.Row{"ID", "Name", "Deleted"})
	for _, p := range projects {
		t.AppendRow(table.Row{p.ID, p.Name, p.Deleted})
	}
	t.Render()
	return nil
}

func printIntervals(intervals []model.TimeInterval) error {
	if viper.GetBool("json") {
		return printJSON(intervals)
	}
	t := newTable(table.Row{"ID", "Case", "Person", "Start", "End", "Deleted"})
	for _, iv := range intervals {
		t.AppendRow(table.Row{iv.ID, iv.CaseID, iv.PersonID, formatTime(iv.Start), formatTime(iv.End), iv.Deleted})
	}
	t.Render()
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
