// Package history answers derived questions over a case's event list.
package history

import (
	"sort"

	"github.com/fogz-io/fogz/src/internal/model"
)

// LastAssignedTo returns the most recent event that assigned the case to
// targetID, skipping events acted out by one of the excluded role accounts
// (automated re-assignments performed on behalf of a human must not
// masquerade as the human's own action). Returns nil when no event
// qualifies or the list is empty.
func LastAssignedTo(events []model.Event, targetID int, excluded []int) *model.Event {
	sorted := make([]model.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	for i := len(sorted) - 1; i >= 0; i-- {
		ev := sorted[i]
		if ev.AssignedTo != targetID {
			continue
		}
		if isExcluded(ev.Person, excluded) {
			continue
		}
		return &ev
	}
	return nil
}

func isExcluded(person int, excluded []int) bool {
	for _, id := range excluded {
		if person == id {
			return true
		}
	}
	return false
}
