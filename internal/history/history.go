// Package history reconstructs issue lifecycle events from journal entries.
//
// Redmine keeps no first-class "started" or "reopened" timestamps. Both have
// to be recovered by walking an issue's journals and looking at status_id
// transitions in the journal details.
package history

import (
	"sort"
	"strconv"
	"time"

	"redpulse/internal/redmine"
)

// Timeline is what a journal walk recovers for one issue.
type Timeline struct {
	// FirstInProgress is the time of the first transition into the
	// in-progress status, nil if the issue never entered it.
	FirstInProgress *time.Time

	// Reopened reports whether the issue ever moved from a closed
	// status back to a non-closed one.
	Reopened bool

	// Transitions counts status changes of any kind.
	Transitions int
}

// Reconstruct walks journals in chronological order and recovers the issue
// timeline. inProgressID is the status the team treats as work-started;
// closedIDs is the set of statuses flagged is_closed in the status catalog.
func Reconstruct(journals []redmine.Journal, inProgressID int, closedIDs map[int]bool) Timeline {
	ordered := make([]redmine.Journal, len(journals))
	copy(ordered, journals)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].CreatedOn.Before(ordered[j].CreatedOn)
	})

	var tl Timeline
	for _, j := range ordered {
		for _, d := range j.Details {
			if d.Property != "attr" || d.Name != "status_id" {
				continue
			}
			tl.Transitions++

			newID, newOK := statusID(d.NewValue)
			oldID, oldOK := statusID(d.OldValue)

			if tl.FirstInProgress == nil && newOK && newID == inProgressID {
				at := j.CreatedOn
				tl.FirstInProgress = &at
			}
			if oldOK && newOK && closedIDs[oldID] && !closedIDs[newID] {
				tl.Reopened = true
			}
		}
	}
	return tl
}

// CycleDays is the time from first in-progress to closure, in days.
// It returns false when either endpoint is missing or the interval is
// negative, which happens with imported or hand-edited journals.
func CycleDays(tl Timeline, closedOn *time.Time) (float64, bool) {
	if tl.FirstInProgress == nil || closedOn == nil {
		return 0, false
	}
	days := closedOn.Sub(*tl.FirstInProgress).Hours() / 24
	if days < 0 {
		return 0, false
	}
	return days, true
}

func statusID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
