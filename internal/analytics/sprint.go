package analytics

import "redpulse/internal/snapshot"

// Sprint summarizes committed vs completed work in the scoped rows.
// Completion stays 0 when nothing is committed.
func Sprint(rows []snapshot.Row, scope Scope) SprintStatus {
	scoped := scope.filter(rows)

	st := SprintStatus{Committed: len(scoped)}
	for _, r := range scoped {
		if r.StatusClosed {
			st.Completed++
		}
		if r.StatusName == "In Progress" {
			st.InProgress++
		}
		if mentionsBlock(r.Subject, r.Description) {
			st.Blocked++
		}
		st.EstimatedHours += r.EstimatedHours
		st.SpentHours += r.SpentHours
	}
	st.Remaining = st.Committed - st.Completed
	st.Completion = percent(st.Completed, st.Committed)

	switch {
	case st.SpentHours < st.EstimatedHours:
		st.AheadBehind = "ahead"
	case st.SpentHours > st.EstimatedHours:
		st.AheadBehind = "behind"
	default:
		st.AheadBehind = "on track"
	}
	return st
}
