package analytics

import (
	"sort"

	"redpulse/internal/snapshot"
)

// overloadThreshold is the open-issue count above which an assignee is
// reported as overloaded.
const overloadThreshold = 10

// Workload groups open issues by assignee. The "Unassigned" bucket is
// reported but never counts as overloaded.
func Workload(rows []snapshot.Row, scope Scope) TeamWorkload {
	w := TeamWorkload{
		ByAssignee: map[string]int{},
		Overloaded: []string{},
	}
	for _, r := range scope.filter(rows) {
		if r.StatusClosed {
			continue
		}
		w.ByAssignee[r.AssigneeName]++
	}
	for name, count := range w.ByAssignee {
		if count > overloadThreshold && name != "Unassigned" {
			w.Overloaded = append(w.Overloaded, name)
		}
	}
	sort.Strings(w.Overloaded)
	return w
}
