package analytics

import (
	"math"
	"sort"

	"redpulse/internal/snapshot"
)

// cycleSampleSize caps how many recently closed issues feed the averages.
const cycleSampleSize = 100

// CycleTime averages lead and cycle time over the most recently closed
// issues in scope. Lead time runs from creation to closure. Cycle time
// here is the |closure − last update| approximation; the direct engine
// computes the exact figure from journal history instead.
func CycleTime(rows []snapshot.Row, scope Scope) CycleMetrics {
	scoped := scope.filter(rows)

	var m CycleMetrics
	closed := make([]snapshot.Row, 0, len(scoped))
	for _, r := range scoped {
		if mentionsReopen(r.Subject, r.Description) {
			m.ReopenedTickets++
		}
		if r.StatusClosed && r.ClosedOn != nil {
			closed = append(closed, r)
		}
	}
	sort.Slice(closed, func(i, j int) bool {
		return closed[i].ClosedOn.After(*closed[j].ClosedOn)
	})
	if len(closed) > cycleSampleSize {
		closed = closed[:cycleSampleSize]
	}

	var leads, cycles []float64
	for _, r := range closed {
		leads = append(leads, float64(wholeDays(r.ClosedOn.Sub(r.CreatedOn))))
		cycles = append(cycles, math.Abs(float64(wholeDays(r.ClosedOn.Sub(r.UpdatedOn)))))
	}
	m.AvgLeadTimeDays = round1(mean(leads))
	m.AvgCycleTimeDays = round1(mean(cycles))
	return m
}
