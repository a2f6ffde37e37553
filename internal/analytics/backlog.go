package analytics

import (
	"time"

	"redpulse/internal/snapshot"
)

const monthlyWindow = 30 * 24 * time.Hour

// Backlog reports the health of the open backlog: priority and estimation
// coverage, average age, and the 30-day created/closed trend. The trend
// counts all scoped rows, not just the open ones.
func Backlog(rows []snapshot.Row, scope Scope, now time.Time) BacklogMetrics {
	scoped := scope.filter(rows)
	cutoff := now.Add(-monthlyWindow)

	var m BacklogMetrics
	var ages []float64
	for _, r := range scoped {
		if r.CreatedOn.After(cutoff) {
			m.AddedThisMonth++
		}
		if r.ClosedOn != nil && r.ClosedOn.After(cutoff) {
			m.ClosedThisMonth++
		}
		if r.StatusClosed {
			continue
		}
		m.Total++
		if isHighPriority(r.PriorityName) {
			m.HighPriority++
		}
		if r.EstimatedHours == 0 {
			m.Unestimated++
		}
		ages = append(ages, float64(wholeDays(now.Sub(r.CreatedOn))))
	}

	m.HighPriorityPercent = percent(m.HighPriority, m.Total)
	m.UnestimatedPercent = percent(m.Unestimated, m.Total)
	m.AvgAgeDays = round1(mean(ages))
	return m
}
