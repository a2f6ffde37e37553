package analytics

import (
	"time"

	"redpulse/internal/snapshot"
)

// DefaultWeeks is the throughput window when the caller gives none.
const DefaultWeeks = 4

// Throughput counts issues created vs closed inside a rolling window of
// weeks*7 days. A positive net means the backlog is shrinking.
func Throughput(rows []snapshot.Row, scope Scope, weeks int, now time.Time) ThroughputMetrics {
	if weeks <= 0 {
		weeks = DefaultWeeks
	}
	cutoff := now.Add(-time.Duration(weeks) * 7 * 24 * time.Hour)

	m := ThroughputMetrics{Weeks: weeks}
	for _, r := range scope.filter(rows) {
		if r.CreatedOn.After(cutoff) {
			m.Created++
		}
		if r.ClosedOn != nil && r.ClosedOn.After(cutoff) {
			m.Closed++
		}
	}
	m.Net = m.Closed - m.Created
	return m
}
