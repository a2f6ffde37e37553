package analytics

import (
	"time"

	"redpulse/internal/snapshot"
)

// resolutionSampleSize caps the closed bugs feeding the resolution average.
const resolutionSampleSize = 50

// BugQuality reports defect volume, the bug-to-story ratio, resolution
// time and the count of bugs filed in the last 30 days.
func BugQuality(rows []snapshot.Row, scope Scope, now time.Time) BugMetrics {
	scoped := scope.filter(rows)
	cutoff := now.Add(-monthlyWindow)

	var m BugMetrics
	var stories int
	var resolutions []float64
	for _, r := range scoped {
		switch r.TrackerName {
		case "Feature", "Story":
			stories++
			continue
		case "Bug":
		default:
			continue
		}

		m.TotalBugs++
		if r.CreatedOn.After(cutoff) {
			m.PostReleaseBugs++
		}
		if !r.StatusClosed {
			m.OpenBugs++
			if isHighPriority(r.PriorityName) {
				m.CriticalBugs++
			}
			continue
		}
		if r.ClosedOn != nil && len(resolutions) < resolutionSampleSize {
			resolutions = append(resolutions, float64(wholeDays(r.ClosedOn.Sub(r.CreatedOn))))
		}
	}

	if stories > 0 {
		ratio := round2(float64(m.TotalBugs) / float64(stories))
		m.BugRatio = &ratio
	}
	m.AvgResolution = round1(mean(resolutions))
	return m
}
