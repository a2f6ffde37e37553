package analytics

import (
	"sort"

	"redpulse/internal/snapshot"
)

// DefaultSprints is how many versions the velocity trend looks at.
const DefaultSprints = 5

// Velocity sums closed estimated hours per version and compares the top
// sprints of them. The trend reads first against last of the ranked list;
// equal endpoints are stable.
func Velocity(rows []snapshot.Row, scope Scope, sprints int) VelocityTrend {
	if sprints <= 0 {
		sprints = DefaultSprints
	}

	sums := map[string]float64{}
	for _, r := range scope.filter(rows) {
		if r.StatusClosed && r.VersionName != "" {
			sums[r.VersionName] += r.EstimatedHours
		}
	}

	ranked := make([]VersionVelocity, 0, len(sums))
	for name, value := range sums {
		ranked = append(ranked, VersionVelocity{Name: name, Value: value})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > sprints {
		ranked = ranked[:sprints]
	}

	trend := VelocityTrend{Velocities: ranked, Trend: "stable"}
	if len(ranked) >= 2 {
		first, last := ranked[0].Value, ranked[len(ranked)-1].Value
		switch {
		case first > last:
			trend.Trend = "increasing"
		case first < last:
			trend.Trend = "decreasing"
		}
	}
	values := make([]float64, len(ranked))
	for i, v := range ranked {
		values[i] = v.Value
	}
	trend.Average = round1(mean(values))
	return trend
}
