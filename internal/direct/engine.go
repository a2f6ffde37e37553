// Package direct answers the same delivery questions as the analytics
// package without ever materializing a snapshot. Each metric is composed
// from total_count queries (plus a bounded listing where grouping cannot
// come from counts), so results are always current at the price of a few
// remote round-trips per call.
package direct

import (
	"context"
	"errors"
	"math"
	"time"

	"redpulse/internal/redmine"
)

// Typical Redmine priority enumeration. There is no REST endpoint for
// priorities on older instances, so these mirror the stock setup.
const (
	priorityHigh      = 3
	priorityUrgent    = 4
	priorityImmediate = 5
)

const (
	// workloadLimit bounds the one listing the workload metric needs.
	workloadLimit = 100

	// cycleSampleSize caps how many recently closed issues get their
	// journals fetched for exact cycle time.
	cycleSampleSize = 50

	resolutionSampleSize = 50

	monthlyWindow = 30 * 24 * time.Hour
)

// ErrNoVersion is returned when a release metric finds no version to
// report on.
var ErrNoVersion = errors.New("no release/version found")

// ErrProjectRequired is returned by version-walking metrics called
// without a project, since versions are a per-project resource.
var ErrProjectRequired = errors.New("project id is required")

// Scope narrows a direct metric. VersionID is the numeric fixed-version
// filter; the server resolves it, unlike the cached path's name match.
type Scope struct {
	ProjectID int
	VersionID int
}

func (s Scope) filter(statusID string) redmine.Filter {
	return redmine.Filter{
		StatusID:       statusID,
		ProjectID:      s.ProjectID,
		FixedVersionID: s.VersionID,
	}
}

// Engine computes metrics by querying the remote API directly.
type Engine struct {
	client redmine.Client
	now    func() time.Time
}

func NewEngine(client redmine.Client) *Engine {
	return &Engine{client: client, now: time.Now}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// statusSets resolves the in-progress status id and the closed set from
// the status catalog. inProgress is 0 when no such status exists, which
// simply yields no cycle samples.
func (e *Engine) statusSets(ctx context.Context) (inProgress int, closedIDs map[int]bool, err error) {
	statuses, err := e.client.ListStatuses(ctx)
	if err != nil {
		return 0, nil, err
	}
	closedIDs = make(map[int]bool, len(statuses))
	for _, s := range statuses {
		if s.IsClosed {
			closedIDs[s.ID] = true
		}
		if s.Name == "In Progress" {
			inProgress = s.ID
		}
	}
	return inProgress, closedIDs, nil
}

// trackerIDs maps tracker names to ids via /trackers.json. Absent names
// look up as 0, which the filter layer omits.
func (e *Engine) trackerIDs(ctx context.Context) (map[string]int, error) {
	trackers, err := e.client.ListTrackers(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int, len(trackers))
	for _, t := range trackers {
		ids[t.Name] = t.ID
	}
	return ids, nil
}
