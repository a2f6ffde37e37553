// Package analytics computes delivery metrics over snapshot rows.
//
// Every function here is pure: it takes rows, an optional scope and an
// explicit clock, and returns a result struct. No I/O, no mutation of the
// input slice. The direct package answers the same questions with live
// count queries instead.
package analytics

import "redpulse/internal/snapshot"

// Scope narrows a metric to one project and/or one version. Zero values
// match everything.
type Scope struct {
	ProjectID   int
	VersionName string
}

func (s Scope) filter(rows []snapshot.Row) []snapshot.Row {
	if s.ProjectID == 0 && s.VersionName == "" {
		return rows
	}
	out := make([]snapshot.Row, 0, len(rows))
	for _, r := range rows {
		if s.ProjectID != 0 && r.ProjectID != s.ProjectID {
			continue
		}
		if s.VersionName != "" && r.VersionName != s.VersionName {
			continue
		}
		out = append(out, r)
	}
	return out
}

type SprintStatus struct {
	Committed      int     `json:"committed"`
	Completed      int     `json:"completed"`
	Remaining      int     `json:"remaining"`
	InProgress     int     `json:"in_progress"`
	Blocked        int     `json:"blocked"`
	Completion     float64 `json:"completion"`
	EstimatedHours float64 `json:"estimated_hours"`
	SpentHours     float64 `json:"spent_hours"`
	AheadBehind    string  `json:"ahead_behind"`
}

type BacklogMetrics struct {
	Total               int     `json:"total"`
	HighPriority        int     `json:"high_priority"`
	HighPriorityPercent float64 `json:"high_priority_percent"`
	Unestimated         int     `json:"unestimated"`
	UnestimatedPercent  float64 `json:"unestimated_percent"`
	AvgAgeDays          float64 `json:"avg_age_days"`
	AddedThisMonth      int     `json:"added_this_month"`
	ClosedThisMonth     int     `json:"closed_this_month"`
}

type TeamWorkload struct {
	ByAssignee map[string]int `json:"team_workload"`
	Overloaded []string       `json:"overloaded_members"`
}

type CycleMetrics struct {
	AvgLeadTimeDays  float64 `json:"avg_lead_time_days"`
	AvgCycleTimeDays float64 `json:"avg_cycle_time_days"`
	ReopenedTickets  int     `json:"reopened_tickets"`
}

// BugMetrics reports defect volume and quality. BugRatio is nil when the
// scope has no stories, so a zero denominator surfaces as null instead of
// a misleading 0.
type BugMetrics struct {
	TotalBugs       int      `json:"total_bugs"`
	OpenBugs        int      `json:"open_bugs"`
	CriticalBugs    int      `json:"critical_bugs"`
	BugRatio        *float64 `json:"bug_ratio"`
	AvgResolution   float64  `json:"avg_resolution"`
	PostReleaseBugs int      `json:"post_release_bugs"`
}

type ReleaseStatus struct {
	Name       string  `json:"name"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Unresolved int     `json:"unresolved"`
	Progress   float64 `json:"progress"`
	DueDate    string  `json:"due_date"`
}

type VersionVelocity struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type VelocityTrend struct {
	Velocities []VersionVelocity `json:"velocities"`
	Trend      string            `json:"trend"`
	Average    float64           `json:"average"`
}

type ThroughputMetrics struct {
	Created int `json:"created"`
	Closed  int `json:"closed"`
	Net     int `json:"net"`
	Weeks   int `json:"weeks"`
}
