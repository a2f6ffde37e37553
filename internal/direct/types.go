package direct

// Result shapes for the direct path. They are close cousins of the
// analytics package's snapshot-based results but carry the extra context
// a live query can afford (sample sizes, per-priority breakdowns).

type SprintStatus struct {
	TotalCommitted       int     `json:"total_committed"`
	Completed            int     `json:"completed"`
	Remaining            int     `json:"remaining"`
	CompletionPercentage float64 `json:"completion_percentage"`
	BurndownStatus       string  `json:"burndown_status"`
}

type HighPriorityOpen struct {
	High      int `json:"high"`
	Urgent    int `json:"urgent"`
	Immediate int `json:"immediate"`
	Total     int `json:"total"`
}

type BacklogMetrics struct {
	TotalOpen        int              `json:"total_open"`
	HighPriority     HighPriorityOpen `json:"high_priority"`
	CreatedThisMonth int              `json:"created_this_month"`
	ClosedThisMonth  int              `json:"closed_this_month"`
	NetChange        int              `json:"net_change"`
}

type TeamWorkload struct {
	ByMember      map[string]int `json:"workload_by_member"`
	Overloaded    map[string]int `json:"overloaded_members"`
	TotalAssigned int            `json:"total_assigned"`
	TeamSize      int            `json:"team_size"`
}

type CycleMetrics struct {
	AvgLeadTimeDays  float64 `json:"avg_lead_time_days"`
	AvgCycleTimeDays float64 `json:"avg_cycle_time_days"`
	ReopenedTickets  int     `json:"reopened_tickets"`
	SampleSize       int     `json:"sample_size"`
}

type BugMetrics struct {
	OpenBugs          int      `json:"open_bugs"`
	ClosedBugs        int      `json:"closed_bugs"`
	TotalBugs         int      `json:"total_bugs"`
	TotalCritical     int      `json:"total_critical"`
	TotalStories      int      `json:"total_stories"`
	BugToStoryRatio   *float64 `json:"bug_to_story_ratio"`
	AvgResolutionDays float64  `json:"avg_resolution_days"`
	PostReleaseBugs   int      `json:"post_release_bugs"`
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
	PeriodWeeks       int     `json:"period_weeks"`
	TotalCreated      int     `json:"total_created"`
	TotalClosed       int     `json:"total_closed"`
	NetChange         int     `json:"net_change"`
	AvgCreatedPerWeek float64 `json:"avg_created_per_week"`
	AvgClosedPerWeek  float64 `json:"avg_closed_per_week"`
	Trend             string  `json:"trend"`
}
