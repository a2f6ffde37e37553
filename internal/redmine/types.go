package redmine

import "time"

// Ref is a lightweight reference to another Redmine entity.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Status is an issue status. IsClosed is the authoritative signal for
// whether the status is terminal; analytics never match on status names
// to decide closedness.
type Status struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsClosed bool   `json:"is_closed"`
}

// Tracker is an issue type (Bug, Feature, Story, ...).
type Tracker struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Issue is a fully typed Redmine issue. Nullable fields are pointers;
// a missing assignee, version or timestamp is nil, never a zero stand-in.
type Issue struct {
	ID             int        `json:"id"`
	Subject        string     `json:"subject"`
	Description    string     `json:"description"`
	Project        Ref        `json:"project"`
	Tracker        Ref        `json:"tracker"`
	Status         Status     `json:"status"`
	Priority       Ref        `json:"priority"`
	Assignee       *Ref       `json:"assigned_to,omitempty"`
	Version        *Ref       `json:"fixed_version,omitempty"`
	EstimatedHours float64    `json:"estimated_hours"`
	SpentHours     float64    `json:"spent_hours"`
	DoneRatio      int        `json:"done_ratio"`
	CreatedOn      time.Time  `json:"created_on"`
	UpdatedOn      time.Time  `json:"updated_on"`
	ClosedOn       *time.Time `json:"closed_on,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Journals       []Journal  `json:"journals,omitempty"`
}

// Journal is one audit-trail entry of an issue: a set of field changes
// plus an optional note, in creation order.
type Journal struct {
	ID        int             `json:"id"`
	Author    Ref             `json:"user"`
	Notes     string          `json:"notes,omitempty"`
	CreatedOn time.Time       `json:"created_on"`
	Details   []JournalDetail `json:"details"`
}

// JournalDetail records a single field change within a journal entry.
type JournalDetail struct {
	Property string `json:"property"`
	Name     string `json:"name"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// Project is a Redmine project.
type Project struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Status     int    `json:"status"`
}

// User is a Redmine account.
type User struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Version is a sprint/release container for issues.
type Version struct {
	ID        int        `json:"id"`
	ProjectID int        `json:"project_id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"` // open | locked | closed
	DueDate   *time.Time `json:"due_date,omitempty"`
}

// IssuesPage is one page of a paginated issue listing. TotalCount is the
// server-side total for the query, independent of page size.
type IssuesPage struct {
	Issues     []Issue
	TotalCount int
	Offset     int
	Limit      int
}

// NewIssue is the payload for creating an issue.
type NewIssue struct {
	ProjectID      int     `json:"project_id"`
	Subject        string  `json:"subject"`
	Description    string  `json:"description,omitempty"`
	TrackerID      int     `json:"tracker_id,omitempty"`
	PriorityID     int     `json:"priority_id,omitempty"`
	AssignedToID   int     `json:"assigned_to_id,omitempty"`
	FixedVersionID int     `json:"fixed_version_id,omitempty"`
	EstimatedHours float64 `json:"estimated_hours,omitempty"`
}

// IssueUpdate is a partial update; nil fields are left untouched.
type IssueUpdate struct {
	Subject      *string `json:"subject,omitempty"`
	Description  *string `json:"description,omitempty"`
	StatusID     *int    `json:"status_id,omitempty"`
	PriorityID   *int    `json:"priority_id,omitempty"`
	AssignedToID *int    `json:"assigned_to_id,omitempty"`
	DoneRatio    *int    `json:"done_ratio,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}
