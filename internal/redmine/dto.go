package redmine

import "time"

// Wire-level shapes for the Redmine JSON API. Every remote payload is
// decoded into one of these; raw maps never cross the package boundary.

type refDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type statusDTO struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsClosed bool   `json:"is_closed"`
}

type issueDTO struct {
	ID             int          `json:"id"`
	Subject        string       `json:"subject"`
	Description    string       `json:"description"`
	Project        refDTO       `json:"project"`
	Tracker        refDTO       `json:"tracker"`
	Status         statusDTO    `json:"status"`
	Priority       refDTO       `json:"priority"`
	AssignedTo     *refDTO      `json:"assigned_to,omitempty"`
	FixedVersion   *refDTO      `json:"fixed_version,omitempty"`
	EstimatedHours float64      `json:"estimated_hours"`
	SpentHours     float64      `json:"spent_hours"`
	DoneRatio      int          `json:"done_ratio"`
	CreatedOn      string       `json:"created_on"`
	UpdatedOn      string       `json:"updated_on"`
	ClosedOn       string       `json:"closed_on,omitempty"`
	StartDate      string       `json:"start_date,omitempty"`
	DueDate        string       `json:"due_date,omitempty"`
	Journals       []journalDTO `json:"journals,omitempty"`
}

type journalDTO struct {
	ID        int                `json:"id"`
	User      refDTO             `json:"user"`
	Notes     string             `json:"notes"`
	CreatedOn string             `json:"created_on"`
	Details   []journalDetailDTO `json:"details"`
}

type journalDetailDTO struct {
	Property string `json:"property"`
	Name     string `json:"name"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

type issuesResponse struct {
	Issues     []issueDTO `json:"issues"`
	TotalCount int        `json:"total_count"`
	Offset     int        `json:"offset"`
	Limit      int        `json:"limit"`
}

type issueEnvelope struct {
	Issue issueDTO `json:"issue"`
}

type projectDTO struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Status     int    `json:"status"`
}

type projectsResponse struct {
	Projects   []projectDTO `json:"projects"`
	TotalCount int          `json:"total_count"`
}

type userDTO struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type usersResponse struct {
	Users      []userDTO `json:"users"`
	TotalCount int       `json:"total_count"`
}

type versionDTO struct {
	ID      int    `json:"id"`
	Project refDTO `json:"project"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	DueDate string `json:"due_date,omitempty"`
}

type versionsResponse struct {
	Versions []versionDTO `json:"versions"`
}

type statusesResponse struct {
	IssueStatuses []statusDTO `json:"issue_statuses"`
}

type trackersResponse struct {
	Trackers []refDTO `json:"trackers"`
}

// ParseTime parses a Redmine timestamp (RFC3339, e.g. 2024-01-02T08:12:32Z).
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ParseDate parses a Redmine date-only field (e.g. 2024-01-02).
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
