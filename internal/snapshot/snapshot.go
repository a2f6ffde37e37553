package snapshot

import (
	"time"

	"redpulse/internal/redmine"

	"github.com/google/uuid"
)

// Row is one flattened, immutable issue record inside a snapshot.
// StatusClosed is stamped from the status catalog's is_closed flag at
// capture time; analytics never re-derive closedness from status names.
type Row struct {
	ID          int    `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`

	ProjectID    int    `json:"project_id"`
	ProjectName  string `json:"project_name"`
	TrackerID    int    `json:"tracker_id"`
	TrackerName  string `json:"tracker_name"`
	StatusID     int    `json:"status_id"`
	StatusName   string `json:"status_name"`
	StatusClosed bool   `json:"status_closed"`
	PriorityID   int    `json:"priority_id"`
	PriorityName string `json:"priority_name"`
	AssigneeID   int    `json:"assigned_to_id"`
	AssigneeName string `json:"assigned_to_name"`
	VersionID    int    `json:"fixed_version_id"`
	VersionName  string `json:"fixed_version_name"`

	EstimatedHours float64 `json:"estimated_hours"`
	SpentHours     float64 `json:"spent_hours"`
	DoneRatio      int     `json:"done_ratio"`

	CreatedOn time.Time  `json:"created_on"`
	UpdatedOn time.Time  `json:"updated_on"`
	ClosedOn  *time.Time `json:"closed_on,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

// Snapshot is a tagged, point-in-time copy of all tracked collections.
// It is never mutated after construction; a refresh replaces it wholesale.
type Snapshot struct {
	Tag      string
	TakenAt  time.Time
	Rows     []Row
	Projects []redmine.Project
	Users    []redmine.User
	Versions []redmine.Version
}

func newSnapshot(takenAt time.Time) *Snapshot {
	return &Snapshot{
		Tag:     uuid.NewString(),
		TakenAt: takenAt,
	}
}

// flatten converts a typed issue into a snapshot row, applying the
// closed-status set and the "Unassigned" default.
func flatten(issue redmine.Issue, closedIDs map[int]bool) Row {
	row := Row{
		ID:             issue.ID,
		Subject:        issue.Subject,
		Description:    issue.Description,
		ProjectID:      issue.Project.ID,
		ProjectName:    issue.Project.Name,
		TrackerID:      issue.Tracker.ID,
		TrackerName:    issue.Tracker.Name,
		StatusID:       issue.Status.ID,
		StatusName:     issue.Status.Name,
		StatusClosed:   closedIDs[issue.Status.ID] || issue.Status.IsClosed,
		PriorityID:     issue.Priority.ID,
		PriorityName:   issue.Priority.Name,
		AssigneeName:   "Unassigned",
		EstimatedHours: issue.EstimatedHours,
		SpentHours:     issue.SpentHours,
		DoneRatio:      issue.DoneRatio,
		CreatedOn:      issue.CreatedOn,
		UpdatedOn:      issue.UpdatedOn,
		ClosedOn:       issue.ClosedOn,
		StartDate:      issue.StartDate,
		DueDate:        issue.DueDate,
	}
	if issue.Assignee != nil {
		row.AssigneeID = issue.Assignee.ID
		row.AssigneeName = issue.Assignee.Name
	}
	if issue.Version != nil {
		row.VersionID = issue.Version.ID
		row.VersionName = issue.Version.Name
	}
	return row
}

// IssueFilter selects rows from a snapshot. Zero values match everything.
type IssueFilter struct {
	StatusName   string
	ProjectID    int
	AssignedToID int
	TrackerName  string
	VersionID    int
}

func (f IssueFilter) matches(row Row) bool {
	if f.StatusName != "" && row.StatusName != f.StatusName {
		return false
	}
	if f.ProjectID != 0 && row.ProjectID != f.ProjectID {
		return false
	}
	if f.AssignedToID != 0 && row.AssigneeID != f.AssignedToID {
		return false
	}
	if f.TrackerName != "" && row.TrackerName != f.TrackerName {
		return false
	}
	if f.VersionID != 0 && row.VersionID != f.VersionID {
		return false
	}
	return true
}
