package redmine

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Status sentinels accepted by the issues endpoint.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
	StatusAny    = "*"
)

// Filter describes the server-side filters of an issue listing or count.
// Zero values are omitted from the query.
type Filter struct {
	StatusID       string // open | closed | * | numeric status id
	ProjectID      int
	TrackerID      int
	PriorityID     int
	AssignedToID   int
	FixedVersionID int

	// CreatedSince / ClosedSince translate to ">=YYYY-MM-DD" operators.
	CreatedSince time.Time
	ClosedSince  time.Time

	// CreatedBetween / ClosedBetween translate to "><start|end".
	CreatedBetween *DateRange
	ClosedBetween  *DateRange

	Sort string // e.g. "closed_on:desc"
}

// DateRange is a closed interval of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) operator() string {
	return fmt.Sprintf("><%s|%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// Values encodes the filter as request query parameters.
func (f Filter) Values() url.Values {
	v := url.Values{}

	if f.StatusID != "" {
		v.Set("status_id", f.StatusID)
	}
	if f.ProjectID != 0 {
		v.Set("project_id", strconv.Itoa(f.ProjectID))
	}
	if f.TrackerID != 0 {
		v.Set("tracker_id", strconv.Itoa(f.TrackerID))
	}
	if f.PriorityID != 0 {
		v.Set("priority_id", strconv.Itoa(f.PriorityID))
	}
	if f.AssignedToID != 0 {
		v.Set("assigned_to_id", strconv.Itoa(f.AssignedToID))
	}
	if f.FixedVersionID != 0 {
		v.Set("fixed_version_id", strconv.Itoa(f.FixedVersionID))
	}

	switch {
	case f.CreatedBetween != nil:
		v.Set("created_on", f.CreatedBetween.operator())
	case !f.CreatedSince.IsZero():
		v.Set("created_on", ">="+f.CreatedSince.Format("2006-01-02"))
	}
	switch {
	case f.ClosedBetween != nil:
		v.Set("closed_on", f.ClosedBetween.operator())
	case !f.ClosedSince.IsZero():
		v.Set("closed_on", ">="+f.ClosedSince.Format("2006-01-02"))
	}

	if f.Sort != "" {
		v.Set("sort", f.Sort)
	}

	return v
}
