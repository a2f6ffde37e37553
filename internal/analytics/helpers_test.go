package analytics

import (
	"time"

	"redpulse/internal/snapshot"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

// rowOpt mutates a baseline row in fixtures.
type rowOpt func(*snapshot.Row)

func row(id int, opts ...rowOpt) snapshot.Row {
	r := snapshot.Row{
		ID:           id,
		Subject:      "implement widget",
		ProjectID:    1,
		ProjectName:  "Core",
		TrackerID:    2,
		TrackerName:  "Feature",
		StatusID:     1,
		StatusName:   "New",
		PriorityName: "Normal",
		AssigneeName: "Unassigned",
		CreatedOn:    testNow.Add(-10 * 24 * time.Hour),
		UpdatedOn:    testNow.Add(-24 * time.Hour),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func closed(daysAgo int) rowOpt {
	return func(r *snapshot.Row) {
		at := testNow.Add(-time.Duration(daysAgo) * 24 * time.Hour)
		r.StatusID = 5
		r.StatusName = "Closed"
		r.StatusClosed = true
		r.ClosedOn = &at
		r.UpdatedOn = at
	}
}

func project(id int) rowOpt {
	return func(r *snapshot.Row) { r.ProjectID = id }
}

func version(name string) rowOpt {
	return func(r *snapshot.Row) { r.VersionName = name }
}

func tracker(name string) rowOpt {
	return func(r *snapshot.Row) { r.TrackerName = name }
}

func priority(name string) rowOpt {
	return func(r *snapshot.Row) { r.PriorityName = name }
}

func assignee(name string) rowOpt {
	return func(r *snapshot.Row) { r.AssigneeName = name }
}

func subject(s string) rowOpt {
	return func(r *snapshot.Row) { r.Subject = s }
}

func status(name string) rowOpt {
	return func(r *snapshot.Row) { r.StatusName = name }
}

func estimated(hours float64) rowOpt {
	return func(r *snapshot.Row) { r.EstimatedHours = hours }
}

func spent(hours float64) rowOpt {
	return func(r *snapshot.Row) { r.SpentHours = hours }
}

func createdDaysAgo(days int) rowOpt {
	return func(r *snapshot.Row) { r.CreatedOn = testNow.Add(-time.Duration(days) * 24 * time.Hour) }
}
