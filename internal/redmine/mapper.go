package redmine

import "time"

// mapIssue converts a wire issue into the typed domain record.
// Unparseable timestamps become zero values (for required fields) or nil
// (for nullable ones); per-record decode problems are never fatal.
func mapIssue(d issueDTO) Issue {
	issue := Issue{
		ID:          d.ID,
		Subject:     d.Subject,
		Description: d.Description,
		Project:     Ref(d.Project),
		Tracker:     Ref(d.Tracker),
		Status:      Status(d.Status),
		Priority:    Ref(d.Priority),
		EstimatedHours: d.EstimatedHours,
		SpentHours:     d.SpentHours,
		DoneRatio:      d.DoneRatio,
	}

	if d.AssignedTo != nil {
		ref := Ref(*d.AssignedTo)
		issue.Assignee = &ref
	}
	if d.FixedVersion != nil {
		ref := Ref(*d.FixedVersion)
		issue.Version = &ref
	}

	if t, err := ParseTime(d.CreatedOn); err == nil {
		issue.CreatedOn = t
	}
	if t, err := ParseTime(d.UpdatedOn); err == nil {
		issue.UpdatedOn = t
	}
	issue.ClosedOn = parseOptionalTime(d.ClosedOn)
	issue.StartDate = parseOptionalDate(d.StartDate)
	issue.DueDate = parseOptionalDate(d.DueDate)

	for _, j := range d.Journals {
		issue.Journals = append(issue.Journals, mapJournal(j))
	}

	return issue
}

func mapJournal(d journalDTO) Journal {
	j := Journal{
		ID:     d.ID,
		Author: Ref(d.User),
		Notes:  d.Notes,
	}
	if t, err := ParseTime(d.CreatedOn); err == nil {
		j.CreatedOn = t
	}
	for _, det := range d.Details {
		j.Details = append(j.Details, JournalDetail(det))
	}
	return j
}

func mapVersion(d versionDTO) Version {
	return Version{
		ID:        d.ID,
		ProjectID: d.Project.ID,
		Name:      d.Name,
		Status:    d.Status,
		DueDate:   parseOptionalDate(d.DueDate),
	}
}

func parseOptionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil
	}
	return &t
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}
