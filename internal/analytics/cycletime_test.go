package analytics

import (
	"testing"
	"time"

	"redpulse/internal/snapshot"
)

func TestCycleTime_Averages(t *testing.T) {
	// Created 10 days before closure, updated 2 days before closure.
	mk := func(id, closedDaysAgo int) snapshot.Row {
		r := row(id, closed(closedDaysAgo))
		r.CreatedOn = r.ClosedOn.Add(-10 * 24 * time.Hour)
		r.UpdatedOn = r.ClosedOn.Add(-2 * 24 * time.Hour)
		return r
	}
	rows := []snapshot.Row{mk(1, 1), mk(2, 2), row(3)}

	m := CycleTime(rows, Scope{})
	if m.AvgLeadTimeDays != 10.0 {
		t.Errorf("avg_lead_time_days = %v, want 10.0", m.AvgLeadTimeDays)
	}
	if m.AvgCycleTimeDays != 2.0 {
		t.Errorf("avg_cycle_time_days = %v, want 2.0", m.AvgCycleTimeDays)
	}
}

func TestCycleTime_SampleCapsAtMostRecent(t *testing.T) {
	var rows []snapshot.Row
	for i := 0; i < cycleSampleSize; i++ {
		r := row(i, closed(i+1))
		r.CreatedOn = r.ClosedOn.Add(-24 * time.Hour)
		rows = append(rows, r)
	}
	// One old closure with a huge lead time that must fall outside the sample.
	old := row(999, closed(400))
	old.CreatedOn = old.ClosedOn.Add(-1000 * 24 * time.Hour)
	rows = append(rows, old)

	m := CycleTime(rows, Scope{})
	if m.AvgLeadTimeDays != 1.0 {
		t.Errorf("avg_lead_time_days = %v, want 1.0 (old outlier excluded)", m.AvgLeadTimeDays)
	}
}

func TestCycleTime_ReopenedCountsAllScopedRows(t *testing.T) {
	rows := []snapshot.Row{
		row(1, subject("Reopened: login broken")),
		row(2, closed(1), subject("reopen after QA")),
		row(3),
	}
	if m := CycleTime(rows, Scope{}); m.ReopenedTickets != 2 {
		t.Errorf("reopened_tickets = %d, want 2", m.ReopenedTickets)
	}
}

func TestCycleTime_NoClosedRows(t *testing.T) {
	m := CycleTime([]snapshot.Row{row(1)}, Scope{})
	if m.AvgLeadTimeDays != 0 || m.AvgCycleTimeDays != 0 {
		t.Errorf("no closed rows must yield zero averages, got %+v", m)
	}
}
