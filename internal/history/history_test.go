package history

import (
	"testing"
	"time"

	"redpulse/internal/redmine"
)

var closedIDs = map[int]bool{5: true, 6: true}

const inProgressID = 2

func statusChange(at time.Time, old, new string) redmine.Journal {
	return redmine.Journal{
		CreatedOn: at,
		Details: []redmine.JournalDetail{
			{Property: "attr", Name: "status_id", OldValue: old, NewValue: new},
		},
	}
}

func TestReconstruct(t *testing.T) {
	day := func(n int) time.Time {
		return time.Date(2026, 3, n, 12, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name            string
		journals        []redmine.Journal
		wantStarted     *time.Time
		wantReopened    bool
		wantTransitions int
	}{
		{
			name:     "no journals",
			journals: nil,
		},
		{
			name: "straight to closed without in-progress",
			journals: []redmine.Journal{
				statusChange(day(1), "1", "5"),
			},
			wantTransitions: 1,
		},
		{
			name: "first in-progress wins over later re-entry",
			journals: []redmine.Journal{
				statusChange(day(1), "1", "2"),
				statusChange(day(3), "2", "1"),
				statusChange(day(5), "1", "2"),
				statusChange(day(8), "2", "5"),
			},
			wantStarted:     ptr(day(1)),
			wantTransitions: 4,
		},
		{
			name: "out of order journals are sorted before the walk",
			journals: []redmine.Journal{
				statusChange(day(5), "1", "2"),
				statusChange(day(2), "1", "2"),
			},
			wantStarted:     ptr(day(2)),
			wantTransitions: 2,
		},
		{
			name: "closed to open is a reopen",
			journals: []redmine.Journal{
				statusChange(day(1), "1", "5"),
				statusChange(day(2), "5", "1"),
			},
			wantReopened:    true,
			wantTransitions: 2,
		},
		{
			name: "closed to closed is not a reopen",
			journals: []redmine.Journal{
				statusChange(day(1), "5", "6"),
			},
			wantTransitions: 1,
		},
		{
			name: "non-status details are ignored",
			journals: []redmine.Journal{
				{
					CreatedOn: day(1),
					Details: []redmine.JournalDetail{
						{Property: "attr", Name: "assigned_to_id", OldValue: "", NewValue: "7"},
						{Property: "attachment", Name: "1", NewValue: "report.pdf"},
					},
				},
			},
		},
		{
			name: "unparseable status values are skipped",
			journals: []redmine.Journal{
				statusChange(day(1), "", "two"),
				statusChange(day(2), "1", "2"),
			},
			wantStarted:     ptr(day(2)),
			wantTransitions: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := Reconstruct(tt.journals, inProgressID, closedIDs)
			if (tl.FirstInProgress == nil) != (tt.wantStarted == nil) {
				t.Fatalf("FirstInProgress = %v, want %v", tl.FirstInProgress, tt.wantStarted)
			}
			if tt.wantStarted != nil && !tl.FirstInProgress.Equal(*tt.wantStarted) {
				t.Errorf("FirstInProgress = %v, want %v", tl.FirstInProgress, tt.wantStarted)
			}
			if tl.Reopened != tt.wantReopened {
				t.Errorf("Reopened = %v, want %v", tl.Reopened, tt.wantReopened)
			}
			if tl.Transitions != tt.wantTransitions {
				t.Errorf("Transitions = %d, want %d", tl.Transitions, tt.wantTransitions)
			}
		})
	}
}

func TestCycleDays(t *testing.T) {
	started := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	closed := started.Add(72 * time.Hour)

	if days, ok := CycleDays(Timeline{FirstInProgress: &started}, &closed); !ok || days != 3 {
		t.Errorf("CycleDays = %v, %v; want 3, true", days, ok)
	}
	if _, ok := CycleDays(Timeline{}, &closed); ok {
		t.Error("missing start must yield no sample")
	}
	if _, ok := CycleDays(Timeline{FirstInProgress: &started}, nil); ok {
		t.Error("missing closure must yield no sample")
	}
	before := started.Add(-time.Hour)
	if _, ok := CycleDays(Timeline{FirstInProgress: &started}, &before); ok {
		t.Error("negative interval must yield no sample")
	}
}

func ptr(t time.Time) *time.Time { return &t }
