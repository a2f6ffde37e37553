package direct

import (
	"context"
	"fmt"
	"time"

	"redpulse/internal/redmine"
)

// Sprint composes committed vs completed from two counts. The closed
// sentinel is resolved server-side from the status catalog's is_closed
// flags, the same definition the snapshot path stamps at capture time.
func (e *Engine) Sprint(ctx context.Context, scope Scope) (*SprintStatus, error) {
	completed, err := e.client.CountIssues(ctx, scope.filter(redmine.StatusClosed))
	if err != nil {
		return nil, fmt.Errorf("counting completed issues: %w", err)
	}
	total, err := e.client.CountIssues(ctx, scope.filter(redmine.StatusAny))
	if err != nil {
		return nil, fmt.Errorf("counting committed issues: %w", err)
	}

	st := &SprintStatus{
		TotalCommitted: total,
		Completed:      completed,
		Remaining:      total - completed,
	}
	if total > 0 {
		st.CompletionPercentage = round1(float64(completed) / float64(total) * 100)
	}
	st.BurndownStatus = "behind"
	if st.CompletionPercentage >= 50 {
		st.BurndownStatus = "on_track"
	}
	return st, nil
}

// Backlog reports open volume, a per-priority breakdown and the rolling
// 30-day created/closed trend, all from counts.
func (e *Engine) Backlog(ctx context.Context, scope Scope) (*BacklogMetrics, error) {
	total, err := e.client.CountIssues(ctx, scope.filter(redmine.StatusOpen))
	if err != nil {
		return nil, fmt.Errorf("counting open issues: %w", err)
	}

	m := &BacklogMetrics{TotalOpen: total}
	for _, p := range []struct {
		id   int
		dest *int
	}{
		{priorityHigh, &m.HighPriority.High},
		{priorityUrgent, &m.HighPriority.Urgent},
		{priorityImmediate, &m.HighPriority.Immediate},
	} {
		f := scope.filter(redmine.StatusOpen)
		f.PriorityID = p.id
		count, err := e.client.CountIssues(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("counting priority %d issues: %w", p.id, err)
		}
		*p.dest = count
	}
	m.HighPriority.Total = m.HighPriority.High + m.HighPriority.Urgent + m.HighPriority.Immediate

	cutoff := e.now().Add(-monthlyWindow)
	createdF := scope.filter(redmine.StatusAny)
	createdF.CreatedSince = cutoff
	if m.CreatedThisMonth, err = e.client.CountIssues(ctx, createdF); err != nil {
		return nil, fmt.Errorf("counting created issues: %w", err)
	}
	closedF := scope.filter(redmine.StatusAny)
	closedF.ClosedSince = cutoff
	if m.ClosedThisMonth, err = e.client.CountIssues(ctx, closedF); err != nil {
		return nil, fmt.Errorf("counting closed issues: %w", err)
	}
	m.NetChange = m.ClosedThisMonth - m.CreatedThisMonth
	return m, nil
}

// BugQuality composes defect metrics from tracker-filtered counts plus
// one capped listing of closed bugs for the resolution average.
func (e *Engine) BugQuality(ctx context.Context, scope Scope) (*BugMetrics, error) {
	trackers, err := e.trackerIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving trackers: %w", err)
	}
	bugID := trackers["Bug"]
	if bugID == 0 {
		return nil, fmt.Errorf("no Bug tracker configured")
	}

	count := func(f redmine.Filter) (int, error) {
		return e.client.CountIssues(ctx, f)
	}
	bugFilter := func(statusID string) redmine.Filter {
		f := scope.filter(statusID)
		f.TrackerID = bugID
		return f
	}

	m := &BugMetrics{}
	if m.OpenBugs, err = count(bugFilter(redmine.StatusOpen)); err != nil {
		return nil, fmt.Errorf("counting open bugs: %w", err)
	}
	if m.TotalBugs, err = count(bugFilter(redmine.StatusAny)); err != nil {
		return nil, fmt.Errorf("counting bugs: %w", err)
	}
	m.ClosedBugs = m.TotalBugs - m.OpenBugs

	for _, priorityID := range []int{priorityHigh, priorityUrgent, priorityImmediate} {
		f := bugFilter(redmine.StatusOpen)
		f.PriorityID = priorityID
		n, err := count(f)
		if err != nil {
			return nil, fmt.Errorf("counting critical bugs: %w", err)
		}
		m.TotalCritical += n
	}

	for _, name := range []string{"Feature", "Story"} {
		id := trackers[name]
		if id == 0 {
			continue
		}
		f := scope.filter(redmine.StatusAny)
		f.TrackerID = id
		n, err := count(f)
		if err != nil {
			return nil, fmt.Errorf("counting stories: %w", err)
		}
		m.TotalStories += n
	}
	if m.TotalStories > 0 {
		ratio := round2(float64(m.TotalBugs) / float64(m.TotalStories))
		m.BugToStoryRatio = &ratio
	}

	recentF := bugFilter(redmine.StatusAny)
	recentF.CreatedSince = e.now().Add(-monthlyWindow)
	if m.PostReleaseBugs, err = count(recentF); err != nil {
		return nil, fmt.Errorf("counting recent bugs: %w", err)
	}

	closedF := bugFilter(redmine.StatusClosed)
	closedF.Sort = "closed_on:desc"
	page, err := e.client.ListIssues(ctx, closedF, resolutionSampleSize, 0)
	if err != nil {
		return nil, fmt.Errorf("listing closed bugs: %w", err)
	}
	var resolutions []float64
	for _, issue := range page.Issues {
		if issue.ClosedOn == nil {
			continue
		}
		days := issue.ClosedOn.Sub(issue.CreatedOn).Hours() / 24
		if days >= 0 {
			resolutions = append(resolutions, float64(int(days)))
		}
	}
	m.AvgResolutionDays = round1(mean(resolutions))
	return m, nil
}

// Throughput compares creation and closure counts over a rolling window
// of weeks*7 days.
func (e *Engine) Throughput(ctx context.Context, scope Scope, weeks int) (*ThroughputMetrics, error) {
	if weeks <= 0 {
		weeks = 4
	}
	cutoff := e.now().Add(-time.Duration(weeks) * 7 * 24 * time.Hour)

	createdF := scope.filter(redmine.StatusAny)
	createdF.CreatedSince = cutoff
	created, err := e.client.CountIssues(ctx, createdF)
	if err != nil {
		return nil, fmt.Errorf("counting created issues: %w", err)
	}
	closedF := scope.filter(redmine.StatusAny)
	closedF.ClosedSince = cutoff
	closed, err := e.client.CountIssues(ctx, closedF)
	if err != nil {
		return nil, fmt.Errorf("counting closed issues: %w", err)
	}

	m := &ThroughputMetrics{
		PeriodWeeks:       weeks,
		TotalCreated:      created,
		TotalClosed:       closed,
		NetChange:         closed - created,
		AvgCreatedPerWeek: round1(float64(created) / float64(weeks)),
		AvgClosedPerWeek:  round1(float64(closed) / float64(weeks)),
		Trend:             "negative",
	}
	if closed > created {
		m.Trend = "positive"
	}
	return m, nil
}
