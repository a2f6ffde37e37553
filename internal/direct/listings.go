package direct

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"redpulse/internal/history"
	"redpulse/internal/redmine"
)

// Workload groups open issues by assignee from one bounded listing;
// grouping cannot be derived from total_count queries. Unassigned issues
// are not part of anyone's workload and are skipped.
func (e *Engine) Workload(ctx context.Context, scope Scope) (*TeamWorkload, error) {
	page, err := e.client.ListIssues(ctx, scope.filter(redmine.StatusOpen), workloadLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("listing open issues: %w", err)
	}

	w := &TeamWorkload{
		ByMember:   map[string]int{},
		Overloaded: map[string]int{},
	}
	for _, issue := range page.Issues {
		if issue.Assignee == nil {
			continue
		}
		w.ByMember[issue.Assignee.Name]++
	}
	for name, count := range w.ByMember {
		w.TotalAssigned += count
		if count > 10 {
			w.Overloaded[name] = count
		}
	}
	w.TeamSize = len(w.ByMember)
	return w, nil
}

// CycleTime walks the journals of the most recently closed issues and
// reconstructs exact cycle time from status transitions, unlike the
// cached path's closed-minus-updated approximation. Issues whose journal
// fetch fails are skipped, not fatal.
func (e *Engine) CycleTime(ctx context.Context, scope Scope) (*CycleMetrics, error) {
	inProgressID, closedIDs, err := e.statusSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving statuses: %w", err)
	}

	f := scope.filter(redmine.StatusClosed)
	f.Sort = "closed_on:desc"
	page, err := e.client.ListIssues(ctx, f, cycleSampleSize, 0)
	if err != nil {
		return nil, fmt.Errorf("listing closed issues: %w", err)
	}

	m := &CycleMetrics{SampleSize: len(page.Issues)}
	var leads, cycles []float64
	for _, issue := range page.Issues {
		if issue.ClosedOn != nil {
			leads = append(leads, float64(int(issue.ClosedOn.Sub(issue.CreatedOn).Hours()/24)))
		}

		full, err := e.client.GetIssue(ctx, issue.ID, "journals")
		if err != nil {
			log.Warn().Err(err).Int("issue", issue.ID).Msg("Skipping journal walk")
			continue
		}
		tl := history.Reconstruct(full.Journals, inProgressID, closedIDs)
		if tl.Reopened {
			m.ReopenedTickets++
		}
		closedOn := full.ClosedOn
		if closedOn == nil {
			closedOn = issue.ClosedOn
		}
		if days, ok := history.CycleDays(tl, closedOn); ok {
			cycles = append(cycles, days)
		}
	}
	m.AvgLeadTimeDays = round1(mean(leads))
	m.AvgCycleTimeDays = round1(mean(cycles))
	return m, nil
}

// Release reports delivery progress for one project version. With a zero
// scope.VersionID it picks the first open version of the project.
func (e *Engine) Release(ctx context.Context, scope Scope) (*ReleaseStatus, error) {
	if scope.ProjectID == 0 {
		return nil, ErrProjectRequired
	}
	versions, err := e.client.ListVersions(ctx, scope.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}

	var version *redmine.Version
	for i := range versions {
		if scope.VersionID != 0 {
			if versions[i].ID == scope.VersionID {
				version = &versions[i]
				break
			}
			continue
		}
		if versions[i].Status == "open" {
			version = &versions[i]
			break
		}
	}
	if version == nil {
		return nil, ErrNoVersion
	}

	versionScope := Scope{ProjectID: scope.ProjectID, VersionID: version.ID}
	total, err := e.client.CountIssues(ctx, versionScope.filter(redmine.StatusAny))
	if err != nil {
		return nil, fmt.Errorf("counting version issues: %w", err)
	}
	completed, err := e.client.CountIssues(ctx, versionScope.filter(redmine.StatusClosed))
	if err != nil {
		return nil, fmt.Errorf("counting completed version issues: %w", err)
	}

	st := &ReleaseStatus{
		Name:       version.Name,
		Total:      total,
		Completed:  completed,
		Unresolved: total - completed,
		DueDate:    "Not set",
	}
	if total > 0 {
		st.Progress = round1(float64(completed) / float64(total) * 100)
	}
	if version.DueDate != nil {
		st.DueDate = version.DueDate.Format("2006-01-02")
	}
	return st, nil
}

// Velocity ranks a project's versions by closed-issue count. Estimated
// hours are not available through count queries, so issue count is the
// velocity unit on this path.
func (e *Engine) Velocity(ctx context.Context, scope Scope, sprints int) (*VelocityTrend, error) {
	if scope.ProjectID == 0 {
		return nil, ErrProjectRequired
	}
	if sprints <= 0 {
		sprints = 5
	}
	versions, err := e.client.ListVersions(ctx, scope.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}

	ranked := make([]VersionVelocity, 0, len(versions))
	for _, v := range versions {
		f := Scope{ProjectID: scope.ProjectID, VersionID: v.ID}.filter(redmine.StatusClosed)
		count, err := e.client.CountIssues(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("counting closed issues for %s: %w", v.Name, err)
		}
		if count > 0 {
			ranked = append(ranked, VersionVelocity{Name: v.Name, Value: float64(count)})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > sprints {
		ranked = ranked[:sprints]
	}

	trend := &VelocityTrend{Velocities: ranked, Trend: "stable"}
	if len(ranked) >= 2 {
		first, last := ranked[0].Value, ranked[len(ranked)-1].Value
		switch {
		case first > last:
			trend.Trend = "increasing"
		case first < last:
			trend.Trend = "decreasing"
		}
	}
	values := make([]float64, len(ranked))
	for i, v := range ranked {
		values[i] = v.Value
	}
	trend.Average = round1(mean(values))
	return trend, nil
}
