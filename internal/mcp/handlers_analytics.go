package mcp

import (
	"context"
	"time"

	"redpulse/internal/analytics"
	"redpulse/internal/direct"
	"redpulse/internal/snapshot"
)

func (s *Server) handleRefreshCache(ctx context.Context, args map[string]interface{}) interface{} {
	res := s.cache.Refresh(ctx, boolArg(args, "force"))
	if res.Status == snapshot.RefreshError {
		return map[string]interface{}{"success": false, "error": res.Error}
	}
	return ok("cache_info", res)
}

// cachedRows is the snapshot accessor behind every cached analytic. An
// uninitialized cache surfaces as an error envelope telling the caller
// to run refresh_cache first.
func (s *Server) cachedRows() ([]snapshot.Row, error) {
	return s.cache.Issues(snapshot.IssueFilter{})
}

func (s *Server) cachedScope(args map[string]interface{}) analytics.Scope {
	return analytics.Scope{
		ProjectID:   intArg(args, "project_id"),
		VersionName: stringArg(args, "version_name"),
	}
}

func (s *Server) directScope(args map[string]interface{}) direct.Scope {
	return direct.Scope{
		ProjectID: intArg(args, "project_id"),
		VersionID: intArg(args, "version_id"),
	}
}

func (s *Server) handleSprintStatus(ctx context.Context, args map[string]interface{}) interface{} {
	if boolArg(args, "fresh") {
		st, err := s.engine.Sprint(ctx, s.directScope(args))
		if err != nil {
			return fail(err)
		}
		return ok("sprint_status", st)
	}
	rows, err := s.cachedRows()
	if err != nil {
		return fail(err)
	}
	return ok("sprint_status", analytics.Sprint(rows, s.cachedScope(args)))
}

func (s *Server) handleBacklogHealth(ctx context.Context, args map[string]interface{}) interface{} {
	if boolArg(args, "fresh") {
		m, err := s.engine.Backlog(ctx, s.directScope(args))
		if err != nil {
			return fail(err)
		}
		return ok("backlog_metrics", m)
	}
	rows, err := s.cachedRows()
	if err != nil {
		return fail(err)
	}
	return ok("backlog_metrics", analytics.Backlog(rows, s.cachedScope(args), time.Now()))
}

func (s *Server) handleTeamWorkload(ctx context.Context, args map[string]interface{}) interface{} {
	if boolArg(args, "fresh") {
		w, err := s.engine.Workload(ctx, s.directScope(args))
		if err != nil {
			return fail(err)
		}
		return ok("team_workload", w)
	}
	rows, err := s.cachedRows()
	if err != nil {
		return fail(err)
	}
	w := analytics.Workload(rows, s.cachedScope(args))
	return map[string]interface{}{
		"success":            true,
		"team_workload":      w.ByAssignee,
		"overloaded_members": w.Overloaded,
	}
}

func (s *Server) handleCycleTime(ctx context.Context, args map[string]interface{}) interface{} {
	if boolArg(args, "fresh") {
		m, err := s.engine.CycleTime(ctx, s.directScope(args))
		if err != nil {
			return fail(err)
		}
		return ok("cycle_metrics", m)
	}
	rows, err := s.cachedRows()
	if err != nil {
		return fail(err)
	}
	return ok("cycle_metrics", analytics.CycleTime(rows, s.cachedScope(args)))
}

func (s *Server) handleBugQuality(ctx context.Context, args map[string]interface{}) interface{} {
	if boolArg(args, "fresh") {
		m, err := s.engine.BugQuality(ctx, s.directScope(args))
		if err != nil {
			return fail(err)
		}
		return ok("bug_metrics", m)
	}
	rows, err := s.cachedRows()
	if err != nil {
		return fail(err)
	}
	return ok("bug_metrics", analytics.BugQuality(rows, s.cachedScope(args), time.Now()))
}

func (s *Server) handleReleaseStatus(ctx context.Context, args map[string]interface{}) interface{} {
	if boolArg(args, "fresh") {
		st, err := s.engine.Release(ctx, s.directScope(args))
		if err != nil {
			return fail(err)
		}
		return ok("release_status", st)
	}
	rows, err := s.cachedRows()
	if err != nil {
		return fail(err)
	}
	st, err := analytics.Release(rows, s.cachedScope(args))
	if err != nil {
		return fail(err)
	}
	return ok("release_status", st)
}

func (s *Server) handleVelocityTrend(ctx context.Context, args map[string]interface{}) interface{} {
	sprints := intArg(args, "sprints")
	if boolArg(args, "fresh") {
		v, err := s.engine.Velocity(ctx, s.directScope(args), sprints)
		if err != nil {
			return fail(err)
		}
		return ok("velocity_trend", v)
	}
	rows, err := s.cachedRows()
	if err != nil {
		return fail(err)
	}
	return ok("velocity_trend", analytics.Velocity(rows, s.cachedScope(args), sprints))
}

func (s *Server) handleThroughput(ctx context.Context, args map[string]interface{}) interface{} {
	weeks := intArg(args, "weeks")
	if boolArg(args, "fresh") {
		m, err := s.engine.Throughput(ctx, s.directScope(args), weeks)
		if err != nil {
			return fail(err)
		}
		return ok("throughput", m)
	}
	rows, err := s.cachedRows()
	if err != nil {
		return fail(err)
	}
	return ok("throughput", analytics.Throughput(rows, s.cachedScope(args), weeks, time.Now()))
}
