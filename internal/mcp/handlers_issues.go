package mcp

import (
	"context"
	"fmt"

	"redpulse/internal/redmine"
)

const defaultListLimit = 25

func (s *Server) handleListProjects(ctx context.Context) interface{} {
	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return fail(err)
	}
	return ok("projects", projects)
}

func (s *Server) handleListIssues(ctx context.Context, args map[string]interface{}) interface{} {
	limit := intArg(args, "limit")
	if limit <= 0 {
		limit = defaultListLimit
	}
	f := redmine.Filter{
		StatusID:     stringArg(args, "status"),
		ProjectID:    intArg(args, "project_id"),
		TrackerID:    intArg(args, "tracker_id"),
		AssignedToID: intArg(args, "assigned_to_id"),
	}
	page, err := s.client.ListIssues(ctx, f, limit, intArg(args, "offset"))
	if err != nil {
		return fail(err)
	}
	return ok("issues", page)
}

func (s *Server) handleGetIssue(ctx context.Context, args map[string]interface{}) interface{} {
	id := intArg(args, "issue_id")
	if id == 0 {
		return fail(fmt.Errorf("issue_id is required"))
	}
	var includes []string
	if boolArg(args, "journals") {
		includes = append(includes, "journals")
	}
	issue, err := s.client.GetIssue(ctx, id, includes...)
	if err != nil {
		return fail(err)
	}
	return ok("issue", issue)
}

func (s *Server) handleCreateIssue(ctx context.Context, args map[string]interface{}) interface{} {
	draft := redmine.NewIssue{
		ProjectID:      intArg(args, "project_id"),
		Subject:        stringArg(args, "subject"),
		Description:    stringArg(args, "description"),
		TrackerID:      intArg(args, "tracker_id"),
		PriorityID:     intArg(args, "priority_id"),
		AssignedToID:   intArg(args, "assigned_to_id"),
		EstimatedHours: floatArg(args, "estimated_hours"),
	}
	if draft.ProjectID == 0 || draft.Subject == "" {
		return fail(fmt.Errorf("project_id and subject are required"))
	}
	issue, err := s.client.CreateIssue(ctx, draft)
	if err != nil {
		return fail(err)
	}
	return ok("issue", issue)
}

func (s *Server) handleUpdateIssue(ctx context.Context, args map[string]interface{}) interface{} {
	id := intArg(args, "issue_id")
	if id == 0 {
		return fail(fmt.Errorf("issue_id is required"))
	}

	var update redmine.IssueUpdate
	if v, present := args["subject"].(string); present {
		update.Subject = &v
	}
	if v, present := args["description"].(string); present {
		update.Description = &v
	}
	for key, dest := range map[string]**int{
		"status_id":      &update.StatusID,
		"priority_id":    &update.PriorityID,
		"assigned_to_id": &update.AssignedToID,
		"done_ratio":     &update.DoneRatio,
	} {
		if _, present := args[key]; present {
			v := intArg(args, key)
			*dest = &v
		}
	}
	update.Notes = stringArg(args, "notes")

	if err := s.client.UpdateIssue(ctx, id, update); err != nil {
		return fail(err)
	}
	return ok("issue_id", id)
}

func (s *Server) handleDeleteIssue(ctx context.Context, args map[string]interface{}) interface{} {
	id := intArg(args, "issue_id")
	if id == 0 {
		return fail(fmt.Errorf("issue_id is required"))
	}
	if err := s.client.DeleteIssue(ctx, id); err != nil {
		return fail(err)
	}
	return ok("issue_id", id)
}
