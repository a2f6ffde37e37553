package mcp

import (
	"context"
	"encoding/json"
	"strconv"
)

// Every analytic tool answers with the uniform envelope: success plus a
// named payload, or success=false plus an error string. JSON-RPC errors
// are reserved for protocol problems (unknown tool, bad params).

func ok(key string, payload interface{}) map[string]interface{} {
	return map[string]interface{}{"success": true, key: payload}
}

func fail(err error) map[string]interface{} {
	return map[string]interface{}{"success": false, "error": err.Error()}
}

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}
	if call.Arguments == nil {
		call.Arguments = map[string]interface{}{}
	}

	ctx := context.Background()
	args := call.Arguments

	var data interface{}
	switch call.Name {
	case "refresh_cache":
		data = s.handleRefreshCache(ctx, args)
	case "cache_info":
		data = ok("cache_info", s.cache.Info())
	case "sprint_status":
		data = s.handleSprintStatus(ctx, args)
	case "backlog_health":
		data = s.handleBacklogHealth(ctx, args)
	case "team_workload":
		data = s.handleTeamWorkload(ctx, args)
	case "cycle_time":
		data = s.handleCycleTime(ctx, args)
	case "bug_quality":
		data = s.handleBugQuality(ctx, args)
	case "release_status":
		data = s.handleReleaseStatus(ctx, args)
	case "velocity_trend":
		data = s.handleVelocityTrend(ctx, args)
	case "throughput":
		data = s.handleThroughput(ctx, args)
	case "list_projects":
		data = s.handleListProjects(ctx)
	case "list_issues":
		data = s.handleListIssues(ctx, args)
	case "get_issue":
		data = s.handleGetIssue(ctx, args)
	case "create_issue":
		data = s.handleCreateIssue(ctx, args)
	case "update_issue":
		data = s.handleUpdateIssue(ctx, args)
	case "delete_issue":
		data = s.handleDeleteIssue(ctx, args)
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": s.formatResult(data),
			},
		},
	}, nil
}

// JSON arguments arrive as float64 or string; tolerate both.
func intArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func floatArg(args map[string]interface{}, key string) float64 {
	v, _ := args[key].(float64)
	return v
}

func boolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}
