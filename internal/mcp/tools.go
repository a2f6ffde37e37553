package mcp

func (s *Server) listTools() interface{} {
	projectArg := map[string]interface{}{"type": "integer", "description": "Restrict to one project"}
	freshArg := map[string]interface{}{"type": "boolean", "description": "Bypass the cache and query the API directly"}

	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "refresh_cache",
				"description": "Refresh the issue snapshot from Redmine. No-op while fresh unless force is set.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"force": map[string]interface{}{"type": "boolean"},
					},
				},
			},
			map[string]interface{}{
				"name":        "cache_info",
				"description": "Report snapshot age, staleness and hit/miss counters.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "sprint_status",
				"description": "Committed vs completed work, blocked and in-progress counts for a sprint.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_id":   projectArg,
						"version_name": map[string]interface{}{"type": "string", "description": "Sprint/version name (cached path)"},
						"version_id":   map[string]interface{}{"type": "integer", "description": "Sprint/version id (direct path)"},
						"fresh":        freshArg,
					},
				},
			},
			map[string]interface{}{
				"name":        "backlog_health",
				"description": "Open backlog size, priority and estimation coverage, aging and 30-day trend.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_id": projectArg,
						"fresh":      freshArg,
					},
				},
			},
			map[string]interface{}{
				"name":        "team_workload",
				"description": "Open issues per assignee and overloaded members.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_id": projectArg,
						"fresh":      freshArg,
					},
				},
			},
			map[string]interface{}{
				"name":        "cycle_time",
				"description": "Average lead and cycle time over recently closed issues. The fresh path reconstructs cycle time from journals.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_id": projectArg,
						"fresh":      freshArg,
					},
				},
			},
			map[string]interface{}{
				"name":        "bug_quality",
				"description": "Bug volume, criticality, bug-to-story ratio and resolution time.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_id": projectArg,
						"fresh":      freshArg,
					},
				},
			},
			map[string]interface{}{
				"name":        "release_status",
				"description": "Delivery progress for one version; picks the busiest open version when none is given.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_id":   projectArg,
						"version_name": map[string]interface{}{"type": "string"},
						"version_id":   map[string]interface{}{"type": "integer"},
						"fresh":        freshArg,
					},
				},
			},
			map[string]interface{}{
				"name":        "velocity_trend",
				"description": "Velocity by version with a trend over the top sprints.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_id": projectArg,
						"sprints":    map[string]interface{}{"type": "integer", "description": "How many versions to compare (default 5)"},
						"fresh":      freshArg,
					},
				},
			},
			map[string]interface{}{
				"name":        "throughput",
				"description": "Created vs closed issues over a rolling window.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_id": projectArg,
						"weeks":      map[string]interface{}{"type": "integer", "description": "Window size in weeks (default 4)"},
						"fresh":      freshArg,
					},
				},
			},
			map[string]interface{}{
				"name":        "list_projects",
				"description": "List all visible projects.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "list_issues",
				"description": "List issues with server-side filters.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_id":     projectArg,
						"status":         map[string]interface{}{"type": "string", "enum": []string{"open", "closed", "*"}},
						"assigned_to_id": map[string]interface{}{"type": "integer"},
						"tracker_id":     map[string]interface{}{"type": "integer"},
						"limit":          map[string]interface{}{"type": "integer", "description": "Page size (default 25)"},
						"offset":         map[string]interface{}{"type": "integer"},
					},
				},
			},
			map[string]interface{}{
				"name":        "get_issue",
				"description": "Fetch one issue, optionally with its journal history.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"issue_id": map[string]interface{}{"type": "integer"},
						"journals": map[string]interface{}{"type": "boolean"},
					},
					"required": []string{"issue_id"},
				},
			},
			map[string]interface{}{
				"name":        "create_issue",
				"description": "Create a new issue.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"project_id":      map[string]interface{}{"type": "integer"},
						"subject":         map[string]interface{}{"type": "string"},
						"description":     map[string]interface{}{"type": "string"},
						"tracker_id":      map[string]interface{}{"type": "integer"},
						"priority_id":     map[string]interface{}{"type": "integer"},
						"assigned_to_id":  map[string]interface{}{"type": "integer"},
						"estimated_hours": map[string]interface{}{"type": "number"},
					},
					"required": []string{"project_id", "subject"},
				},
			},
			map[string]interface{}{
				"name":        "update_issue",
				"description": "Update fields on an existing issue; only given fields change.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"issue_id":       map[string]interface{}{"type": "integer"},
						"subject":        map[string]interface{}{"type": "string"},
						"description":    map[string]interface{}{"type": "string"},
						"status_id":      map[string]interface{}{"type": "integer"},
						"priority_id":    map[string]interface{}{"type": "integer"},
						"assigned_to_id": map[string]interface{}{"type": "integer"},
						"done_ratio":     map[string]interface{}{"type": "integer"},
						"notes":          map[string]interface{}{"type": "string"},
					},
					"required": []string{"issue_id"},
				},
			},
			map[string]interface{}{
				"name":        "delete_issue",
				"description": "Delete an issue permanently.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"issue_id": map[string]interface{}{"type": "integer"},
					},
					"required": []string{"issue_id"},
				},
			},
		},
	}
}
