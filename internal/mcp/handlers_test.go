package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"redpulse/internal/direct"
	"redpulse/internal/redmine"
	"redpulse/internal/snapshot"
)

type fakeClient struct {
	issues   []redmine.Issue
	statuses []redmine.Status

	countFn    func(f redmine.Filter) (int, error)
	updates    map[int]redmine.IssueUpdate
	deleted    []int
	lastCreate *redmine.NewIssue
}

func (f *fakeClient) ListIssues(ctx context.Context, filter redmine.Filter, limit, offset int) (*redmine.IssuesPage, error) {
	return &redmine.IssuesPage{Issues: f.issues, TotalCount: len(f.issues), Limit: limit}, nil
}

func (f *fakeClient) CountIssues(ctx context.Context, filter redmine.Filter) (int, error) {
	if f.countFn == nil {
		return 0, errors.New("unexpected CountIssues")
	}
	return f.countFn(filter)
}

func (f *fakeClient) GetIssue(ctx context.Context, id int, includes ...string) (*redmine.Issue, error) {
	for _, issue := range f.issues {
		if issue.ID == id {
			return &issue, nil
		}
	}
	return nil, &redmine.RemoteError{StatusCode: 404}
}

func (f *fakeClient) ListProjects(ctx context.Context) ([]redmine.Project, error) {
	return []redmine.Project{{ID: 1, Name: "Core", Identifier: "core"}}, nil
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]redmine.User, error) { return nil, nil }
func (f *fakeClient) ListVersions(ctx context.Context, projectID int) ([]redmine.Version, error) {
	return nil, nil
}
func (f *fakeClient) ListStatuses(ctx context.Context) ([]redmine.Status, error) {
	return f.statuses, nil
}
func (f *fakeClient) ListTrackers(ctx context.Context) ([]redmine.Tracker, error) { return nil, nil }

func (f *fakeClient) CreateIssue(ctx context.Context, issue redmine.NewIssue) (*redmine.Issue, error) {
	f.lastCreate = &issue
	return &redmine.Issue{ID: 99, Subject: issue.Subject}, nil
}

func (f *fakeClient) UpdateIssue(ctx context.Context, id int, update redmine.IssueUpdate) error {
	if f.updates == nil {
		f.updates = map[int]redmine.IssueUpdate{}
	}
	f.updates[id] = update
	return nil
}

func (f *fakeClient) DeleteIssue(ctx context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func testServer(f *fakeClient) *Server {
	cache := snapshot.New(f, time.Minute)
	return NewServer(cache, direct.NewEngine(f), f)
}

// call runs one tools/call round trip and decodes the envelope out of
// the MCP text content.
func call(t *testing.T, s *Server, name string, args map[string]interface{}) map[string]interface{} {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	if err != nil {
		t.Fatal(err)
	}
	result, errRes := s.callTool(params)
	if errRes != nil {
		t.Fatalf("tool %s returned protocol error: %v", name, errRes)
	}

	content := result.(map[string]interface{})["content"].([]interface{})
	text := content[0].(map[string]interface{})["text"].(string)

	var envelope map[string]interface{}
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		t.Fatalf("envelope is not JSON: %v\n%s", err, text)
	}
	return envelope
}

func seededServer(t *testing.T) *Server {
	t.Helper()
	now := time.Now()
	var issues []redmine.Issue
	for i := 1; i <= 10; i++ {
		issue := redmine.Issue{
			ID:        i,
			Subject:   "task",
			Project:   redmine.Ref{ID: 1, Name: "Core"},
			Tracker:   redmine.Ref{ID: 2, Name: "Feature"},
			Status:    redmine.Status{ID: 1, Name: "New"},
			Priority:  redmine.Ref{ID: 2, Name: "Normal"},
			CreatedOn: now.Add(-72 * time.Hour),
			UpdatedOn: now,
		}
		if i <= 4 {
			closedOn := now.Add(-time.Duration(i) * time.Hour)
			issue.Status = redmine.Status{ID: 5, Name: "Closed", IsClosed: true}
			issue.ClosedOn = &closedOn
		}
		issues = append(issues, issue)
	}

	s := testServer(&fakeClient{
		issues:   issues,
		statuses: []redmine.Status{{ID: 1, Name: "New"}, {ID: 5, Name: "Closed", IsClosed: true}},
	})
	if res := s.cache.Refresh(context.Background(), true); res.Status != snapshot.RefreshSuccess {
		t.Fatalf("seed refresh: %+v", res)
	}
	return s
}

func TestInitialize(t *testing.T) {
	s := testServer(&fakeClient{})
	resp := s.handleRequest(JSONRPCRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	info := resp.Result.(map[string]interface{})["serverInfo"].(map[string]interface{})
	if info["name"] != "redpulse" {
		t.Errorf("serverInfo.name = %v", info["name"])
	}
}

func TestUnknownMethodAndTool(t *testing.T) {
	s := testServer(&fakeClient{})

	resp := s.handleRequest(JSONRPCRequest{JSONRPC: "2.0", ID: 1, Method: "resources/list"})
	if resp.Error == nil {
		t.Error("unknown method must return a JSON-RPC error")
	}

	params, _ := json.Marshal(map[string]interface{}{"name": "no_such_tool"})
	if _, errRes := s.callTool(params); errRes == nil {
		t.Error("unknown tool must return a JSON-RPC error")
	}
}

func TestToolsListCoversCatalog(t *testing.T) {
	s := testServer(&fakeClient{})
	listed := s.listTools().(map[string]interface{})["tools"].([]interface{})

	names := map[string]bool{}
	for _, tool := range listed {
		names[tool.(map[string]interface{})["name"].(string)] = true
	}
	for _, want := range []string{
		"refresh_cache", "cache_info",
		"sprint_status", "backlog_health", "team_workload", "cycle_time",
		"bug_quality", "release_status", "velocity_trend", "throughput",
		"list_projects", "list_issues", "get_issue",
		"create_issue", "update_issue", "delete_issue",
	} {
		if !names[want] {
			t.Errorf("tool %s missing from tools/list", want)
		}
	}
}

func TestCachedAnalyticsRequireRefresh(t *testing.T) {
	s := testServer(&fakeClient{})

	envelope := call(t, s, "sprint_status", nil)
	if envelope["success"] != false {
		t.Fatal("query before refresh must fail in the envelope")
	}
	if envelope["error"] == "" {
		t.Error("error message missing")
	}
}

func TestSprintStatusFromCache(t *testing.T) {
	s := seededServer(t)

	envelope := call(t, s, "sprint_status", nil)
	if envelope["success"] != true {
		t.Fatalf("envelope: %v", envelope)
	}
	st := envelope["sprint_status"].(map[string]interface{})
	if st["committed"] != float64(10) || st["completed"] != float64(4) {
		t.Errorf("sprint_status = %v", st)
	}
	if st["completion"] != 40.0 {
		t.Errorf("completion = %v, want 40.0", st["completion"])
	}
}

func TestSprintStatusFresh(t *testing.T) {
	f := &fakeClient{countFn: func(filter redmine.Filter) (int, error) {
		if filter.StatusID == redmine.StatusClosed {
			return 6, nil
		}
		return 10, nil
	}}
	s := testServer(f)

	// No cache refresh needed on the fresh path.
	envelope := call(t, s, "sprint_status", map[string]interface{}{"fresh": true})
	if envelope["success"] != true {
		t.Fatalf("envelope: %v", envelope)
	}
	st := envelope["sprint_status"].(map[string]interface{})
	if st["total_committed"] != float64(10) || st["burndown_status"] != "on_track" {
		t.Errorf("sprint_status = %v", st)
	}
}

func TestRefreshCacheTool(t *testing.T) {
	s := testServer(&fakeClient{statuses: []redmine.Status{{ID: 1, Name: "New"}}})

	envelope := call(t, s, "refresh_cache", map[string]interface{}{"force": true})
	if envelope["success"] != true {
		t.Fatalf("envelope: %v", envelope)
	}
	info := envelope["cache_info"].(map[string]interface{})
	if info["status"] != string(snapshot.RefreshSuccess) {
		t.Errorf("status = %v", info["status"])
	}

	envelope = call(t, s, "cache_info", nil)
	if envelope["cache_info"].(map[string]interface{})["initialized"] != true {
		t.Errorf("cache_info = %v", envelope)
	}
}

func TestTeamWorkloadCachedEnvelopeShape(t *testing.T) {
	s := seededServer(t)

	envelope := call(t, s, "team_workload", nil)
	if _, found := envelope["team_workload"]; !found {
		t.Error("team_workload key missing")
	}
	if _, found := envelope["overloaded_members"]; !found {
		t.Error("overloaded_members key missing")
	}
}

func TestGetIssueValidation(t *testing.T) {
	s := seededServer(t)

	if envelope := call(t, s, "get_issue", nil); envelope["success"] != false {
		t.Error("get_issue without id must fail in the envelope")
	}
	envelope := call(t, s, "get_issue", map[string]interface{}{"issue_id": 3})
	if envelope["success"] != true {
		t.Fatalf("envelope: %v", envelope)
	}
}

func TestCreateIssueValidation(t *testing.T) {
	f := &fakeClient{}
	s := testServer(f)

	if envelope := call(t, s, "create_issue", map[string]interface{}{"subject": "x"}); envelope["success"] != false {
		t.Error("create without project_id must fail")
	}

	envelope := call(t, s, "create_issue", map[string]interface{}{
		"project_id": 1,
		"subject":    "broken login",
		"tracker_id": 1,
	})
	if envelope["success"] != true {
		t.Fatalf("envelope: %v", envelope)
	}
	if f.lastCreate == nil || f.lastCreate.TrackerID != 1 {
		t.Errorf("create payload = %+v", f.lastCreate)
	}
}

func TestUpdateIssueSendsOnlyGivenFields(t *testing.T) {
	f := &fakeClient{}
	s := testServer(f)

	envelope := call(t, s, "update_issue", map[string]interface{}{
		"issue_id":  7,
		"status_id": 2,
		"notes":     "starting work",
	})
	if envelope["success"] != true {
		t.Fatalf("envelope: %v", envelope)
	}

	update := f.updates[7]
	if update.StatusID == nil || *update.StatusID != 2 {
		t.Errorf("status_id = %v", update.StatusID)
	}
	if update.Subject != nil || update.PriorityID != nil {
		t.Error("unset fields must stay nil")
	}
	if update.Notes != "starting work" {
		t.Errorf("notes = %q", update.Notes)
	}
}

func TestDeleteIssue(t *testing.T) {
	f := &fakeClient{}
	s := testServer(f)

	envelope := call(t, s, "delete_issue", map[string]interface{}{"issue_id": 12})
	if envelope["success"] != true {
		t.Fatalf("envelope: %v", envelope)
	}
	if len(f.deleted) != 1 || f.deleted[0] != 12 {
		t.Errorf("deleted = %v", f.deleted)
	}
}
