package redmine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const pageSize = 100 // Redmine max per page

type restClient struct {
	cfg        Config
	httpClient *http.Client
}

func newRESTClient(cfg Config) *restClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	return &restClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// doJSON performs one API call with the bounded retry policy: transport
// errors, 429 and 5xx are retried with exponential backoff; any other
// non-2xx status fails immediately as a RemoteError.
func (c *restClient) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.cfg.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("redmine: failed to encode request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.RetryMax; attempt++ {
		if attempt > 0 {
			wait := c.cfg.RetryBackoff << (attempt - 1)
			log.Debug().Dur("wait", wait).Int("attempt", attempt).Str("path", path).Msg("Retrying Redmine request")
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
		if err != nil {
			return err
		}
		req.Header.Set("X-Redmine-API-Key", c.cfg.APIKey)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			lastErr = &RemoteError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return &RemoteError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
		}

		if out == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("redmine: failed to decode response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("redmine: request failed after %d attempts: %w", c.cfg.RetryMax+1, lastErr)
}

func (c *restClient) ListIssues(ctx context.Context, f Filter, limit, offset int) (*IssuesPage, error) {
	params := f.Values()
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var resp issuesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/issues.json", params, nil, &resp); err != nil {
		return nil, err
	}

	page := &IssuesPage{
		TotalCount: resp.TotalCount,
		Offset:     resp.Offset,
		Limit:      resp.Limit,
		Issues:     make([]Issue, 0, len(resp.Issues)),
	}
	for _, d := range resp.Issues {
		page.Issues = append(page.Issues, mapIssue(d))
	}
	return page, nil
}

func (c *restClient) CountIssues(ctx context.Context, f Filter) (int, error) {
	// A limit=1 listing; only the server-side total is of interest.
	page, err := c.ListIssues(ctx, f, 1, 0)
	if err != nil {
		return 0, err
	}
	return page.TotalCount, nil
}

func (c *restClient) GetIssue(ctx context.Context, id int, includes ...string) (*Issue, error) {
	params := url.Values{}
	if len(includes) > 0 {
		include := includes[0]
		for _, inc := range includes[1:] {
			include += "," + inc
		}
		params.Set("include", include)
	}

	var resp issueEnvelope
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/issues/%d.json", id), params, nil, &resp); err != nil {
		return nil, err
	}
	issue := mapIssue(resp.Issue)
	return &issue, nil
}

func (c *restClient) ListProjects(ctx context.Context) ([]Project, error) {
	var all []Project
	offset := 0
	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(pageSize))
		params.Set("offset", strconv.Itoa(offset))

		var resp projectsResponse
		if err := c.doJSON(ctx, http.MethodGet, "/projects.json", params, nil, &resp); err != nil {
			return nil, err
		}
		for _, d := range resp.Projects {
			all = append(all, Project(d))
		}
		offset += pageSize
		if len(resp.Projects) == 0 || len(all) >= resp.TotalCount {
			return all, nil
		}
	}
}

func (c *restClient) ListUsers(ctx context.Context) ([]User, error) {
	var all []User
	offset := 0
	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(pageSize))
		params.Set("offset", strconv.Itoa(offset))

		var resp usersResponse
		if err := c.doJSON(ctx, http.MethodGet, "/users.json", params, nil, &resp); err != nil {
			return nil, err
		}
		for _, d := range resp.Users {
			all = append(all, User(d))
		}
		offset += pageSize
		if len(resp.Users) == 0 || len(all) >= resp.TotalCount {
			return all, nil
		}
	}
}

func (c *restClient) ListVersions(ctx context.Context, projectID int) ([]Version, error) {
	var resp versionsResponse
	path := fmt.Sprintf("/projects/%d/versions.json", projectID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	versions := make([]Version, 0, len(resp.Versions))
	for _, d := range resp.Versions {
		versions = append(versions, mapVersion(d))
	}
	return versions, nil
}

func (c *restClient) ListStatuses(ctx context.Context) ([]Status, error) {
	var resp statusesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/issue_statuses.json", nil, nil, &resp); err != nil {
		return nil, err
	}
	statuses := make([]Status, 0, len(resp.IssueStatuses))
	for _, d := range resp.IssueStatuses {
		statuses = append(statuses, Status(d))
	}
	return statuses, nil
}

func (c *restClient) ListTrackers(ctx context.Context) ([]Tracker, error) {
	var resp trackersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/trackers.json", nil, nil, &resp); err != nil {
		return nil, err
	}
	trackers := make([]Tracker, 0, len(resp.Trackers))
	for _, d := range resp.Trackers {
		trackers = append(trackers, Tracker(d))
	}
	return trackers, nil
}

func (c *restClient) CreateIssue(ctx context.Context, issue NewIssue) (*Issue, error) {
	body := map[string]NewIssue{"issue": issue}
	var resp issueEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/issues.json", nil, body, &resp); err != nil {
		return nil, err
	}
	created := mapIssue(resp.Issue)
	log.Info().Int("id", created.ID).Msg("Created Redmine issue")
	return &created, nil
}

func (c *restClient) UpdateIssue(ctx context.Context, id int, update IssueUpdate) error {
	body := map[string]IssueUpdate{"issue": update}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/issues/%d.json", id), nil, body, nil)
}

func (c *restClient) DeleteIssue(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/issues/%d.json", id), nil, nil, nil)
}
