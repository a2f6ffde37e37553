package redmine

import (
	"context"
	"time"
)

// Config holds the connection settings for a Redmine instance.
type Config struct {
	BaseURL string
	APIKey  string

	// Every request is bounded by Timeout; there is no cancellation of
	// in-flight requests beyond the context.
	Timeout time.Duration

	// Transient-failure policy: RetryMax additional attempts with
	// exponential backoff starting at RetryBackoff.
	RetryMax     int
	RetryBackoff time.Duration
}

// Client is the interface for interacting with the Redmine REST API.
type Client interface {
	// ListIssues fetches one page of issues. The returned page carries
	// the server-side total for the filter, which drives pagination.
	ListIssues(ctx context.Context, f Filter, limit, offset int) (*IssuesPage, error)

	// CountIssues returns the total number of issues matching the filter
	// without transferring issue bodies (a limit=1 listing).
	CountIssues(ctx context.Context, f Filter) (int, error)

	// GetIssue fetches a single issue, optionally with associated data
	// such as "journals".
	GetIssue(ctx context.Context, id int, includes ...string) (*Issue, error)

	ListProjects(ctx context.Context) ([]Project, error)
	ListUsers(ctx context.Context) ([]User, error)
	ListVersions(ctx context.Context, projectID int) ([]Version, error)
	ListStatuses(ctx context.Context) ([]Status, error)
	ListTrackers(ctx context.Context) ([]Tracker, error)

	CreateIssue(ctx context.Context, issue NewIssue) (*Issue, error)
	UpdateIssue(ctx context.Context, id int, update IssueUpdate) error
	DeleteIssue(ctx context.Context, id int) error
}

// NewClient creates a Redmine client from the provided configuration.
func NewClient(cfg Config) Client {
	return newRESTClient(cfg)
}
