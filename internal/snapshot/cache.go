package snapshot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"redpulse/internal/redmine"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrNotInitialized is returned by Issues before the first successful
// refresh. This is a hard failure on purpose: callers must refresh first
// instead of silently analysing an empty dataset.
var ErrNotInitialized = errors.New("snapshot: cache not initialized, call Refresh first")

// RefreshStatus describes the outcome of a Refresh call.
type RefreshStatus string

const (
	RefreshSuccess        RefreshStatus = "success"
	RefreshAlreadyRunning RefreshStatus = "already_refreshing"
	RefreshFresh          RefreshStatus = "cache_fresh"
	RefreshError          RefreshStatus = "error"
)

// RefreshResult reports what a Refresh call did.
type RefreshResult struct {
	Status          RefreshStatus `json:"status"`
	AgeSeconds      int           `json:"age_seconds,omitempty"`
	IssueCount      int           `json:"issues_count,omitempty"`
	ProjectCount    int           `json:"projects_count,omitempty"`
	UserCount       int           `json:"users_count,omitempty"`
	VersionCount    int           `json:"versions_count,omitempty"`
	DurationSeconds float64       `json:"duration_seconds,omitempty"`
	Timestamp       string        `json:"timestamp,omitempty"`
	Error           string        `json:"error,omitempty"`
}

// Stats are the cache usage counters.
type Stats struct {
	Refreshes           int     `json:"total_refreshes"`
	LastRefreshDuration float64 `json:"last_refresh_duration"`
	Hits                int     `json:"cache_hits"`
	Misses              int     `json:"cache_misses"`
}

// CacheInfo is an observability view of the cache. Reading it has no
// side effects.
type CacheInfo struct {
	Initialized bool           `json:"initialized"`
	LastUpdated string         `json:"last_updated,omitempty"`
	AgeSeconds  int            `json:"age_seconds"`
	IsStale     bool           `json:"is_stale"`
	TTLSeconds  int            `json:"ttl_seconds"`
	Stats       Stats          `json:"stats"`
	Counts      map[string]int `json:"counts"`
}

// Cache holds the current snapshot and its refresh machinery. Refresh is
// the only mutator; readers never block on a running refresh and never
// observe a half-built snapshot.
type Cache struct {
	client redmine.Client
	ttl    time.Duration
	now    func() time.Time

	refreshing atomic.Bool

	mu          sync.RWMutex
	snap        *Snapshot
	lastRefresh time.Time
	stats       Stats
}

// New constructs a cache around the given client. There is no global
// cache instance; callers own the object and its lifetime.
func New(client redmine.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

// IsStale reports whether a refresh is due: no snapshot yet, or the
// current one has outlived the TTL.
func (c *Cache) IsStale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return true
	}
	return c.now().Sub(c.lastRefresh) > c.ttl
}

func (c *Cache) age() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastRefresh.IsZero() {
		return 0
	}
	return int(c.now().Sub(c.lastRefresh).Seconds())
}

// Refresh rebuilds the snapshot from the remote API. A second concurrent
// call observes already_refreshing and returns immediately; it neither
// blocks nor queues. When not forced and the snapshot is still fresh, no
// remote call is made. Any fetch failure aborts the whole refresh and
// the previous snapshot stays in place untouched.
func (c *Cache) Refresh(ctx context.Context, force bool) RefreshResult {
	if !c.refreshing.CompareAndSwap(false, true) {
		return RefreshResult{Status: RefreshAlreadyRunning}
	}
	defer c.refreshing.Store(false)

	if !force && !c.IsStale() {
		return RefreshResult{Status: RefreshFresh, AgeSeconds: c.age()}
	}

	start := c.now()
	log.Info().Bool("force", force).Msg("Refreshing snapshot cache")

	var (
		issues    []redmine.Issue
		projects  []redmine.Project
		users     []redmine.User
		versions  []redmine.Version
		closedIDs map[int]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		issues, err = c.fetchAllIssues(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = c.client.ListProjects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = c.client.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		versions, err = c.fetchAllVersions(gctx)
		return err
	})
	g.Go(func() error {
		statuses, err := c.client.ListStatuses(gctx)
		if err != nil {
			return err
		}
		closedIDs = make(map[int]bool, len(statuses))
		for _, s := range statuses {
			if s.IsClosed {
				closedIDs[s.ID] = true
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Snapshot refresh failed, keeping previous snapshot")
		return RefreshResult{Status: RefreshError, Error: err.Error()}
	}

	snap := newSnapshot(c.now())
	snap.Rows = make([]Row, 0, len(issues))
	for _, issue := range issues {
		snap.Rows = append(snap.Rows, flatten(issue, closedIDs))
	}
	snap.Projects = projects
	snap.Users = users
	snap.Versions = versions

	duration := c.now().Sub(start).Seconds()

	c.mu.Lock()
	c.snap = snap
	c.lastRefresh = snap.TakenAt
	c.stats.Refreshes++
	c.stats.LastRefreshDuration = duration
	c.mu.Unlock()

	log.Info().
		Str("tag", snap.Tag).
		Int("issues", len(snap.Rows)).
		Int("projects", len(projects)).
		Int("users", len(users)).
		Int("versions", len(versions)).
		Float64("seconds", duration).
		Msg("Snapshot cache refreshed")

	return RefreshResult{
		Status:          RefreshSuccess,
		IssueCount:      len(snap.Rows),
		ProjectCount:    len(projects),
		UserCount:       len(users),
		VersionCount:    len(versions),
		DurationSeconds: duration,
		Timestamp:       snap.TakenAt.Format(time.RFC3339),
	}
}

// fetchAllIssues paginates the issue listing to exhaustion against the
// server-side total. Pages are strictly sequential; each offset depends
// on the running count.
func (c *Cache) fetchAllIssues(ctx context.Context) ([]redmine.Issue, error) {
	var all []redmine.Issue
	offset := 0
	for {
		page, err := c.client.ListIssues(ctx, redmine.Filter{StatusID: redmine.StatusAny}, pageLimit, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Issues...)
		offset += pageLimit
		if len(page.Issues) == 0 || len(all) >= page.TotalCount {
			return all, nil
		}
	}
}

const pageLimit = 100

// fetchAllVersions walks the project list and collects each project's
// versions; the versions resource is project-scoped.
func (c *Cache) fetchAllVersions(ctx context.Context) ([]redmine.Version, error) {
	projects, err := c.client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	var all []redmine.Version
	for _, p := range projects {
		versions, err := c.client.ListVersions(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, versions...)
	}
	return all, nil
}

// Issues returns a filtered copy of the current snapshot's rows. Before
// the first successful refresh it fails hard with ErrNotInitialized.
func (c *Cache) Issues(filter IssueFilter) ([]Row, error) {
	c.mu.Lock()
	snap := c.snap
	if snap == nil {
		c.stats.Misses++
		c.mu.Unlock()
		return nil, ErrNotInitialized
	}
	c.stats.Hits++
	c.mu.Unlock()

	rows := make([]Row, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		if filter.matches(row) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Current returns the active snapshot, or nil before the first refresh.
func (c *Cache) Current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Info reports cache state and counters for observability.
func (c *Cache) Info() CacheInfo {
	stale := c.IsStale()
	age := c.age()

	c.mu.RLock()
	defer c.mu.RUnlock()

	info := CacheInfo{
		Initialized: c.snap != nil,
		AgeSeconds:  age,
		IsStale:     stale,
		TTLSeconds:  int(c.ttl.Seconds()),
		Stats:       c.stats,
		Counts:      map[string]int{"issues": 0, "projects": 0, "users": 0, "versions": 0},
	}
	if !c.lastRefresh.IsZero() {
		info.LastUpdated = c.lastRefresh.Format(time.RFC3339)
	}
	if c.snap != nil {
		info.Counts["issues"] = len(c.snap.Rows)
		info.Counts["projects"] = len(c.snap.Projects)
		info.Counts["users"] = len(c.snap.Users)
		info.Counts["versions"] = len(c.snap.Versions)
	}
	return info
}
