// Package jobs schedules background cache refreshes.
package jobs

import (
	"context"
	"time"

	"redpulse/internal/snapshot"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const refreshTimeout = 5 * time.Minute

// Refresher runs cache.Refresh on a cron schedule. The cache's own
// single-flight guard suppresses overlap with manual refreshes, so the
// job never queues behind one already in progress.
type Refresher struct {
	spec  string
	cache *snapshot.Cache
	c     *cron.Cron
}

func NewRefresher(spec string, cache *snapshot.Cache) *Refresher {
	r := &Refresher{
		spec:  spec,
		cache: cache,
		c:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
	if _, err := r.c.AddFunc(spec, r.run); err != nil {
		log.Error().Err(err).Str("spec", spec).Msg("Invalid refresh cron spec, job disabled")
	}
	return r
}

func (r *Refresher) Start() {
	log.Info().Str("spec", r.spec).Msg("Starting scheduled cache refresh")
	r.c.Start()
}

func (r *Refresher) Stop() { r.c.Stop() }

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	res := r.cache.Refresh(ctx, false)
	switch res.Status {
	case snapshot.RefreshError:
		log.Error().Str("error", res.Error).Msg("Scheduled refresh failed")
	case snapshot.RefreshAlreadyRunning:
		log.Info().Msg("Scheduled refresh skipped, one already in flight")
	default:
		log.Debug().Str("status", string(res.Status)).Msg("Scheduled refresh done")
	}
}
