package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"sumpad/internal/database"
)

const (
	DailyPruneSpec        = "0 3 * * *"
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0
	pruneTimeout          = 1 * time.Minute
)

// Scheduler prunes expired summary history on a daily cron.
type Scheduler struct {
	ctx           context.Context
	cron          *cron.Cron
	db            *database.Database
	retentionDays int64
	log           *slog.Logger
}

func New(
	ctx context.Context,
	db *database.Database,
	retentionDays int64,
	log *slog.Logger,
) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:           ctx,
		cron:          c,
		db:            db,
		retentionDays: retentionDays,
		log:           log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(DailyPruneSpec, s.pruneHistory); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) pruneHistory() {
	ctx, cancel := context.WithTimeout(s.ctx, pruneTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return
	default:
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -int(s.retentionDays))

	deleted, err := s.db.DeleteSummariesOlderThan(ctx, cutoff)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to prune summary history",
			"error", err,
			"cutoff", cutoff,
			"retentionDays", s.retentionDays)
		return
	}

	s.log.InfoContext(ctx, "Summary history is pruned",
		"deleted", deleted,
		"cutoff", cutoff,
		"retentionDays", s.retentionDays)
}
