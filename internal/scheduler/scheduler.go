package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"spacemirror/internal/color"
	logger "spacemirror/internal/log"
)

type Task func(ctx context.Context)

// RunEvery runs task right away and then every interval until ctx is cancelled. A run that is
// still going when the next one is due pushes it back instead of overlapping.
func RunEvery(ctx context.Context, interval time.Duration, task Task) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { task(ctx) }),
		gocron.WithName("space-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("failed to create periodic sync job: %w", err)
	}

	logger.Log.Infof("Syncing every %s", color.FgCyan(interval.String()))
	s.Start()
	<-ctx.Done()

	logger.Log.Infof("Stopping scheduler")
	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	return nil
}
