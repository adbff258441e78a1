// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/dotctl/dotctl/internal/log"
)

// MinInterval is the shortest accepted schedule.
const MinInterval = time.Minute

// Scheduler repeats a backup on a fixed interval.
type Scheduler struct {
	scheduler gocron.Scheduler
	interval  time.Duration
}

// NewScheduler validates the interval and prepares a scheduler.
func NewScheduler(interval time.Duration) (*Scheduler, error) {
	if interval < MinInterval {
		return nil, fmt.Errorf("backup interval must be at least %s, got %s", MinInterval, interval)
	}
	return newScheduler(interval)
}

func newScheduler(interval time.Duration) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, interval: interval}, nil
}

// Run calls task immediately and then every interval until ctx is done.
// Task errors are logged and do not stop the schedule. A run that is still
// going when the next one is due is skipped.
func (s *Scheduler) Run(ctx context.Context, task func(context.Context) error) error {
	wrapped := func() {
		if err := task(ctx); err != nil {
			log.Errorf("scheduled backup failed: %v", err)
		}
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(wrapped),
		gocron.WithName("dotfiles-backup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule backup: %w", err)
	}

	log.Infof("backup scheduled every %s", s.interval)
	s.scheduler.Start()
	<-ctx.Done()

	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	return nil
}
