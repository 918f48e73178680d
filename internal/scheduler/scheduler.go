// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic completeness snapshot job.
package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/msgdepot/msgdepot-go/internal/model"
	"github.com/msgdepot/msgdepot-go/internal/service"
	"github.com/msgdepot/msgdepot-go/internal/stats"
)

// Scheduler periodically recomputes per-locale completeness and warns when a
// locale's coverage drops below the previous snapshot.
type Scheduler struct {
	svc      *service.MessageService
	cron     *cron.Cron
	logger   *slog.Logger
	schedule string

	mu       sync.Mutex
	previous map[string]int // locale -> missing-key count at last snapshot
}

// New creates a scheduler. schedule is a cron spec ("@every 15m" works).
func New(svc *service.MessageService, logger *slog.Logger, schedule string) *Scheduler {
	return &Scheduler{
		svc:      svc,
		cron:     cron.New(),
		logger:   logger,
		schedule: schedule,
		previous: make(map[string]int),
	}
}

// Start registers the snapshot job and begins the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.Snapshot(context.Background()); err != nil {
			s.logger.Error("completeness snapshot failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", s.schedule, "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// Snapshot recomputes completeness for every locale and compares against the
// previous run. A locale whose missing-key count grew gets a WARN record,
// which the event-log handler persists.
func (s *Scheduler) Snapshot(ctx context.Context) error {
	triples, err := s.svc.Triples(ctx)
	if err != nil {
		return err
	}
	calc := stats.NewCalculator(triples)

	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[string]int)
	for _, locale := range calc.AllLocales() {
		missing := len(calc.MissingKeys(locale))
		current[locale] = missing

		if prev, ok := s.previous[locale]; ok && missing > prev {
			s.logger.Warn("completeness regression",
				"category", model.EventCategoryScheduler,
				"locale", locale,
				"missing_before", prev,
				"missing_now", missing,
				"completeness", calc.CompletenessRatio(locale),
			)
			continue
		}

		s.logger.Info("completeness snapshot",
			"locale", locale,
			"missing", missing,
			"completeness", calc.CompletenessRatio(locale),
		)
	}

	s.previous = current
	return nil
}
