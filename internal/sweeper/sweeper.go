// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

// Package sweeper reverts lapsed chapter reservations in the background.
package sweeper

import (
	"context"
	"log/slog"
	"time"
)

// ExpiryStore is the slice of the chapter store the sweeper needs.
type ExpiryStore interface {
	ExpireLapsed(context context.Context, now time.Time) ([]string, error)
}

// Sweeper periodically releases chapter reservations whose checkout window
// has lapsed without a payment proof.
type Sweeper struct {
	interval time.Duration
	clock    func() time.Time
	store    ExpiryStore
	logger   *slog.Logger
}

// New constructs a [Sweeper]. The clock is injectable so expiry boundaries
// can be exercised deterministically.
func New(interval time.Duration, clock func() time.Time, store ExpiryStore, logger *slog.Logger) *Sweeper {
	if clock == nil {
		clock = time.Now
	}
	return &Sweeper{
		interval: interval,
		clock:    clock,
		store:    store,
		logger:   logger,
	}
}

// Run sweeps on every tick until the context is cancelled. A failed pass is
// logged and the loop keeps going; the next tick retries naturally.
func (sweeper *Sweeper) Run(ctx context.Context) {
	sweeper.logger.Info("sweeper_started", slog.Duration("interval", sweeper.interval))

	ticker := time.NewTicker(sweeper.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sweeper.logger.Info("sweeper_stopped")
			return
		case <-ticker.C:
			sweeper.sweep(ctx)
		}
	}
}

func (sweeper *Sweeper) sweep(ctx context.Context) {
	reverted, err := sweeper.store.ExpireLapsed(ctx, sweeper.clock())
	if err != nil {
		sweeper.logger.Error("sweep_pass_failed", slog.String("error", err.Error()))
		return
	}

	if len(reverted) == 0 {
		return
	}

	sweeper.logger.Info("sweep_pass_finished",
		slog.Int("reverted", len(reverted)),
		slog.Any("chapter_ids", reverted),
	)
}
