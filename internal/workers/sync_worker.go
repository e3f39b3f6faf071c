// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/service"
)

// SyncWorker calls SyncService.SyncAll on a ticker so captured notes reach
// Notion without the user asking for it. A zero or negative interval disables
// the worker entirely; sync then runs on demand only.
type SyncWorker struct {
	syncs    service.SyncService
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSyncWorker(syncs service.SyncService, interval time.Duration, log *logger.Logger) *SyncWorker {
	return &SyncWorker{syncs: syncs, interval: interval, logger: log}
}

// Run implements Worker. It launches a background goroutine that runs a full
// sync pass every interval. Overlapping passes are impossible: the service
// rejects a second concurrent run and the worker just waits for the next tick.
// The goroutine exits when Stop is called.
func (w *SyncWorker) Run() {
	if w.interval <= 0 {
		w.logger.Info().Str("func", "SyncWorker.Run").Msg("periodic sync disabled, manual sync only")
		return
	}

	w.Stop()

	w.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				w.runOnce(ctx)
			}
		}
	}()
}

func (w *SyncWorker) runOnce(ctx context.Context) {
	log := w.logger.GetChildLogger("func", "SyncWorker.runOnce")

	report, err := w.syncs.SyncAll(ctx)
	switch {
	case errors.Is(err, service.ErrSyncInProgress):
		log.Debug().Msg("sync already running, tick skipped")
		return
	case err != nil:
		log.Err(err).Msg("periodic sync pass failed")
		return
	}

	event := log.Info()
	if report.Halted {
		event = log.Warn().Str("halted_by", report.HaltedBy)
	}
	event.
		Int("sent", report.Sent).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Msg("periodic sync pass finished")
}

// Stop cancels the background goroutine and blocks until it has fully exited.
// Safe to call when the worker is not running (no-op in that case).
func (w *SyncWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
