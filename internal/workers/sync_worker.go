package workers

import (
	"context"
	"sync"
	"time"

	"github.com/drivemirror/drivemirror/internal/drive"
	"github.com/drivemirror/drivemirror/internal/logger"
)

// SyncWorker keeps a mirror fresh by running a full sync on a ticker. The
// worker is idle until Start is called.
type SyncWorker struct {
	drive    *drive.Drive
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncWorker builds a [SyncWorker] syncing d every interval. A zero or
// negative interval defaults to 5 minutes.
func NewSyncWorker(d *drive.Drive, interval time.Duration, log *logger.Logger) *SyncWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SyncWorker{drive: d, interval: interval, logger: log}
}

// Run implements [Worker].
func (w *SyncWorker) Run() {
	w.Start(context.Background())
}

// Start stops any previously running job, then launches a background
// goroutine that syncs every interval. The goroutine exits when ctx is
// cancelled or Stop is called.
func (w *SyncWorker) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.syncOnce(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the worker is not running.
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

// syncOnce drains one full sync. Failures are logged, not returned, so a
// flaky remote does not kill the ticker loop.
func (w *SyncWorker) syncOnce(ctx context.Context) {
	applied := 0
	for _, err := range w.drive.Sync(ctx) {
		if err != nil {
			w.logger.Err(err).
				Str("func", "SyncWorker.syncOnce").
				Msg("periodic sync failed")
			return
		}
		applied++
	}
	w.logger.Debug().
		Str("func", "SyncWorker.syncOnce").
		Int("changes", applied).
		Msg("periodic sync finished")
}
