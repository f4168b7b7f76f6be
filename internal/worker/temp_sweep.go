// Package worker holds the background jobs started next to the HTTP server.
package worker

import (
	"context"
	"time"

	"github.com/Aniket1026/yoto/internal/logger"
	"github.com/Aniket1026/yoto/internal/utility"
)

// Sweeper removes files older than a cutoff and reports how many went.
type Sweeper interface {
	Sweep(cutoff time.Time) (int, error)
}

// TempSweepWorker removes staged uploads left behind by requests that died
// before their cleanup ran.
type TempSweepWorker struct {
	temp     Sweeper
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time
}

// NewTempSweepWorker clamps interval to at least a minute and maxAge to at
// least the upload window of 10 minutes.
func NewTempSweepWorker(temp Sweeper, interval, maxAge time.Duration) *TempSweepWorker {
	if interval < time.Minute {
		interval = 10 * time.Minute
	}
	if maxAge < 10*time.Minute {
		maxAge = time.Hour
	}
	return &TempSweepWorker{temp: temp, interval: interval, maxAge: maxAge, now: time.Now}
}

// Start runs until ctx is cancelled.
func (w *TempSweepWorker) Start(ctx context.Context) {
	log := logger.WithModule("temp_sweep")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
		"maxAge":   w.maxAge.String(),
	}).Info("starting temp sweep worker")

	for {
		select {
		case <-ctx.Done():
			log.Info("temp sweep worker stopped")
			return
		case <-ticker.C:
			w.runOnce()
		}
	}
}

// runOnce sweeps once. A panic is logged and the next tick retries.
func (w *TempSweepWorker) runOnce() int {
	log := logger.WithModule("temp_sweep")

	var removed int
	var err error
	if !utility.GoProtect(func() { removed, err = w.temp.Sweep(w.now().Add(-w.maxAge)) }) {
		return 0
	}
	if err != nil {
		log.WithError(err).Error("failed to sweep temp dir")
		return 0
	}
	if removed > 0 {
		log.WithField("removed", removed).Info("removed orphaned temp files")
	}
	return removed
}
