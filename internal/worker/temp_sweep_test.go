package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingSweeper struct {
	cutoffs []time.Time
	err     error
	panics  bool
}

func (r *recordingSweeper) Sweep(cutoff time.Time) (int, error) {
	if r.panics {
		panic("disk gone")
	}
	r.cutoffs = append(r.cutoffs, cutoff)
	return 2, r.err
}

func TestNewTempSweepWorkerDefaults(t *testing.T) {
	w := NewTempSweepWorker(&recordingSweeper{}, time.Second, time.Second)
	assert.Equal(t, 10*time.Minute, w.interval)
	assert.Equal(t, time.Hour, w.maxAge)
}

func TestRunOnceUsesMaxAge(t *testing.T) {
	s := &recordingSweeper{}
	w := NewTempSweepWorker(s, time.Minute, 30*time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	assert.Equal(t, 2, w.runOnce())
	assert.Equal(t, []time.Time{now.Add(-30 * time.Minute)}, s.cutoffs)
}

func TestRunOnceSurvivesErrorsAndPanics(t *testing.T) {
	w := NewTempSweepWorker(&recordingSweeper{err: errors.New("permission denied")}, time.Minute, time.Hour)
	assert.Zero(t, w.runOnce())

	w = NewTempSweepWorker(&recordingSweeper{panics: true}, time.Minute, time.Hour)
	assert.NotPanics(t, func() { w.runOnce() })
}

func TestStartStopsOnCancel(t *testing.T) {
	w := NewTempSweepWorker(&recordingSweeper{}, time.Minute, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
