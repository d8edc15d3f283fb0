package search_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/search"
	"github.com/stretchr/testify/assert"
)

const quietPeriod = 30 * time.Millisecond

func TestDebouncer_Trigger(t *testing.T) {
	t.Run("fires after the quiet period", func(t *testing.T) {
		debouncer := search.NewDebouncer(quietPeriod)
		var fired atomic.Int32

		debouncer.Trigger(func() { fired.Add(1) })

		assert.Eventually(t, func() bool {
			return fired.Load() == 1
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("burst of triggers coalesces into the last one", func(t *testing.T) {
		debouncer := search.NewDebouncer(quietPeriod)
		var first, second atomic.Int32

		debouncer.Trigger(func() { first.Add(1) })
		debouncer.Trigger(func() { second.Add(1) })

		assert.Eventually(t, func() bool {
			return second.Load() == 1
		}, time.Second, 5*time.Millisecond)

		time.Sleep(2 * quietPeriod)
		assert.Equal(t, int32(0), first.Load(), "superseded trigger must never fire")
	})

	t.Run("trigger racing an expiring timer still gets a full quiet period", func(t *testing.T) {
		debouncer := search.NewDebouncer(quietPeriod)

		// Repeat to land the replacement inside the window between the old
		// timer expiring and its callback acquiring the lock.
		for i := 0; i < 25; i++ {
			var firedAt atomic.Pointer[time.Time]

			debouncer.Trigger(func() {})
			time.Sleep(quietPeriod)

			start := time.Now()
			debouncer.Trigger(func() {
				now := time.Now()
				firedAt.Store(&now)
			})

			assert.Eventually(t, func() bool {
				return firedAt.Load() != nil
			}, time.Second, time.Millisecond)
			assert.GreaterOrEqual(t, firedAt.Load().Sub(start), quietPeriod,
				"replacement trigger fired before its own quiet period")
		}
	})
}

func TestDebouncer_Cancel(t *testing.T) {
	debouncer := search.NewDebouncer(quietPeriod)
	var fired atomic.Int32

	debouncer.Trigger(func() { fired.Add(1) })
	debouncer.Cancel()

	time.Sleep(3 * quietPeriod)
	assert.Equal(t, int32(0), fired.Load())

	// Cancel with nothing pending is a no-op.
	debouncer.Cancel()
}

func TestDebouncer_Flush(t *testing.T) {
	t.Run("runs the pending callback immediately", func(t *testing.T) {
		debouncer := search.NewDebouncer(time.Minute)
		var fired atomic.Int32

		debouncer.Trigger(func() { fired.Add(1) })
		debouncer.Flush()

		assert.Equal(t, int32(1), fired.Load())

		// The timer was cancelled, so it must not fire a second time.
		time.Sleep(2 * quietPeriod)
		assert.Equal(t, int32(1), fired.Load())
	})

	t.Run("no-op without a pending callback", func(t *testing.T) {
		debouncer := search.NewDebouncer(quietPeriod)
		debouncer.Flush()
	})
}
