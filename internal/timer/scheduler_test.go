package timer_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/cattimer/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerScheduler_FiresUntilCancelled(t *testing.T) {
	var calls atomic.Int64
	h := timer.TickerScheduler{}.Every(5*time.Millisecond, func() { calls.Add(1) })

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)

	h.Cancel()
	h.Cancel()
	time.Sleep(20 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())
}
