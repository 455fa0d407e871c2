package timer

import (
	"sync"
	"time"
)

// Handle is a cancellable periodic callback. Cancel is idempotent and safe
// to call from any goroutine.
type Handle interface {
	Cancel()
}

// Scheduler starts periodic callbacks.
type Scheduler interface {
	Every(period time.Duration, fn func()) Handle
}

// TickerScheduler runs each callback on its own goroutine driven by a
// time.Ticker. Ticks that arrive while fn is still running are dropped.
type TickerScheduler struct{}

func (TickerScheduler) Every(period time.Duration, fn func()) Handle {
	h := &tickerHandle{
		ticker: time.NewTicker(period),
		done:   make(chan struct{}),
	}
	go h.loop(fn)
	return h
}

type tickerHandle struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (h *tickerHandle) loop(fn func()) {
	for {
		select {
		case <-h.done:
			return
		case <-h.ticker.C:
			// A tick and Cancel may race; Cancel wins.
			select {
			case <-h.done:
				return
			default:
			}
			fn()
		}
	}
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}
