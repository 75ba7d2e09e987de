// Package ads implements the advertisement carousel rotation and telemetry.
package ads

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/koreality/koreality-go/internal/datastore"
	"github.com/koreality/koreality-go/internal/logging"
)

const telemetryTimeout = 5 * time.Second

// Telemetry records advertisement exposure. The datastore satisfies this
// interface with its counter increments.
type Telemetry interface {
	IncrementAdView(ctx context.Context, adID string) error
	IncrementAdClick(ctx context.Context, adID string) error
}

// Rotator cycles display through an ordered advertisement list. The current
// index always satisfies 0 <= index < len when the list is non-empty, and
// wraps rather than overflows in both directions.
type Rotator struct {
	mu        sync.Mutex
	ads       []datastore.Advertisement
	index     int
	telemetry Telemetry
	log       *slog.Logger

	interval time.Duration
	ticker   *time.Ticker
	done     chan struct{}
	wg       sync.WaitGroup
	stopped  bool
}

// NewRotator creates a rotator over the given ads, recording a view for the
// initially displayed ad. Automatic rotation runs only when more than one ad
// is present; it is torn down by Stop.
func NewRotator(advertisements []datastore.Advertisement, telemetry Telemetry, interval time.Duration) *Rotator {
	log := logging.ForService("ads")
	if log == nil {
		log = slog.Default().With("service", "ads")
	}

	r := &Rotator{
		ads:       advertisements,
		telemetry: telemetry,
		log:       log,
		interval:  interval,
		done:      make(chan struct{}),
	}

	if len(r.ads) > 0 {
		r.recordView(r.ads[0].ID)
	}

	if len(r.ads) > 1 {
		r.ticker = time.NewTicker(interval)
		r.wg.Add(1)
		go r.run()
	}

	return r
}

// run advances the carousel on every tick until Stop is called.
func (r *Rotator) run() {
	defer r.wg.Done()
	for {
		select {
		case <-r.ticker.C:
			r.Next()
		case <-r.done:
			return
		}
	}
}

// Current returns the currently displayed advertisement.
func (r *Rotator) Current() (datastore.Advertisement, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ads) == 0 {
		return datastore.Advertisement{}, false
	}
	return r.ads[r.index], true
}

// Index returns the current carousel position.
func (r *Rotator) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

// Len returns the number of advertisements in the carousel.
func (r *Rotator) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ads)
}

// Next advances to the following ad, wrapping at the end.
func (r *Rotator) Next() {
	r.step(1)
}

// Previous moves back to the preceding ad, wrapping at the start.
func (r *Rotator) Previous() {
	r.step(-1)
}

func (r *Rotator) step(delta int) {
	r.mu.Lock()
	if len(r.ads) == 0 {
		r.mu.Unlock()
		return
	}
	next := (r.index + delta + len(r.ads)) % len(r.ads)
	if next == r.index {
		// Single-ad carousel: the displayed ad did not change, so no view.
		r.mu.Unlock()
		return
	}
	r.index = next
	adID := r.ads[r.index].ID
	r.mu.Unlock()

	r.recordView(adID)
}

// Select jumps directly to the ad at the given position. Out-of-range
// positions are ignored.
func (r *Rotator) Select(i int) {
	r.mu.Lock()
	if i < 0 || i >= len(r.ads) || i == r.index {
		r.mu.Unlock()
		return
	}
	r.index = i
	adID := r.ads[r.index].ID
	r.mu.Unlock()

	r.recordView(adID)
}

// Click records a click for the current ad and returns its link URL, empty
// when the ad has none. The caller opens the link in a new browsing context.
func (r *Rotator) Click() string {
	r.mu.Lock()
	if len(r.ads) == 0 {
		r.mu.Unlock()
		return ""
	}
	ad := r.ads[r.index]
	r.mu.Unlock()

	r.recordClick(ad.ID)
	return ad.LinkURL
}

// Stop tears down the rotation timer and waits for the rotation goroutine.
// Safe to call more than once.
func (r *Rotator) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.done)
	if r.ticker != nil {
		r.ticker.Stop()
	}
	r.wg.Wait()
}

// recordView fires a view event without blocking the caller. Failures are
// logged and otherwise ignored.
func (r *Rotator) recordView(adID string) {
	if r.telemetry == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), telemetryTimeout)
		defer cancel()
		if err := r.telemetry.IncrementAdView(ctx, adID); err != nil {
			r.log.Warn("recording ad view failed", "ad_id", adID, "error", err)
		}
	}()
}

// recordClick fires a click event without blocking the caller.
func (r *Rotator) recordClick(adID string) {
	if r.telemetry == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), telemetryTimeout)
		defer cancel()
		if err := r.telemetry.IncrementAdClick(ctx, adID); err != nil {
			r.log.Warn("recording ad click failed", "ad_id", adID, "error", err)
		}
	}()
}
