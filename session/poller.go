package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/padcore/padcore/event"
	"github.com/padcore/padcore/native"
)

// DefaultPollInterval is the sleep between polling cycles.
const DefaultPollInterval = 10 * time.Millisecond

// hwEvent is an event still tagged with its raw controller handle. The
// consumer resolves it to a session device id at NextEvent time.
type hwEvent struct {
	ctrl native.Controller
	typ  event.Type
	time time.Time
}

// publish sends a hardware event without ever blocking the producer. When
// the consumer has fallen far enough behind to fill the buffer, the event
// is dropped and logged instead.
func publish(tx chan<- hwEvent, logger *slog.Logger, ctrl native.Controller, typ event.Type) {
	select {
	case tx <- hwEvent{ctrl: ctrl, typ: typ, time: time.Now()}:
	default:
		logger.Warn("event buffer full, dropping event",
			"device", ctrl.StableID(), "type", typ.String())
	}
}

// devicePair is the double-buffered snapshot pair for one controller,
// keyed by persistent identifier so enumeration order does not have to be
// stable across cycles. errStreak tracks consecutive capture failures for
// per-device error isolation.
type devicePair struct {
	prev, cur *reading
	errStreak int
}

// poller owns every snapshot buffer; no other goroutine touches them.
type poller struct {
	backend  native.Backend
	interval time.Duration
	logger   *slog.Logger
	tx       chan<- hwEvent
	pairs    map[string]*devicePair
}

// run drives polling cycles until the context is cancelled. Cancellation
// is checked once per cycle.
func (p *poller) run(ctx context.Context) {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()
	for {
		if ctx.Err() != nil {
			return
		}
		p.cycle()
		timer.Reset(p.interval)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}

// cycle re-enumerates the attached controllers and drains each one's
// pending changes in turn, so per-controller event order is preserved.
func (p *poller) cycle() {
	controllers, err := p.backend.Controllers()
	if err != nil {
		// Retried next cycle; only the initial enumeration at session
		// construction is fatal.
		p.logger.Warn("controller enumeration failed", "error", err)
		return
	}
	for _, ctrl := range controllers {
		p.pollController(ctrl)
	}
}

func (p *poller) pollController(ctrl native.Controller) {
	id := ctrl.StableID()
	pair, ok := p.pairs[id]
	if !ok {
		cur, err := newReading(ctrl)
		if err != nil {
			p.logger.Warn("initial controller capture failed",
				"device", id, "error", err)
			return
		}
		// First sight: prev == cur, so this cycle cannot emit any diff
		// events for the controller.
		p.pairs[id] = &devicePair{prev: cur.clone(), cur: cur}
		return
	}

	pair.prev, pair.cur = pair.cur, pair.prev
	if err := pair.cur.update(ctrl); err != nil {
		// Swap back so cur still holds the latest good sample, then skip
		// the device for this cycle. It is retried next cycle; the streak
		// is logged once so a flapping device cannot flood the log.
		pair.prev, pair.cur = pair.cur, pair.prev
		pair.errStreak++
		if pair.errStreak == 1 {
			p.logger.Warn("controller capture failed, skipping device",
				"device", id, "error", err)
		}
		return
	}
	if pair.errStreak > 0 {
		p.logger.Info("controller capture recovered",
			"device", id, "failures", pair.errStreak)
		pair.errStreak = 0
	}

	// An unchanged sample timestamp means no new hardware data, not a
	// lack of change; skip without diffing.
	if pair.cur.time == pair.prev.time {
		return
	}
	for _, typ := range diff(pair.prev, pair.cur) {
		publish(p.tx, p.logger, ctrl, typ)
	}
}
