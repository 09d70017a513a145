// Package timer implements the single-instance focus countdown.
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// DefaultMinutes is the duration a fresh or reset timer counts down from.
	DefaultMinutes = 25
	MinMinutes     = 1
	MaxMinutes     = 180
)

// State is where the countdown is in its lifecycle.
type State int

const (
	Idle State = iota
	Running
	Expired
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Expired:
		return "expired"
	default:
		return "idle"
	}
}

// Snapshot is a consistent copy of the timer's state.
type Snapshot struct {
	Total     int   `json:"totalDurationSeconds"`
	Remaining int   `json:"remainingSeconds"`
	State     State `json:"-"`
}

// Running reports whether the countdown is ticking.
func (s Snapshot) Running() bool { return s.State == Running }

// Paused reports whether the countdown is idle part-way through.
func (s Snapshot) Paused() bool { return s.State == Idle && s.Remaining < s.Total }

// Elapsed returns the fraction of the duration already counted down.
func (s Snapshot) Elapsed() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Total-s.Remaining) / float64(s.Total)
}

// DurationStore persists the chosen duration. Failures are the store's
// business; the timer never waits on or reports them.
type DurationStore interface {
	SaveTimerMinutes(ctx context.Context, minutes int)
}

// Timer is a countdown driven by a one-second ticker. At most one ticker is
// live at any time.
type Timer struct {
	mu sync.Mutex

	clock          clockwork.Clock
	defaultMinutes int
	total          int
	remaining      int
	state          State

	ticker clockwork.Ticker
	stop   chan struct{}
	gen    int

	onTick     func(Snapshot)
	onComplete func()
	durations  DurationStore
	log        *slog.Logger
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the clock that drives ticks.
func WithClock(c clockwork.Clock) Option {
	return func(t *Timer) { t.clock = c }
}

// WithDefaultMinutes sets the duration Reset returns to.
func WithDefaultMinutes(minutes int) Option {
	return func(t *Timer) { t.defaultMinutes = clampMinutes(minutes) }
}

// WithMinutes sets the initial duration, typically restored from storage.
func WithMinutes(minutes int) Option {
	return func(t *Timer) {
		t.total = clampMinutes(minutes) * 60
		t.remaining = t.total
	}
}

// WithOnTick registers a callback run after every tick.
func WithOnTick(fn func(Snapshot)) Option {
	return func(t *Timer) { t.onTick = fn }
}

// WithOnComplete registers the callback fired once when the countdown expires.
func WithOnComplete(fn func()) Option {
	return func(t *Timer) { t.onComplete = fn }
}

// WithDurationStore persists durations chosen through SetDuration.
func WithDurationStore(s DurationStore) Option {
	return func(t *Timer) { t.durations = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Timer) { t.log = l }
}

// New returns an idle timer.
func New(opts ...Option) *Timer {
	t := &Timer{
		clock:          clockwork.NewRealClock(),
		defaultMinutes: DefaultMinutes,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.total == 0 {
		t.total = t.defaultMinutes * 60
		t.remaining = t.total
	}
	if t.log == nil {
		t.log = slog.Default()
	}
	return t
}

// Snapshot returns the current state.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Timer) snapshotLocked() Snapshot {
	return Snapshot{Total: t.total, Remaining: t.remaining, State: t.state}
}

// Start begins or resumes the countdown. It does nothing while running or
// after expiry.
func (t *Timer) Start() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Idle || t.remaining == 0 {
		return t.snapshotLocked()
	}

	t.stopTickingLocked()
	t.state = Running
	t.gen++
	t.ticker = t.clock.NewTicker(time.Second)
	t.stop = make(chan struct{})
	go t.loop(t.ticker, t.stop, t.gen)

	return t.snapshotLocked()
}

func (t *Timer) loop(ticker clockwork.Ticker, stop <-chan struct{}, gen int) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			t.advance(gen, true)
		}
	}
}

// Pause stops ticking and keeps the remaining time.
func (t *Timer) Pause() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == Running {
		t.stopTickingLocked()
		t.state = Idle
	}
	return t.snapshotLocked()
}

// Tick counts down one second. Outside the Running state it does nothing.
func (t *Timer) Tick() Snapshot {
	return t.advance(0, false)
}

func (t *Timer) advance(gen int, fromLoop bool) Snapshot {
	t.mu.Lock()
	// A tick delivered to a ticker that has since been replaced is stale.
	if t.state != Running || (fromLoop && gen != t.gen) {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap
	}

	t.remaining--
	expired := t.remaining == 0
	if expired {
		t.state = Expired
		t.stopTickingLocked()
	}
	snap := t.snapshotLocked()
	onTick, onComplete := t.onTick, t.onComplete
	t.mu.Unlock()

	if onTick != nil {
		onTick(snap)
	}
	if expired {
		t.log.Info("timer expired", slog.Int("seconds", snap.Total))
		if onComplete != nil {
			onComplete()
		}
	}
	return snap
}

// SetDuration stops the countdown and resets it to minutes, clamped to
// [MinMinutes, MaxMinutes]. The new duration is persisted best-effort.
func (t *Timer) SetDuration(ctx context.Context, minutes int) Snapshot {
	minutes = clampMinutes(minutes)

	t.mu.Lock()
	t.stopTickingLocked()
	t.total = minutes * 60
	t.remaining = t.total
	t.state = Idle
	snap := t.snapshotLocked()
	durations := t.durations
	t.mu.Unlock()

	if durations != nil {
		durations.SaveTimerMinutes(ctx, minutes)
	}
	return snap
}

// Reset is SetDuration with the default duration.
func (t *Timer) Reset(ctx context.Context) Snapshot {
	return t.SetDuration(ctx, t.defaultMinutes)
}

// Close stops any live ticker.
func (t *Timer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTickingLocked()
	if t.state == Running {
		t.state = Idle
	}
}

func (t *Timer) stopTickingLocked() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	close(t.stop)
	t.ticker = nil
	t.stop = nil
	t.gen++
}

func clampMinutes(minutes int) int {
	return min(max(minutes, MinMinutes), MaxMinutes)
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
