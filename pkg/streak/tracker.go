package streak

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/stefanpenner/tabfocus/pkg/kv"
)

// StorageKey is the key the record is persisted under.
const StorageKey = "streakData"

// Dates supplies the current and previous day keys.
type Dates interface {
	Today() string
	Yesterday() string
}

// Tracker loads, updates and saves the streak record.
type Tracker struct {
	kv    *kv.Store
	dates Dates
	log   *slog.Logger
}

// NewTracker returns a Tracker persisting through store.
func NewTracker(store *kv.Store, dates Dates, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{kv: store, dates: dates, log: log}
}

// Load returns the stored record. A missing or unreadable record yields the
// default record.
func (t *Tracker) Load(ctx context.Context) Record {
	raw, ok := t.kv.Get(ctx, StorageKey)
	if !ok || raw == "" {
		return NewRecord()
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.log.Warn("discarding unreadable streak record", slog.Any("error", err))
		return NewRecord()
	}
	if rec.WeeklyHistory == nil {
		rec.WeeklyHistory = map[string]int{}
	}
	return rec
}

// Save writes the whole record.
func (t *Tracker) Save(ctx context.Context, rec Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		t.log.Error("encoding streak record", slog.Any("error", err))
		return
	}
	t.kv.Set(ctx, StorageKey, string(data))
}

// Complete records one completion for today and persists the result.
func (t *Tracker) Complete(ctx context.Context) Record {
	rec := t.Load(ctx)
	today := t.dates.Today()
	if rec.LastCompleted == today {
		return rec
	}
	rec = RecordCompletion(rec, today, t.dates.Yesterday())
	t.Save(ctx, rec)
	t.log.Info("completion recorded",
		slog.String("day", today), slog.Int("current", rec.Current), slog.Int("longest", rec.Longest))
	return rec
}

// Week returns the chart for the seven days ending today.
func (t *Tracker) Week(ctx context.Context) []Day {
	return Render(t.Load(ctx), t.dates.Today())
}
