// Package streak tracks consecutive days with a recorded completion and a
// rolling seven-day history of completion counts.
package streak

import (
	"errors"
	"fmt"
	"maps"

	"github.com/stefanpenner/tabfocus/pkg/datekey"
)

// WindowDays is the length of the rolling history window.
const WindowDays = 7

// Record is the persisted streak state. It is always written as a whole.
type Record struct {
	Current        int            `json:"current" yaml:"current"`
	Longest        int            `json:"longest" yaml:"longest"`
	LastCompleted  string         `json:"lastCompleted,omitempty" yaml:"lastCompleted,omitempty"`
	WeeklyHistory  map[string]int `json:"weeklyHistory" yaml:"weeklyHistory"`
	TotalCompleted int            `json:"totalCompleted" yaml:"totalCompleted"`
}

// NewRecord returns the zero record used when nothing has been stored yet.
func NewRecord() Record {
	return Record{WeeklyHistory: map[string]int{}}
}

// RecordCompletion applies one completion on day today. Recording twice on
// the same day key is a no-op. The input record is not modified.
func RecordCompletion(rec Record, today, yesterday string) Record {
	if rec.LastCompleted == today {
		return rec
	}

	next := rec
	next.WeeklyHistory = maps.Clone(rec.WeeklyHistory)
	if next.WeeklyHistory == nil {
		next.WeeklyHistory = map[string]int{}
	}

	if rec.LastCompleted == yesterday {
		next.Current++
	} else {
		next.Current = 1
	}
	next.Longest = max(next.Longest, next.Current)
	next.LastCompleted = today
	next.TotalCompleted++
	next.WeeklyHistory[today]++

	prune(next.WeeklyHistory, today)
	return next
}

// prune drops history entries dated strictly before today minus the window.
// Unparseable keys are dropped too.
func prune(history map[string]int, today string) {
	cutoff, err := datekey.AddDays(today, -WindowDays)
	if err != nil {
		return
	}
	for key := range history {
		if _, err := datekey.Parse(key); err != nil || key < cutoff {
			delete(history, key)
		}
	}
}

// ErrInvalidRecord reports a record that cannot be repaired, such as one
// with negative counters.
var ErrInvalidRecord = errors.New("invalid streak record")

// Normalize checks a record from outside the tracker (an import) and brings
// it in line with what RecordCompletion maintains: Longest is at least
// Current and the history holds only date keys inside the window ending
// today. Negative counts and an unparseable LastCompleted are rejected.
func Normalize(rec Record, today string) (Record, error) {
	if rec.Current < 0 || rec.Longest < 0 || rec.TotalCompleted < 0 {
		return Record{}, fmt.Errorf("%w: negative counter", ErrInvalidRecord)
	}
	if rec.LastCompleted != "" {
		if _, err := datekey.Parse(rec.LastCompleted); err != nil {
			return Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
	}
	if _, err := datekey.Parse(today); err != nil {
		return Record{}, err
	}

	next := rec
	next.Longest = max(rec.Longest, rec.Current)
	next.WeeklyHistory = map[string]int{}
	for key, count := range rec.WeeklyHistory {
		if count < 0 {
			return Record{}, fmt.Errorf("%w: negative count for %s", ErrInvalidRecord, key)
		}
		if count > 0 && key <= today {
			next.WeeklyHistory[key] = count
		}
	}
	prune(next.WeeklyHistory, today)
	return next, nil
}

// Day is one bar of the weekly chart.
type Day struct {
	Key     string
	Count   int
	Height  float64 // Count scaled against the window maximum, in [0, 1]
	IsToday bool
}

// Render lays out the seven calendar days ending with today, oldest first.
func Render(rec Record, today string) []Day {
	days := make([]Day, 0, WindowDays)
	peak := 1
	for i := WindowDays - 1; i >= 0; i-- {
		key, err := datekey.AddDays(today, -i)
		if err != nil {
			return nil
		}
		count := rec.WeeklyHistory[key]
		peak = max(peak, count)
		days = append(days, Day{Key: key, Count: count, IsToday: i == 0})
	}
	for i := range days {
		days[i].Height = float64(days[i].Count) / float64(peak)
	}
	return days
}
