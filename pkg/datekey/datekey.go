// Package datekey produces the YYYY-MM-DD keys used to bucket completions by
// calendar day. Keys are derived from the local calendar of the clock's time,
// so midnight and timezone changes are decided here and nowhere else.
package datekey

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Layout is the date-key layout.
const Layout = "2006-01-02"

// Source hands out date keys for "now" according to a clock.
type Source struct {
	clock clockwork.Clock
}

// NewSource returns a Source backed by clock. A nil clock uses the real one.
func NewSource(clock clockwork.Clock) *Source {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Source{clock: clock}
}

// Today returns the key for the current local calendar day.
func (s *Source) Today() string {
	return Format(s.clock.Now())
}

// Yesterday returns the key for the local calendar day before today.
func (s *Source) Yesterday() string {
	return Format(s.clock.Now().AddDate(0, 0, -1))
}

// Format renders t's local calendar day as a key.
func Format(t time.Time) string {
	return t.Local().Format(Layout)
}

// Parse reads a key back into midnight of that day, in local time.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date key %q: %w", key, err)
	}
	return t, nil
}

// AddDays shifts a key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := Parse(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(Layout), nil
}
