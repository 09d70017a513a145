package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

// StartRollover schedules a DayChangedMsg at every local midnight so the
// dashboard moves to the new day without a keypress.
func StartRollover(clock clockwork.Clock, send func(tea.Msg)) (func(), error) {
	s, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() { send(DayChangedMsg{}) }),
		gocron.WithName("day-rollover"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("schedule rollover: %w", err)
	}

	s.Start()
	return func() { _ = s.Shutdown() }, nil
}
