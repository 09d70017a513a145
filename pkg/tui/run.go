package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/stefanpenner/tabfocus/pkg/config"
	"github.com/stefanpenner/tabfocus/pkg/store"
	"github.com/stefanpenner/tabfocus/pkg/timer"
)

// programBridge lets the timer goroutine reach the program, which is
// created after the timer.
type programBridge struct {
	p atomic.Pointer[tea.Program]
}

func (b *programBridge) send(msg tea.Msg) {
	if p := b.p.Load(); p != nil {
		p.Send(msg)
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(ctx context.Context, s *store.Store, cfg *config.Config, clock clockwork.Clock, log *slog.Logger) error {
	var bridge programBridge

	tm := timer.New(
		timer.WithClock(clock),
		timer.WithDefaultMinutes(cfg.DefaultMinutes),
		timer.WithMinutes(s.TimerMinutes(ctx, cfg.DefaultMinutes)),
		timer.WithDurationStore(s),
		timer.WithLogger(log),
		timer.WithOnTick(func(snap timer.Snapshot) { bridge.send(TimerTickMsg{Snapshot: snap}) }),
		timer.WithOnComplete(func() { bridge.send(TimerDoneMsg{}) }),
	)
	defer tm.Close()

	p := tea.NewProgram(NewModel(ctx, s, tm, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.p.Store(p)

	stopWatch, err := StartWatcher(s.Root, p.Send)
	if err != nil {
		log.Warn("file watcher failed", "dir", s.Root, "error", err)
	} else {
		defer stopWatch()
	}

	stopRollover, err := StartRollover(clock, p.Send)
	if err != nil {
		log.Warn("day rollover disabled", "error", err)
	} else {
		defer stopRollover()
	}

	log.Info("dashboard started", "dir", s.Root)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
