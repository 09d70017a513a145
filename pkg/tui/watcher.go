package tui

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// StartWatcher watches the data directory and its fallback directory for
// writes from other processes and sends FileChangedMsg.
func StartWatcher(root string, send func(tea.Msg)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(root); err != nil {
		watcher.Close()
		return nil, err
	}
	// The fallback directory only exists once something was written there.
	local := filepath.Join(root, "local")
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		watcher.Add(local)
	}

	done := make(chan struct{})

	go func() {
		var debounceTimer *time.Timer

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevantChange(event.Name) {
					continue
				}

				// Debounce: wait after the last change
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(watchDebounce, func() {
					send(FileChangedMsg{})
				})

				if event.Op&fsnotify.Create != 0 && event.Name == local {
					watcher.Add(local)
				}

			case <-watcher.Errors:
				// Ignore watcher errors silently

			case <-done:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return
			}
		}
	}()

	cleanup := func() {
		close(done)
		watcher.Close()
	}

	return cleanup, nil
}

// relevantChange skips hidden files, temp files from atomic writes and our
// own log, which would otherwise trigger a reload on every log line.
func relevantChange(path string) bool {
	name := filepath.Base(path)
	switch {
	case strings.HasPrefix(name, "."):
		return false
	case strings.HasSuffix(name, ".log"):
		return false
	}
	return true
}
