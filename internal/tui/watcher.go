package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ExternalChangeMsg is sent when another process changed the stored layout.
type ExternalChangeMsg struct{}

const watchThrottle = 150 * time.Millisecond

// Watch reports changes to the given paths until ctx is cancelled. A directory
// path matches anything inside it; a file path matches the file and its
// siblings sharing the name as prefix, so sqlite -wal and -journal files count.
// Bursts are coalesced into one notification.
func Watch(ctx context.Context, paths ...string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	var matchers []func(string) bool
	watched := make(map[string]struct{})
	for _, p := range paths {
		if p == "" {
			continue
		}
		dir, match := watchTarget(p)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
		if _, ok := watched[dir]; !ok {
			if err := watcher.Add(dir); err != nil {
				watcher.Close()
				return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watched[dir] = struct{}{}
		}
		matchers = append(matchers, match)
	}

	changes := make(chan struct{}, 1)
	var mu sync.Mutex
	closed := false
	send := func() {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	go func() {
		defer func() {
			mu.Lock()
			closed = true
			close(changes)
			mu.Unlock()
		}()
		defer watcher.Close()

		throttle := newThrottle(watchThrottle)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				for _, match := range matchers {
					if match(evt.Name) {
						throttle.Enqueue(send)
						break
					}
				}
			}
		}
	}()

	return changes, nil
}

func watchTarget(path string) (string, func(string) bool) {
	path = filepath.Clean(path)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path, func(name string) bool {
			return strings.HasPrefix(filepath.Clean(name), path+string(os.PathSeparator))
		}
	}
	dir, base := filepath.Split(path)
	dir = filepath.Clean(dir)
	return dir, func(name string) bool {
		return filepath.Dir(filepath.Clean(name)) == dir && strings.HasPrefix(filepath.Base(name), base)
	}
}

// throttle runs the last enqueued function once per quiet period.
type throttle struct {
	mu    sync.Mutex
	timer *time.Timer
	fn    func()
	delay time.Duration
}

func newThrottle(delay time.Duration) *throttle {
	return &throttle{delay: delay}
}

func (t *throttle) Enqueue(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fn = fn
	if t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.delay, t.fire)
}

func (t *throttle) fire() {
	t.mu.Lock()
	fn := t.fn
	t.fn = nil
	t.timer = nil
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (t *throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.fn = nil
}
