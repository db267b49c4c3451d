// Package watch reports changes to a single file on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonview/logging"
)

// DefaultDebounce is used when File is given a non-positive debounce.
const DefaultDebounce = 100 * time.Millisecond

// Event carries the file's contents after a change settled, or the error
// that prevented reading them.
type Event struct {
	Path string
	Data []byte
	Err  error
}

// File watches path and sends its contents each time it changes. Bursts of
// writes within debounce are coalesced into one event. The parent directory
// is watched rather than the file itself so that editors which replace the
// file on save keep being followed; when path is a symlink the target's
// directory is watched too.
//
// The channel is closed when ctx ends.
func File(ctx context.Context, path string, debounce time.Duration) (<-chan Event, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger("watch")
	targets := map[string]bool{abs: true}
	watchedDirs := map[string]bool{}

	dirs := []string{filepath.Dir(abs)}
	// fsnotify doesn't follow symlinks
	if resolved, err := filepath.EvalSymlinks(abs); err == nil && resolved != abs {
		targets[resolved] = true
		dirs = append(dirs, filepath.Dir(resolved))
		logger.Debugf("Following symlink %s -> %s", abs, resolved)
	}
	for _, dir := range dirs {
		if watchedDirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
		watchedDirs[dir] = true
	}

	out := make(chan Event, 1)
	w := &fileWatcher{
		watcher:  watcher,
		path:     abs,
		targets:  targets,
		debounce: debounce,
		logger:   logger,
		out:      out,
	}
	go w.run(ctx)
	return out, nil
}

type fileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	targets  map[string]bool
	debounce time.Duration
	logger   *logrus.Entry
	out      chan Event
}

func (w *fileWatcher) run(ctx context.Context) {
	defer close(w.out)
	defer w.watcher.Close()

	var (
		timer  *time.Timer
		settle <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.targets[filepath.Clean(event.Name)] {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			settle = timer.C

		case <-settle:
			settle = nil
			data, err := os.ReadFile(w.path)
			if !w.send(ctx, Event{Path: w.path, Data: data, Err: err}) {
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
			if !w.send(ctx, Event{Path: w.path, Err: err}) {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (w *fileWatcher) send(ctx context.Context, ev Event) bool {
	select {
	case w.out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
