package game

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/xtding233/panelmap/internal/logging"
)

const changeOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// FileWatcher reports changes to a set of files and directories. Bursts of
// events within Interval collapse into a single callback carrying the last
// changed path.
type FileWatcher struct {
	Paths    []string
	Interval time.Duration
	onChange func(string) // called with path that changed
	logger   *zap.SugaredLogger

	stopOnce sync.Once
	started  atomic.Bool
	stopCh   chan struct{}
	done     chan struct{}
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string), logger *zap.SugaredLogger) *FileWatcher {
	return &FileWatcher{
		Paths:    paths,
		Interval: interval,
		onChange: onChange,
		logger:   logging.OrNop(logger),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start subscribes to the parent directories of the files (and to the listed
// directories themselves) and dispatches events in a goroutine.
func (w *FileWatcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}

	files := make(map[string]bool)
	trees := make(map[string]bool)
	var dirs []string
	for _, p := range w.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return errors.Wrapf(err, "watch %s", p)
		}
		if fi, err := os.Stat(abs); err == nil && fi.IsDir() {
			trees[abs] = true
			dirs = append(dirs, abs)
			continue
		}
		files[abs] = true
		dirs = append(dirs, filepath.Dir(abs))
	}
	for _, d := range lo.Uniq(dirs) {
		if _, err := os.Stat(d); errors.Is(err, os.ErrNotExist) {
			w.logger.Warnw("not watching missing directory", "dir", d)
			continue
		}
		if err := fw.Add(d); err != nil {
			fw.Close()
			return errors.Wrapf(err, "watch %s", d)
		}
	}

	debounced := debounce.New(w.Interval)
	w.started.Store(true)
	go func() {
		defer close(w.done)
		defer fw.Close()
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if ev.Op&changeOps == 0 || !relevant(ev.Name, files, trees) {
					continue
				}
				name := ev.Name
				w.logger.Debugw("config change", "path", name, "op", ev.Op.String())
				if w.onChange != nil {
					debounced(func() { w.onChange(name) })
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Warnw("watch error", "error", err)
			case <-w.stopCh:
				return
			}
		}
	}()
	return nil
}

func relevant(name string, files, trees map[string]bool) bool {
	name = filepath.Clean(name)
	if files[name] {
		return true
	}
	for d := range trees {
		if strings.HasPrefix(name, d+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Stop terminates the watcher and waits for the dispatch goroutine. A callback
// already scheduled may still fire once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	if w.started.Load() {
		<-w.done
	}
}
