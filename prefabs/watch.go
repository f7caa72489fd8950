package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type ChangeKind int

const (
	ChangeScene ChangeKind = iota
	ChangeTour
)

func (k ChangeKind) String() string {
	if k == ChangeTour {
		return "tour"
	}
	return "scene"
}

// Change names an edited config file.
type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports scene and tour edits under the override directory.
// Bursts of writes to the same file collapse into one change.
type Watcher struct {
	Changes <-chan Change
	Errors  <-chan error

	watcher  *fsnotify.Watcher
	changes  chan Change
	errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
	debounce time.Duration
	logger   *zap.Logger
}

const defaultDebounce = 100 * time.Millisecond

func NewWatcher(logger *zap.Logger, dirs ...string) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(dirs) == 0 {
		dirs = []string{Dir, filepath.Join(Dir, "tours")}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher:  fw,
		changes:  make(chan Change, 16),
		errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
		debounce: defaultDebounce,
		logger:   logger,
	}
	w.Changes = w.changes
	w.Errors = w.errors
	go w.run()
	return w, nil
}

// Close stops the watch goroutine and closes both channels.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.changes)
		close(w.errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, seen := last[event.Name]; seen && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			w.logger.Debug("config changed", zap.String("path", event.Name), zap.Stringer("kind", kind))
			select {
			case w.changes <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			default:
				// Reader is behind; it will reload the latest file anyway.
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				w.logger.Warn("watch error dropped", zap.Error(err))
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangeScene, true
	case ".tengo":
		return ChangeTour, true
	}
	return 0, false
}
