package magenta

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce drops repeat events for the same file; editors often write
// a file several times in one save.
const watchDebounce = 100 * time.Millisecond

// Watcher reports atlas and manifest files that change on disk. Poll Events
// from the game's Update and pass atlas paths to AnimLibrary.ReloadPath.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the given directories.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching and closes Events and Errors.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll returns the paths that changed since the last call without
// blocking.
func (w *Watcher) Poll() []string {
	var paths []string
	for {
		select {
		case p, ok := <-w.Events:
			if !ok {
				return paths
			}
			paths = append(paths, p)
		default:
			return paths
		}
	}
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)
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
			if !IsAtlasFile(event.Name) && !IsManifestFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// IsAtlasFile reports whether path names a PNG atlas.
func IsAtlasFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".png"
}

// IsManifestFile reports whether path names a YAML manifest.
func IsManifestFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
