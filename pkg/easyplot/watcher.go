package easyplot

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for file watch events.
const DefaultWatchDebounce = 500 * time.Millisecond

// sceneWatcher monitors a scene file for changes and triggers reloads.
type sceneWatcher struct {
	watcher   *fsnotify.Watcher
	filePath  string
	debounce  time.Duration
	onReload  func() error
	onError   func(error)
	stopCh    chan struct{}
	stoppedCh chan struct{}
	mu        sync.Mutex
	running   bool
	stopped   bool
}

// newSceneWatcher creates a watcher for filePath. onReload is called once
// per burst of changes, after the debounce interval.
func newSceneWatcher(filePath string, debounce time.Duration, onReload func() error, onError func(error)) (*sceneWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	// Watch the directory so editors that save by renaming are followed.
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &sceneWatcher{
		watcher:   watcher,
		filePath:  filePath,
		debounce:  debounce,
		onReload:  onReload,
		onError:   onError,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}, nil
}

// Start begins watching for file changes in a goroutine.
func (sw *sceneWatcher) Start() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.running || sw.stopped {
		return
	}
	sw.running = true
	go sw.watchLoop()
}

// Stop stops the watcher and waits for its goroutine. It closes the
// underlying fsnotify watcher even if Start was never called.
func (sw *sceneWatcher) Stop() {
	sw.mu.Lock()
	if sw.stopped {
		sw.mu.Unlock()
		return
	}
	sw.stopped = true
	running := sw.running
	sw.mu.Unlock()

	close(sw.stopCh)
	if running {
		<-sw.stoppedCh
		return
	}
	sw.watcher.Close()
}

func (sw *sceneWatcher) watchLoop() {
	defer close(sw.stoppedCh)
	defer sw.watcher.Close()

	absPath, _ := filepath.Abs(sw.filePath)
	baseName := filepath.Base(sw.filePath)

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-sw.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}

			eventAbs, _ := filepath.Abs(event.Name)
			if filepath.Base(event.Name) != baseName && eventAbs != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(sw.debounce)
			debounceCh = debounceTimer.C

		case <-debounceCh:
			if sw.onReload != nil {
				if err := sw.onReload(); err != nil && sw.onError != nil {
					sw.onError(err)
				}
			}
			debounceTimer = nil
			debounceCh = nil

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			if sw.onError != nil {
				sw.onError(err)
			}
		}
	}
}
