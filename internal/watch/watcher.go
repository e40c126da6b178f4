package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// DefaultDelay is how long a burst of events is collected before a rerun.
const DefaultDelay = 100 * time.Millisecond

// FileWatcher calls onChange when any of a set of files changes. The
// parent directories are watched, so files replaced by rename are still
// picked up.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	onChange  func([]string) error

	mu    sync.Mutex
	files map[string]struct{}
	dirs  []string
}

// NewFileWatcher creates a watcher for files. Nothing is watched until Run.
func NewFileWatcher(files []string, delay time.Duration, onChange func([]string) error) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:   w,
		debouncer: NewDebouncer(delay),
		files:     make(map[string]struct{}),
		onChange:  onChange,
	}

	if _, err := fw.setFiles(files); err != nil {
		_ = w.Close()
		return nil, err
	}

	fw.debouncer.SetCallback(func(changed []string) {
		if err := fw.onChange(changed); err != nil {
			log.Errorf("regeneration failed: %v", err)
		}
	})

	return fw, nil
}

// setFiles replaces the watched files and returns the directories that
// were not watched before.
func (fw *FileWatcher) setFiles(files []string) ([]string, error) {
	set := make(map[string]struct{}, len(files))

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}

		set[abs] = struct{}{}
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.files = set

	var added []string

	for abs := range set {
		if dir := filepath.Dir(abs); !slices.Contains(fw.dirs, dir) {
			fw.dirs = append(fw.dirs, dir)
			added = append(added, dir)
		}
	}

	return added, nil
}

// Watch replaces the watched files, for example after the config moved the
// tables. It may be called while Run is active.
func (fw *FileWatcher) Watch(files []string) error {
	added, err := fw.setFiles(files)
	if err != nil {
		return err
	}

	for _, dir := range added {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}

		log.Debugf("watching directory %s", dir)
	}

	return nil
}

// Run watches until ctx is done, then releases the watcher.
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer fw.close()

	fw.mu.Lock()
	dirs := slices.Clone(fw.dirs)
	fw.mu.Unlock()

	for _, dir := range dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}

		log.Debugf("watching directory %s", dir)
	}

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}

			if fw.relevant(event) {
				log.Debugf("changed: %s (%s)", event.Name, event.Op)
				fw.debouncer.Add(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}

			log.Warnf("watch error: %v", err)

		case <-ctx.Done():
			return nil
		}
	}
}

func (fw *FileWatcher) close() {
	fw.debouncer.Stop()

	if err := fw.watcher.Close(); err != nil {
		log.Debugf("closing watcher: %v", err)
	}
}

// relevant reports whether event touches a watched file in a way that can
// change its content.
func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	_, ok := fw.files[abs]

	return ok
}

// Debouncer collects file changes and triggers callbacks after a delay.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
	running  bool
	stopped  bool
}

// NewDebouncer creates a new debouncer instance.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
	}
}

// Add records file and restarts the delay.
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}

	d.files[file] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, d.flush)
}

// flush hands the accumulated files, sorted, to the callback. Callbacks
// never overlap: files arriving while one runs are handed over once it
// returns.
func (d *Debouncer) flush() {
	d.mutex.Lock()

	if d.running {
		d.mutex.Unlock()
		return
	}

	d.running = true

	for len(d.files) > 0 && !d.stopped {
		files := make([]string, 0, len(d.files))
		for file := range d.files {
			files = append(files, file)
		}

		slices.Sort(files)

		d.files = make(map[string]struct{})
		callback := d.callback
		d.mutex.Unlock()

		if callback != nil {
			callback(files)
		}

		d.mutex.Lock()
	}

	d.running = false
	d.mutex.Unlock()
}

// SetCallback sets the callback function.
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.callback = callback
}

// Stop drops pending changes. Later calls to Add are ignored.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.stopped = true
}
