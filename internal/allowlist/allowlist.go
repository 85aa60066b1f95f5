package allowlist

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Allowlist holds values a reviewer has marked as benign. Instances found in
// it are suppressed before scoring and reporting.
type Allowlist struct {
	mu    sync.RWMutex
	items map[string]bool
	path  string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates or loads an allowlist from the given path. A missing file
// just means an empty list.
func New(path string) (*Allowlist, error) {
	a := &Allowlist{
		items: make(map[string]bool),
		path:  path,
	}
	if err := a.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return a, nil
}

func (a *Allowlist) load() error {
	file, err := os.Open(a.path)
	if err != nil {
		return err
	}
	defer file.Close()

	items := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			items[line] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	a.items = items
	a.mu.Unlock()
	return nil
}

// Contains reports whether the value is allowlisted.
func (a *Allowlist) Contains(value string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.items[strings.TrimSpace(value)]
}

// Len returns the number of allowlisted values.
func (a *Allowlist) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.items)
}

// Add records a new value and appends it to the backing file.
func (a *Allowlist) Add(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.items[value] {
		return nil
	}
	a.items[value] = true

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(value + "\n")
	return err
}

// Watch reloads the allowlist when its backing file changes on disk, so
// values added out-of-band take effect without a restart. onReload may be
// nil.
func (a *Allowlist) Watch(onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(a.path); err != nil {
		watcher.Close()
		return err
	}

	a.watcher = watcher
	a.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					if err := a.load(); err == nil && onReload != nil {
						onReload()
					}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-a.done:
				return
			}
		}
	}()

	return nil
}

// Close stops the file watcher if one is running.
func (a *Allowlist) Close() error {
	if a.done != nil {
		close(a.done)
		a.done = nil
	}
	if a.watcher != nil {
		err := a.watcher.Close()
		a.watcher = nil
		return err
	}
	return nil
}
