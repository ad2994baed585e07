//go:build linux

// Package evdev implements padcore's native.Backend over the Linux kernel
// joystick interface (/dev/input/js*). Hot-plug notifications come from an
// fsnotify watch on /dev/input; device identity and hardware ids are read
// from sysfs.
package evdev

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/padcore/padcore/native"
)

const devInputDir = "/dev/input"

// Backend enumerates kernel joystick devices and watches for hot-plug.
type Backend struct {
	logger *slog.Logger

	mu    sync.Mutex
	open  map[string]*Controller // keyed by device path
	watch *fsnotify.Watcher
}

// New returns a Backend. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := os.Stat(devInputDir); err != nil {
		return nil, fmt.Errorf("joystick device directory unavailable: %w", err)
	}
	return &Backend{
		logger: logger,
		open:   make(map[string]*Controller),
	}, nil
}

// Controllers implements native.Backend. Devices that disappeared since
// the last call are closed and dropped.
func (b *Backend) Controllers() ([]native.Controller, error) {
	paths, err := joystickPaths()
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[string]bool, len(paths))
	out := make([]native.Controller, 0, len(paths))
	for _, path := range paths {
		seen[path] = true
		ctrl, ok := b.open[path]
		if !ok {
			ctrl, err = openController(path)
			if err != nil {
				b.logger.Warn("failed to open joystick device", "path", path, "error", err)
				continue
			}
			b.open[path] = ctrl
		}
		out = append(out, ctrl)
	}
	for path, ctrl := range b.open {
		if !seen[path] {
			ctrl.close()
			delete(b.open, path)
		}
	}
	return out, nil
}

// Subscribe implements native.Backend by watching /dev/input for js*
// nodes appearing and disappearing. Callbacks run on the watcher
// goroutine.
func (b *Backend) Subscribe(added, removed func(native.Controller)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating device watcher: %w", err)
	}
	if err := watcher.Add(devInputDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", devInputDir, err)
	}

	b.mu.Lock()
	b.watch = watcher
	b.mu.Unlock()

	go b.watchLoop(watcher, added, removed)
	return nil
}

func (b *Backend) watchLoop(watcher *fsnotify.Watcher, added, removed func(native.Controller)) {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isJoystickNode(ev.Name) {
				continue
			}
			switch {
			case ev.Op&fsnotify.Create != 0:
				if ctrl := b.adopt(ev.Name); ctrl != nil {
					added(ctrl)
				}
			case ev.Op&fsnotify.Remove != 0:
				if ctrl := b.evict(ev.Name); ctrl != nil {
					removed(ctrl)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			b.logger.Warn("device watcher error", "error", err)
		}
	}
}

// adopt opens a freshly created device node, retrying is left to the next
// polling cycle when the node is not readable yet (udev may still be
// adjusting permissions).
func (b *Backend) adopt(path string) *Controller {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ctrl, ok := b.open[path]; ok {
		return ctrl
	}
	ctrl, err := openController(path)
	if err != nil {
		b.logger.Warn("failed to open hot-plugged joystick", "path", path, "error", err)
		return nil
	}
	b.open[path] = ctrl
	return ctrl
}

func (b *Backend) evict(path string) *Controller {
	b.mu.Lock()
	defer b.mu.Unlock()
	ctrl, ok := b.open[path]
	if !ok {
		return nil
	}
	ctrl.close()
	delete(b.open, path)
	return ctrl
}

// Close stops the hot-plug watcher and closes every open device.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var err error
	if b.watch != nil {
		err = b.watch.Close()
		b.watch = nil
	}
	for path, ctrl := range b.open {
		ctrl.close()
		delete(b.open, path)
	}
	return err
}

func joystickPaths() ([]string, error) {
	entries, err := os.ReadDir(devInputDir)
	if err != nil {
		return nil, fmt.Errorf("enumerating %s: %w", devInputDir, err)
	}
	var paths []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "js") && len(name) > 2 {
			paths = append(paths, filepath.Join(devInputDir, name))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func isJoystickNode(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, "js") && len(name) > 2
}
