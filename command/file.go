package command

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FileSource emits the trimmed contents of a mood file once at start and after every change
// The parent directory is watched so editors that replace the file are still seen
type FileSource struct {
	path    string
	watcher *fsnotify.Watcher
	lines   chan string
	logger  *zap.SugaredLogger

	closeCh   chan struct{}
	closeOnce sync.Once
	done      chan struct{}

	mu   sync.Mutex
	last string
}

// WatchFile starts watching path; a missing file is not an error until it appears
func WatchFile(path string, logger *zap.SugaredLogger) (*FileSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve mood file %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}

	f := &FileSource{
		path:    abs,
		watcher: w,
		lines:   make(chan string, DefaultQueueSize),
		logger:  logger,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	f.emit()
	go f.watchLoop()
	return f, nil
}

func (f *FileSource) watchLoop() {
	defer close(f.done)
	for {
		select {
		case <-f.closeCh:
			return
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				f.emit()
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.logger.Warnw("mood file watcher error", "path", f.path, "error", err)
		}
	}
}

// emit reads the file and queues its contents when they differ from the last emitted line
func (f *FileSource) emit() {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warnw("read mood file", "path", f.path, "error", err)
		}
		return
	}
	line := strings.TrimSpace(string(data))
	if line == "" {
		return
	}

	// Editors often produce several writes per save
	f.mu.Lock()
	if line == f.last {
		f.mu.Unlock()
		return
	}
	f.last = line
	f.mu.Unlock()

	select {
	case f.lines <- line:
	default:
		f.logger.Debugw("command queue full, dropping line", "line", line)
	}
}

func (f *FileSource) Poll() (string, bool) {
	select {
	case line := <-f.lines:
		return line, true
	default:
		return "", false
	}
}

// Close stops the watcher and waits for its goroutine
func (f *FileSource) Close() error {
	var err error
	f.closeOnce.Do(func() {
		close(f.closeCh)
		err = f.watcher.Close()
		<-f.done
	})
	return err
}
