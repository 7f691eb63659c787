package command

import (
	"bufio"
	"bytes"
	"io"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Source yields received lines to the render loop
// Poll must never block; ok is false when nothing is pending
type Source interface {
	Poll() (line string, ok bool)
}

const (
	// DefaultQueueSize bounds lines buffered between a reader goroutine and Poll
	DefaultQueueSize = 16
	// MaxLineSize is the longest accepted line, longer ones are discarded whole
	MaxLineSize = 4096
)

// LineSource reads newline terminated lines from a blocking reader on its own goroutine
type LineSource struct {
	lines  chan string
	closer io.Closer
	logger *zap.SugaredLogger

	closeCh   chan struct{}
	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

// NewLineSource starts reading r; closer, if non-nil, is closed by Close to unblock the reader
func NewLineSource(r io.Reader, closer io.Closer, logger *zap.SugaredLogger) *LineSource {
	s := &LineSource{
		lines:   make(chan string, DefaultQueueSize),
		closer:  closer,
		logger:  logger,
		closeCh: make(chan struct{}),
	}
	go s.readLoop(r)
	return s
}

func (s *LineSource) readLoop(r io.Reader) {
	br := bufio.NewReaderSize(r, MaxLineSize)
	discarding := false
	for {
		frag, err := br.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			// Oversized line: drop it through the next newline, keep the channel alive
			if !discarding {
				s.logger.Warnw("dropping oversized command line", "limit", MaxLineSize)
			}
			discarding = true
			continue
		}

		if discarding {
			discarding = false
		} else if err == nil || len(frag) > 0 {
			if !s.deliver(trimEOL(frag)) {
				return
			}
		}

		if err != nil {
			s.finish(err)
			return
		}
	}
}

// deliver queues line, returning false once the source is closed
func (s *LineSource) deliver(line string) bool {
	select {
	case <-s.closeCh:
		return false
	default:
	}
	select {
	case s.lines <- line:
	default:
		// Render loop is behind, newest line loses
		s.logger.Debugw("command queue full, dropping line", "line", line)
	}
	return true
}

func (s *LineSource) finish(err error) {
	select {
	case <-s.closeCh:
		// Close unblocked the read, not a failure
		err = io.EOF
	default:
		if err == io.EOF {
			s.logger.Infow("command input ended")
		} else {
			err = errors.Wrap(err, "read commands")
			s.logger.Warnw("command reader stopped", "error", err)
		}
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func trimEOL(b []byte) string {
	b = bytes.TrimSuffix(b, []byte{'\n'})
	b = bytes.TrimSuffix(b, []byte{'\r'})
	return string(b)
}

// Poll returns the oldest pending line, if any
func (s *LineSource) Poll() (string, bool) {
	select {
	case line := <-s.lines:
		return line, true
	default:
		return "", false
	}
}

// Err returns the error that stopped the reader, io.EOF at end of input, nil while running
func (s *LineSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops delivery and closes the underlying device
func (s *LineSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closeCh)
		if s.closer != nil {
			err = s.closer.Close()
		}
	})
	return err
}

// Multi polls several sources in order, the first pending line wins this tick
type Multi []Source

func (m Multi) Poll() (string, bool) {
	for _, src := range m {
		if line, ok := src.Poll(); ok {
			return line, true
		}
	}
	return "", false
}
