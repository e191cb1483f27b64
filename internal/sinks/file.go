package sinks

import (
	"bufio"
	"os"
	"sync"

	"github.com/KirkDiggler/dndtools/internal/dice"
	"github.com/KirkDiggler/dndtools/internal/errors"
)

// FileSink owns an output file. Writes are buffered and serialized; a line
// is always handed to the buffer whole.
type FileSink struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	buf    *bufio.Writer
	closed bool
}

// OpenFileSink creates path, truncating it, or opens it for appending when
// appendMode is set.
func OpenFileSink(path string, appendMode bool) (*FileSink, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "cannot open output file %s", path).
			WithMeta("path", path)
	}

	return &FileSink{
		path: path,
		file: f,
		buf:  bufio.NewWriter(f),
	}, nil
}

// Path returns the file path
func (s *FileSink) Path() string {
	return s.path
}

// Write appends the block as one line
func (s *FileSink) Write(block dice.StatBlock) error {
	line := FormatLine(block)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.Unavailablef("output file %s is closed", s.path).WithMeta("path", s.path)
	}
	if _, err := s.buf.Write(line); err != nil {
		return errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to write to %s", s.path).
			WithMeta("path", s.path)
	}
	return nil
}

// Close flushes buffered lines and closes the file. It is safe to call twice.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	flushErr := s.buf.Flush()
	closeErr := s.file.Close()
	if flushErr != nil {
		return errors.WrapWithCodef(flushErr, errors.CodeDataLoss, "failed to flush %s", s.path).
			WithMeta("path", s.path)
	}
	if closeErr != nil {
		return errors.WrapWithCodef(closeErr, errors.CodeDataLoss, "failed to close %s", s.path).
			WithMeta("path", s.path)
	}
	return nil
}
