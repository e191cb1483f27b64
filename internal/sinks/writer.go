package sinks

import (
	"io"
	"sync"

	"github.com/KirkDiggler/dndtools/internal/dice"
	"github.com/KirkDiggler/dndtools/internal/errors"
)

// WriterSink writes one line per block to an io.Writer such as stdout
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink wraps w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write writes the block as a single line
func (s *WriterSink) Write(block dice.StatBlock) error {
	line := FormatLine(block)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(line); err != nil {
		return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to write stat block")
	}
	return nil
}
