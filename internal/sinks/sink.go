// Package sinks provides destinations for generated stat blocks.
//
// Every sink in this package is safe for concurrent use: a block is
// formatted into a single line and written with one call while a lock is
// held, so lines from different workers never interleave.
package sinks

//go:generate mockgen -destination=mock/mock_sink.go -package=sinksmock github.com/KirkDiggler/dndtools/internal/sinks Sink

import (
	"github.com/KirkDiggler/dndtools/internal/dice"
)

// Sink receives stat blocks as they are generated
type Sink interface {
	Write(block dice.StatBlock) error
}

// FormatLine renders a block as it appears on the console and in files:
// scores highest first, space separated, newline terminated.
func FormatLine(block dice.StatBlock) []byte {
	return []byte(block.String() + "\n")
}

type discard struct{}

func (discard) Write(dice.StatBlock) error { return nil }

// Discard accepts and drops every block
var Discard Sink = discard{}

type multi struct {
	sinks []Sink
}

// Multi writes each block to every sink in order, stopping at the first error.
// Nil sinks are skipped.
func Multi(sinks ...Sink) Sink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return Discard
	}
	if len(out) == 1 {
		return out[0]
	}
	return &multi{sinks: out}
}

func (m *multi) Write(block dice.StatBlock) error {
	for _, s := range m.sinks {
		if err := s.Write(block); err != nil {
			return err
		}
	}
	return nil
}
