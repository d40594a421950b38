package pipeline

import (
	"errors"
	"strings"

	"github.com/handiism/audioconv/internal/codec"
)

// ErrEmptyPipeline is returned when a pipeline without stages is built.
var ErrEmptyPipeline = errors.New("pipeline has no stages")

// Pipeline is an ordered, non-empty chain of codec stages. Stage i
// writes to stage i+1; the first stage reads the source file and the last
// one writes the destination.
type Pipeline struct {
	stages []codec.Stage
}

// New builds a pipeline from stages.
func New(stages ...codec.Stage) (Pipeline, error) {
	if len(stages) == 0 {
		return Pipeline{}, ErrEmptyPipeline
	}
	return Pipeline{stages: append([]codec.Stage(nil), stages...)}, nil
}

// Must is like New but panics on an empty stage list. It is meant for
// static tables.
func Must(stages ...codec.Stage) Pipeline {
	p, err := New(stages...)
	if err != nil {
		panic(err)
	}
	return p
}

// Stages returns a copy of the stages.
func (p Pipeline) Stages() []codec.Stage {
	return append([]codec.Stage(nil), p.stages...)
}

// Len returns the number of stages.
func (p Pipeline) Len() int {
	return len(p.stages)
}

// String renders the chain, e.g. "flac-decoder(flac) | mp3-encoder(lame)".
func (p Pipeline) String() string {
	parts := make([]string, len(p.stages))
	for i, s := range p.stages {
		parts[i] = s.String()
	}
	return strings.Join(parts, " | ")
}
