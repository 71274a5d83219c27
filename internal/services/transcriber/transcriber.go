// Package transcriber defines the boundary to the speech-to-text engine.
// The engine yields a finite, non-restartable sequence of timestamped
// segments; it must be invoked at most once per job.
package transcriber

import (
	"context"
	"io"
)

// Segment is one (start, end, text) unit emitted by the engine.
type Segment struct {
	Start float64 // seconds
	End   float64 // seconds
	Text  string
}

// Stream is a lazily produced, forward-only sequence of segments.
// Next returns io.EOF when the sequence is exhausted.
type Stream interface {
	Next() (Segment, error)
}

// Transcriber runs speech-to-text over a decoded audio file with automatic
// language detection.
type Transcriber interface {
	// Transcribe starts transcription of the file at path. The returned
	// stream must be consumed on the calling goroutine and cannot be
	// restarted; re-processing requires a new Transcribe call.
	Transcribe(ctx context.Context, path string) (Stream, error)
	Close() error
}

// SliceStream adapts a fixed segment slice into a Stream. Used by tests and
// by engines that buffer internally.
type SliceStream struct {
	segments []Segment
	pos      int
}

// NewSliceStream creates a stream over the given segments.
func NewSliceStream(segments []Segment) *SliceStream {
	return &SliceStream{segments: segments}
}

// Next implements Stream.
func (s *SliceStream) Next() (Segment, error) {
	if s.pos >= len(s.segments) {
		return Segment{}, io.EOF
	}
	seg := s.segments[s.pos]
	s.pos++
	return seg, nil
}
