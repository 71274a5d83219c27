//go:build !whisper_cpp

package transcriber

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/killallgit/voice-search-api/pkg/ffmpeg"
)

// Default stub (no cgo) so the project builds without the whisper_cpp tag.
// Jobs complete with zero segments.
type stubEngine struct{}

func NewEngine(modelPath, language string, ff *ffmpeg.FFmpeg) (Transcriber, error) {
	log.Warn().Str("model", modelPath).Msg("whisper: built without whisper_cpp tag, transcription disabled")
	return &stubEngine{}, nil
}

func (e *stubEngine) Close() error { return nil }

func (e *stubEngine) Transcribe(ctx context.Context, path string) (Stream, error) {
	return NewSliceStream(nil), nil
}
