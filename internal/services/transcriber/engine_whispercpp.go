//go:build whisper_cpp

package transcriber

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	whisperpkg "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/killallgit/voice-search-api/pkg/ffmpeg"
)

// EngineCPP is the whisper.cpp-backed implementation of Transcriber.
type EngineCPP struct {
	model    whisperpkg.Model
	threads  uint
	language string
	ff       *ffmpeg.FFmpeg
	mu       sync.Mutex // whisper.cpp contexts must not run concurrently
}

// NewEngine loads the whisper model at modelPath. language is a whisper
// language code, or "auto" for detection.
func NewEngine(modelPath, language string, ff *ffmpeg.FFmpeg) (Transcriber, error) {
	if language == "" {
		language = "auto"
	}

	m, err := whisperpkg.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	log.Info().Str("model", modelPath).Str("language", language).Msg("whisper: model loaded")
	return &EngineCPP{
		model:    m,
		threads:  uint(runtime.NumCPU()),
		language: language,
		ff:       ff,
	}, nil
}

// Close releases the loaded model.
func (e *EngineCPP) Close() error {
	if e.model != nil {
		e.model.Close()
	}
	return nil
}

// Transcribe transcodes the file to 16kHz mono PCM, runs the model over it,
// and returns the timestamped segments as a stream. The whole file is
// processed before Transcribe returns.
func (e *EngineCPP) Transcribe(ctx context.Context, path string) (Stream, error) {
	wavPath := filepath.Join(os.TempDir(), fmt.Sprintf("whisper_%s.wav", uuid.New().String()))
	defer os.Remove(wavPath)

	if err := e.ff.Transcode(ctx, path, wavPath); err != nil {
		return nil, fmt.Errorf("transcode for transcription: %w", err)
	}

	samples, _, err := decodeWAVToFloat32(wavPath)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	if len(samples) == 0 {
		return NewSliceStream(nil), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	wctx, err := e.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("create context: %w", err)
	}
	wctx.SetThreads(e.threads)
	_ = wctx.SetLanguage(e.language)
	wctx.SetTokenTimestamps(true)
	wctx.SetMaxSegmentLength(0)
	wctx.SetMaxTokensPerSegment(0)

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		log.Error().Err(err).Str("path", path).Msg("whisper: process failed")
		return nil, fmt.Errorf("process audio: %w", err)
	}

	var segments []Segment
	for {
		seg, err := wctx.NextSegment()
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Warn().Err(err).Msg("whisper: error reading segment")
			break
		}
		segments = append(segments, Segment{
			Start: seg.Start.Seconds(),
			End:   seg.End.Seconds(),
			Text:  strings.TrimSpace(seg.Text),
		})
	}

	log.Debug().Int("segments", len(segments)).Str("path", path).Msg("whisper: transcription complete")
	return NewSliceStream(segments), nil
}
