// Package ffmpeg wraps the ffmpeg and ffprobe command line tools for the two
// operations this service needs: duration probing and deterministic clip
// extraction.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}

	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}

	return nil
}

// ExtractClip cuts [startS, endS) from src into a 44.1kHz stereo PCM WAV at
// dst. Start is clamped to zero and end to a small epsilon past start; the
// output is fully determined by the inputs, so concurrent extraction of the
// same range is safe. Uses -t (duration) rather than -to.
func (f *FFmpeg) ExtractClip(ctx context.Context, src string, startS, endS float64, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return NewProcessingError("clip_extraction", src, err, "")
	}

	if startS < 0 {
		startS = 0
	}
	if endS < startS+0.01 {
		endS = startS + 0.01
	}
	durS := endS - startS

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	args := []string{
		"-y",
		"-hide_banner", "-loglevel", "error",
		"-i", src,
		"-ss", fmt.Sprintf("%.3f", startS),
		"-t", fmt.Sprintf("%.3f", durS),
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "44100",
		"-ac", "2",
		dst,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return NewProcessingError("clip_extraction", src, err, stderr.String())
	}

	return nil
}

// Transcode converts src into a 16kHz mono PCM WAV at dst, the input format
// the transcription engine expects.
func (f *FFmpeg) Transcode(ctx context.Context, src, dst string) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	args := []string{
		"-y",
		"-hide_banner", "-loglevel", "error",
		"-i", src,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		dst,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return NewProcessingError("transcode", src, err, stderr.String())
	}

	return nil
}
