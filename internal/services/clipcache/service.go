// Package clipcache caches clip audio cut out of the source recordings.
// Entries are content-addressed by clip id and cut boundaries, so a cached
// file never goes stale while the clip exists.
package clipcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/killallgit/voice-search-api/pkg/ffmpeg"
)

// Service produces and invalidates cached clip cuts.
type Service interface {
	// Ensure returns the path of the cached cut for the clip, cutting it
	// first if absent.
	Ensure(ctx context.Context, clipID, sourcePath string, startS, endS float64) (string, error)
	// Invalidate removes all cached cuts for the clip. Best effort.
	Invalidate(clipID string)
}

// ServiceImpl implements Service on a flat cache directory.
type ServiceImpl struct {
	cacheDir string
	ff       *ffmpeg.FFmpeg
}

// NewService creates a clip cache rooted at cacheDir.
func NewService(cacheDir string, ff *ffmpeg.FFmpeg) *ServiceImpl {
	return &ServiceImpl{cacheDir: cacheDir, ff: ff}
}

// key addresses a cut by clip id and millisecond-rounded boundaries.
func key(clipID string, startS, endS float64) string {
	return fmt.Sprintf("%s_%.3f_%.3f.wav", clipID, startS, endS)
}

// Ensure implements Service. Concurrent callers for the same clip may both
// cut; the output is deterministic so last writer wins harmlessly.
func (s *ServiceImpl) Ensure(ctx context.Context, clipID, sourcePath string, startS, endS float64) (string, error) {
	path := filepath.Join(s.cacheDir, key(clipID, startS, endS))

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}

	if err := s.ff.ExtractClip(ctx, sourcePath, startS, endS, path); err != nil {
		// never leave a partial artifact at the key
		os.Remove(path)
		return "", err
	}

	log.Debug().Str("clip_id", clipID).Str("path", path).Msg("cut clip audio")
	return path, nil
}

// Invalidate implements Service.
func (s *ServiceImpl) Invalidate(clipID string) {
	matches, err := filepath.Glob(filepath.Join(s.cacheDir, clipID+"_*.wav"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			log.Warn().Err(err).Str("path", m).Msg("failed to remove cached clip audio")
		}
	}
}
