// Package jobs runs transcription jobs: each job streams segments from the
// transcriber, stamps clips with their normalized projections, and merges
// them into the store exactly once when the job ends, on every exit path.
package jobs

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/killallgit/voice-search-api/internal/models"
	"github.com/killallgit/voice-search-api/internal/services/transcriber"
	"github.com/killallgit/voice-search-api/internal/services/workers"
	"github.com/killallgit/voice-search-api/internal/store"
	"github.com/killallgit/voice-search-api/pkg/ffmpeg"
	"github.com/killallgit/voice-search-api/pkg/phonetics"
)

// minSegmentSeconds drops segments too short to be a meaningful clip.
const minSegmentSeconds = 0.15

// Service manages the lifecycle of transcription jobs.
type Service interface {
	// Submit queues a transcription job for the given audio. sourcePath is
	// the resolved location of the audio file on disk; Audio.Path alone is
	// relative to the upload directory and not usable here.
	Submit(ctx context.Context, audio models.Audio, sourcePath string) (models.Job, error)
	// Get returns a snapshot of the job, if known.
	Get(id string) (models.Job, bool)
	// Cancel requests cancellation and reports which path applied.
	Cancel(id string) (CancelOutcome, bool)
}

// ServiceImpl implements Service on top of the worker pool.
type ServiceImpl struct {
	store    *store.Store
	engine   transcriber.Transcriber
	ff       *ffmpeg.FFmpeg
	pool     *workers.Pool
	registry *Registry
}

// NewService creates a job service with its own registry.
func NewService(s *store.Store, engine transcriber.Transcriber, ff *ffmpeg.FFmpeg, pool *workers.Pool) *ServiceImpl {
	return &ServiceImpl{
		store:    s,
		engine:   engine,
		ff:       ff,
		pool:     pool,
		registry: NewRegistry(),
	}
}

// Submit registers a queued job and enqueues its execution. A full queue
// fails the submission; no orphan queued job is left behind.
func (s *ServiceImpl) Submit(ctx context.Context, audio models.Audio, sourcePath string) (models.Job, error) {
	job := s.registry.Create()

	err := s.pool.Submit(func(runCtx context.Context) {
		s.run(runCtx, job.ID, audio, sourcePath)
	})
	if err != nil {
		s.registry.Finalize(job.ID, models.JobStatusError, 0, "could not queue job: "+err.Error())
		return models.Job{}, fmt.Errorf("submit transcription job: %w", err)
	}

	log.Info().Str("job_id", job.ID).Str("audio_id", audio.ID).Msg("transcription job queued")
	return job, nil
}

// Get implements Service.
func (s *ServiceImpl) Get(id string) (models.Job, bool) {
	return s.registry.Get(id)
}

// Cancel implements Service.
func (s *ServiceImpl) Cancel(id string) (CancelOutcome, bool) {
	outcome, ok := s.registry.Cancel(id)
	if ok {
		log.Info().Str("job_id", id).Str("outcome", string(outcome)).Msg("job cancellation requested")
	}
	return outcome, ok
}

// failureMessage records both the concrete error type and its message, so a
// terminal job status distinguishes a decode failure from a missing file.
func failureMessage(err error) string {
	return fmt.Sprintf("transcription failed: %T: %v", err, err)
}

// run is the execution unit for one job. Whatever happens inside, the
// deferred finalize merges buffered clips and sets a terminal status exactly
// once.
func (s *ServiceImpl) run(ctx context.Context, jobID string, audio models.Audio, sourcePath string) {
	token, ok := s.registry.TryStart(jobID)
	if !ok {
		// cancelled before the start gate
		return
	}

	var (
		buffered []models.Clip
		status   = models.JobStatusDone
		message  string
	)
	defer func() {
		if r := recover(); r != nil {
			status = models.JobStatusError
			message = fmt.Sprintf("internal error: %v", r)
			log.Error().Str("job_id", jobID).Interface("panic", r).Msg("job panicked")
		}
		if token.Cancelled() {
			// a cancel observed anywhere wins over error and done
			status = models.JobStatusCancelled
			if message == "" {
				message = "cancelled"
			}
		}
		s.finalize(jobID, buffered, status, message)
	}()

	duration := audio.Duration
	if duration <= 0 {
		if d, err := s.ff.Duration(ctx, sourcePath); err == nil {
			duration = d
		} else {
			log.Warn().Err(err).Str("job_id", jobID).Msg("could not probe duration, using heuristic progress")
		}
	}

	stream, err := s.engine.Transcribe(ctx, sourcePath)
	if err != nil {
		status = models.JobStatusError
		message = failureMessage(err)
		return
	}

	for {
		if token.Cancelled() {
			return
		}

		seg, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			status = models.JobStatusError
			message = failureMessage(err)
			return
		}

		text := strings.TrimSpace(seg.Text)
		if text == "" || seg.End-seg.Start < minSegmentSeconds {
			continue
		}

		buffered = append(buffered, models.Clip{
			ID:         uuid.New().String(),
			ProfileID:  audio.ProfileID,
			AudioID:    audio.ID,
			StartS:     seg.Start,
			EndS:       seg.End,
			Transcript: text,
			Norm:       phonetics.NormalizeBasic(text),
			KoPronNorm: phonetics.NormalizePronunciation(text),
			JpKanaNorm: phonetics.FoldKana(text),
			CreatedAt:  time.Now().UTC(),
		})

		var progress int
		if duration > 0 {
			progress = int(seg.End / duration * 100)
		} else {
			progress = 2 + len(buffered)
		}
		s.registry.SetProgress(jobID, progress)
	}
}

// finalize merges the buffered clips into the store and records the terminal
// status. The registry lock is never held across the store call.
func (s *ServiceImpl) finalize(jobID string, buffered []models.Clip, status models.JobStatus, message string) {
	created := 0
	if len(buffered) > 0 {
		err := s.store.Update(func(d *store.Data) error {
			d.Clips = append(d.Clips, buffered...)
			return nil
		})
		if err != nil {
			log.Error().Err(err).Str("job_id", jobID).Msg("failed to persist clips")
			if status == models.JobStatusDone {
				status = models.JobStatusError
			}
			if message == "" {
				message = fmt.Sprintf("failed to persist clips: %T: %v", err, err)
			}
		} else {
			created = len(buffered)
		}
	}

	s.registry.Finalize(jobID, status, created, message)
	log.Info().
		Str("job_id", jobID).
		Str("status", string(status)).
		Int("clips_created", created).
		Msg("transcription job finished")
}
