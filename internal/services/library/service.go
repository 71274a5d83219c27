// Package library manages profiles, uploaded audio and clips. It owns the
// upload directory and coordinates cascade deletion with the clip cache.
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"lukechampine.com/blake3"

	"github.com/killallgit/voice-search-api/internal/models"
	"github.com/killallgit/voice-search-api/internal/services/clipcache"
	"github.com/killallgit/voice-search-api/internal/store"
	"github.com/killallgit/voice-search-api/pkg/ffmpeg"
)

// allowedExtensions are the upload formats ffmpeg is expected to decode.
var allowedExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".aac":  true,
}

// Service manages the profile/audio/clip collection.
type Service interface {
	CreateProfile(ctx context.Context, name string) (models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	DeleteProfile(ctx context.Context, id string) error

	// SaveUpload stores the uploaded bytes and registers an Audio record.
	// A re-upload of identical content for the same profile returns the
	// existing record with created=false.
	SaveUpload(ctx context.Context, profileID, originalFilename string, r io.Reader) (audio models.Audio, created bool, err error)
	GetAudio(ctx context.Context, id string) (models.Audio, error)
	// SourcePath resolves an audio record to its file on disk.
	SourcePath(audio models.Audio) string

	ListClips(ctx context.Context, profileID string) ([]models.Clip, error)
	GetClip(ctx context.Context, id string) (models.Clip, error)
	DeleteClip(ctx context.Context, id string) error
	// BulkDeleteClips deletes the given clips, ignoring duplicates and
	// unknown ids, and reports how many records were removed.
	BulkDeleteClips(ctx context.Context, ids []string) (int, error)
}

// ServiceImpl implements Service.
type ServiceImpl struct {
	store     *store.Store
	cache     clipcache.Service
	ff        *ffmpeg.FFmpeg
	uploadDir string
}

// NewService creates a library service rooted at uploadDir.
func NewService(s *store.Store, cache clipcache.Service, ff *ffmpeg.FFmpeg, uploadDir string) *ServiceImpl {
	return &ServiceImpl{store: s, cache: cache, ff: ff, uploadDir: uploadDir}
}

// CreateProfile implements Service.
func (s *ServiceImpl) CreateProfile(ctx context.Context, name string) (models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Profile{}, ErrBlankProfileName
	}

	profile := models.Profile{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	err := s.store.Update(func(d *store.Data) error {
		d.Profiles = append(d.Profiles, profile)
		return nil
	})
	if err != nil {
		return models.Profile{}, err
	}

	log.Info().Str("profile_id", profile.ID).Str("name", name).Msg("profile created")
	return profile, nil
}

// ListProfiles implements Service. Profiles are returned newest first.
func (s *ServiceImpl) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	data, err := s.store.View()
	if err != nil {
		return nil, err
	}
	profiles := data.Profiles
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})
	return profiles, nil
}

// DeleteProfile removes the profile with its clips and audios in one store
// mutation, then cleans cached cuts and uploaded files best-effort.
func (s *ServiceImpl) DeleteProfile(ctx context.Context, id string) error {
	var (
		clipIDs    []string
		audioPaths []string
	)
	err := s.store.Update(func(d *store.Data) error {
		found := false
		profiles := d.Profiles[:0]
		for _, p := range d.Profiles {
			if p.ID == id {
				found = true
				continue
			}
			profiles = append(profiles, p)
		}
		if !found {
			return ErrProfileNotFound
		}
		d.Profiles = profiles

		clips := d.Clips[:0]
		for _, c := range d.Clips {
			if c.ProfileID == id {
				clipIDs = append(clipIDs, c.ID)
				continue
			}
			clips = append(clips, c)
		}
		d.Clips = clips

		audios := d.Audios[:0]
		for _, a := range d.Audios {
			if a.ProfileID == id {
				audioPaths = append(audioPaths, a.Path)
				continue
			}
			audios = append(audios, a)
		}
		d.Audios = audios
		return nil
	})
	if err != nil {
		return err
	}

	for _, clipID := range clipIDs {
		s.cache.Invalidate(clipID)
	}
	for _, path := range audioPaths {
		full := filepath.Join(s.uploadDir, path)
		if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", full).Msg("failed to remove uploaded file")
		}
	}

	log.Info().Str("profile_id", id).Int("clips", len(clipIDs)).Int("audios", len(audioPaths)).Msg("profile deleted")
	return nil
}

// errDuplicateUpload aborts the store mutation when the content is already
// registered for the profile.
var errDuplicateUpload = errors.New("duplicate upload")

// SaveUpload implements Service.
func (s *ServiceImpl) SaveUpload(ctx context.Context, profileID, originalFilename string, r io.Reader) (models.Audio, bool, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		return models.Audio{}, false, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return models.Audio{}, false, fmt.Errorf("create upload directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.uploadDir, "upload-*"+ext)
	if err != nil {
		return models.Audio{}, false, fmt.Errorf("create upload file: %w", err)
	}
	tmpPath := tmp.Name()

	hasher := blake3.New(32, nil)
	if _, err := io.Copy(io.MultiWriter(tmp, hasher), r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return models.Audio{}, false, fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return models.Audio{}, false, fmt.Errorf("close upload: %w", err)
	}
	contentHash := fmt.Sprintf("%x", hasher.Sum(nil))

	audio := models.Audio{
		ID:               uuid.New().String(),
		ProfileID:        profileID,
		OriginalFilename: originalFilename,
		Path:             "", // filled in below once the id is final
		ContentHash:      contentHash,
		CreatedAt:        time.Now().UTC(),
	}
	audio.Path = audio.ID + ext

	if d, err := s.ff.Duration(ctx, tmpPath); err == nil {
		audio.Duration = d
	} else {
		log.Warn().Err(err).Str("audio_id", audio.ID).Msg("could not probe upload duration")
	}

	finalPath := filepath.Join(s.uploadDir, audio.Path)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return models.Audio{}, false, fmt.Errorf("store upload: %w", err)
	}

	var existing models.Audio
	err = s.store.Update(func(d *store.Data) error {
		if !profileExists(d, profileID) {
			return ErrProfileNotFound
		}
		for _, a := range d.Audios {
			if a.ProfileID == profileID && a.ContentHash == contentHash {
				existing = a
				return errDuplicateUpload
			}
		}
		d.Audios = append(d.Audios, audio)
		return nil
	})
	if errors.Is(err, errDuplicateUpload) {
		os.Remove(finalPath)
		log.Info().Str("audio_id", existing.ID).Str("hash", contentHash).Msg("duplicate upload, reusing audio")
		return existing, false, nil
	}
	if err != nil {
		os.Remove(finalPath)
		return models.Audio{}, false, err
	}

	log.Info().Str("audio_id", audio.ID).Str("profile_id", profileID).Float64("duration", audio.Duration).Msg("audio uploaded")
	return audio, true, nil
}

// GetAudio implements Service.
func (s *ServiceImpl) GetAudio(ctx context.Context, id string) (models.Audio, error) {
	data, err := s.store.View()
	if err != nil {
		return models.Audio{}, err
	}
	for _, a := range data.Audios {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Audio{}, ErrAudioNotFound
}

// SourcePath implements Service.
func (s *ServiceImpl) SourcePath(audio models.Audio) string {
	return filepath.Join(s.uploadDir, audio.Path)
}

// ListClips implements Service. An empty profileID lists all clips, newest
// first.
func (s *ServiceImpl) ListClips(ctx context.Context, profileID string) ([]models.Clip, error) {
	data, err := s.store.View()
	if err != nil {
		return nil, err
	}
	clips := data.Clips
	if profileID != "" {
		filtered := clips[:0:0]
		for _, c := range clips {
			if c.ProfileID == profileID {
				filtered = append(filtered, c)
			}
		}
		clips = filtered
	}
	sort.SliceStable(clips, func(i, j int) bool {
		return clips[i].CreatedAt.After(clips[j].CreatedAt)
	})
	return clips, nil
}

// GetClip implements Service.
func (s *ServiceImpl) GetClip(ctx context.Context, id string) (models.Clip, error) {
	data, err := s.store.View()
	if err != nil {
		return models.Clip{}, err
	}
	for _, c := range data.Clips {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Clip{}, ErrClipNotFound
}

// DeleteClip implements Service.
func (s *ServiceImpl) DeleteClip(ctx context.Context, id string) error {
	n, err := s.BulkDeleteClips(ctx, []string{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrClipNotFound
	}
	return nil
}

// BulkDeleteClips implements Service.
func (s *ServiceImpl) BulkDeleteClips(ctx context.Context, ids []string) (int, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var removed []string
	err := s.store.Update(func(d *store.Data) error {
		clips := d.Clips[:0]
		for _, c := range d.Clips {
			if wanted[c.ID] {
				removed = append(removed, c.ID)
				continue
			}
			clips = append(clips, c)
		}
		d.Clips = clips
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, id := range removed {
		s.cache.Invalidate(id)
	}
	if len(removed) > 0 {
		log.Info().Int("deleted", len(removed)).Msg("clips deleted")
	}
	return len(removed), nil
}

func profileExists(d *store.Data, id string) bool {
	for _, p := range d.Profiles {
		if p.ID == id {
			return true
		}
	}
	return false
}
