package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/voice-search-api/internal/models"
	"github.com/killallgit/voice-search-api/internal/store"
	"github.com/killallgit/voice-search-api/pkg/ffmpeg"
)

// recordingCache records invalidations instead of touching disk.
type recordingCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (c *recordingCache) Ensure(ctx context.Context, clipID, sourcePath string, startS, endS float64) (string, error) {
	return "", nil
}

func (c *recordingCache) Invalidate(clipID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, clipID)
}

func newTestService(t *testing.T) (*ServiceImpl, *store.Store, *recordingCache, string) {
	t.Helper()
	dir := t.TempDir()
	st := store.New(filepath.Join(dir, "data.json"))
	cache := &recordingCache{}
	ff := ffmpeg.New("/nonexistent/ffmpeg", "/nonexistent/ffprobe", time.Second)
	uploadDir := filepath.Join(dir, "uploads")
	return NewService(st, cache, ff, uploadDir), st, cache, uploadDir
}

func TestCreateProfile(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	profile, err := svc.CreateProfile(context.Background(), "  Tutor A  ")
	require.NoError(t, err)
	assert.Equal(t, "Tutor A", profile.Name)
	assert.NotEmpty(t, profile.ID)

	profiles, err := svc.ListProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, profile.ID, profiles[0].ID)
}

func TestCreateProfileBlankName(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CreateProfile(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrBlankProfileName)

	profiles, err := svc.ListProfiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestListProfilesNewestFirst(t *testing.T) {
	svc, st, _, _ := newTestService(t)
	base := time.Now()
	require.NoError(t, st.Update(func(d *store.Data) error {
		d.Profiles = append(d.Profiles,
			models.Profile{ID: "old", Name: "old", CreatedAt: base},
			models.Profile{ID: "new", Name: "new", CreatedAt: base.Add(time.Minute)},
		)
		return nil
	}))

	profiles, err := svc.ListProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "new", profiles[0].ID)
}

func TestSaveUploadAndDedupe(t *testing.T) {
	svc, st, _, uploadDir := newTestService(t)
	profile, err := svc.CreateProfile(context.Background(), "p")
	require.NoError(t, err)

	content := "RIFF fake wav bytes"
	audio, created, err := svc.SaveUpload(context.Background(), profile.ID, "lesson one.wav", strings.NewReader(content))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "lesson one.wav", audio.OriginalFilename)
	assert.NotEmpty(t, audio.ContentHash)
	assert.True(t, strings.HasSuffix(audio.Path, ".wav"))

	saved, err := os.ReadFile(filepath.Join(uploadDir, audio.Path))
	require.NoError(t, err)
	assert.Equal(t, content, string(saved))

	// identical bytes for the same profile reuse the record
	again, created, err := svc.SaveUpload(context.Background(), profile.ID, "copy.wav", strings.NewReader(content))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, audio.ID, again.ID)

	data, err := st.View()
	require.NoError(t, err)
	assert.Len(t, data.Audios, 1)

	// no orphan files besides the original upload
	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveUploadSameContentDifferentProfiles(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	p1, err := svc.CreateProfile(context.Background(), "p1")
	require.NoError(t, err)
	p2, err := svc.CreateProfile(context.Background(), "p2")
	require.NoError(t, err)

	content := "same bytes"
	a1, created, err := svc.SaveUpload(context.Background(), p1.ID, "a.wav", strings.NewReader(content))
	require.NoError(t, err)
	assert.True(t, created)

	a2, created, err := svc.SaveUpload(context.Background(), p2.ID, "a.wav", strings.NewReader(content))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, a1.ID, a2.ID)
	assert.Equal(t, a1.ContentHash, a2.ContentHash)
}

func TestSaveUploadUnsupportedExtension(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	profile, err := svc.CreateProfile(context.Background(), "p")
	require.NoError(t, err)

	_, _, err = svc.SaveUpload(context.Background(), profile.ID, "notes.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestSaveUploadUnknownProfile(t *testing.T) {
	svc, _, _, uploadDir := newTestService(t)

	_, _, err := svc.SaveUpload(context.Background(), "missing", "a.wav", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrProfileNotFound)

	// rejected upload leaves no file behind
	entries, _ := os.ReadDir(uploadDir)
	assert.Empty(t, entries)
}

func TestDeleteProfileCascades(t *testing.T) {
	svc, st, cache, uploadDir := newTestService(t)
	profile, err := svc.CreateProfile(context.Background(), "p")
	require.NoError(t, err)
	keep, err := svc.CreateProfile(context.Background(), "keep")
	require.NoError(t, err)

	audio, _, err := svc.SaveUpload(context.Background(), profile.ID, "a.wav", strings.NewReader("bytes"))
	require.NoError(t, err)

	require.NoError(t, st.Update(func(d *store.Data) error {
		d.Clips = append(d.Clips,
			models.Clip{ID: "c1", ProfileID: profile.ID, AudioID: audio.ID},
			models.Clip{ID: "c2", ProfileID: profile.ID, AudioID: audio.ID},
			models.Clip{ID: "c3", ProfileID: keep.ID, AudioID: "other"},
		)
		return nil
	}))

	require.NoError(t, svc.DeleteProfile(context.Background(), profile.ID))

	data, err := st.View()
	require.NoError(t, err)
	require.Len(t, data.Profiles, 1)
	assert.Equal(t, keep.ID, data.Profiles[0].ID)
	assert.Empty(t, data.Audios)
	require.Len(t, data.Clips, 1)
	assert.Equal(t, "c3", data.Clips[0].ID)

	assert.ElementsMatch(t, []string{"c1", "c2"}, cache.invalidated)

	_, statErr := os.Stat(filepath.Join(uploadDir, audio.Path))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteProfileNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	assert.ErrorIs(t, svc.DeleteProfile(context.Background(), "missing"), ErrProfileNotFound)
}

func TestDeleteClip(t *testing.T) {
	svc, st, cache, _ := newTestService(t)
	require.NoError(t, st.Update(func(d *store.Data) error {
		d.Clips = append(d.Clips, models.Clip{ID: "c1", ProfileID: "p1"})
		return nil
	}))

	require.NoError(t, svc.DeleteClip(context.Background(), "c1"))
	assert.Equal(t, []string{"c1"}, cache.invalidated)

	assert.ErrorIs(t, svc.DeleteClip(context.Background(), "c1"), ErrClipNotFound)
}

func TestBulkDeleteClips(t *testing.T) {
	svc, st, cache, _ := newTestService(t)
	require.NoError(t, st.Update(func(d *store.Data) error {
		d.Clips = append(d.Clips,
			models.Clip{ID: "c1"},
			models.Clip{ID: "c2"},
			models.Clip{ID: "c3"},
		)
		return nil
	}))

	// duplicates and unknown ids are tolerated
	n, err := svc.BulkDeleteClips(context.Background(), []string{"c1", "c1", "c2", "missing"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []string{"c1", "c2"}, cache.invalidated)

	data, err := st.View()
	require.NoError(t, err)
	require.Len(t, data.Clips, 1)
	assert.Equal(t, "c3", data.Clips[0].ID)
}

func TestGetClipAndAudio(t *testing.T) {
	svc, st, _, _ := newTestService(t)
	require.NoError(t, st.Update(func(d *store.Data) error {
		d.Audios = append(d.Audios, models.Audio{ID: "a1", Path: "a1.wav"})
		d.Clips = append(d.Clips, models.Clip{ID: "c1", AudioID: "a1"})
		return nil
	}))

	clip, err := svc.GetClip(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "a1", clip.AudioID)

	audio, err := svc.GetAudio(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1.wav", audio.Path)

	_, err = svc.GetClip(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrClipNotFound)
	_, err = svc.GetAudio(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrAudioNotFound)
}

func TestListClipsFiltersByProfile(t *testing.T) {
	svc, st, _, _ := newTestService(t)
	base := time.Now()
	require.NoError(t, st.Update(func(d *store.Data) error {
		d.Clips = append(d.Clips,
			models.Clip{ID: "c1", ProfileID: "p1", CreatedAt: base},
			models.Clip{ID: "c2", ProfileID: "p2", CreatedAt: base.Add(time.Second)},
			models.Clip{ID: "c3", ProfileID: "p1", CreatedAt: base.Add(2 * time.Second)},
		)
		return nil
	}))

	clips, err := svc.ListClips(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, clips, 2)
	assert.Equal(t, "c3", clips[0].ID)

	all, err := svc.ListClips(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
