package search

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/voice-search-api/internal/models"
	"github.com/killallgit/voice-search-api/internal/store"
	"github.com/killallgit/voice-search-api/pkg/phonetics"
)

func seededService(t *testing.T, clips []models.Clip) *ServiceImpl {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, s.Update(func(d *store.Data) error {
		d.Clips = append(d.Clips, clips...)
		return nil
	}))
	return NewService(s)
}

func stampedClip(id, profileID, transcript string, createdAt time.Time) models.Clip {
	return models.Clip{
		ID:         id,
		ProfileID:  profileID,
		AudioID:    "a1",
		StartS:     0,
		EndS:       1,
		Transcript: transcript,
		Norm:       phonetics.NormalizeBasic(transcript),
		KoPronNorm: phonetics.NormalizePronunciation(transcript),
		JpKanaNorm: phonetics.FoldKana(transcript),
		CreatedAt:  createdAt,
	}
}

func TestSearchBasicMode(t *testing.T) {
	base := time.Now()
	svc := seededService(t, []models.Clip{
		stampedClip("c1", "p1", "안녕하세요", base),
		stampedClip("c2", "p1", "goodbye", base.Add(time.Second)),
	})

	results, err := svc.Search(context.Background(), Params{Query: "안녕", Mode: ModeBasic, Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].ID)
}

func TestSearchEmptyQueryReturnsMostRecent(t *testing.T) {
	base := time.Now()
	svc := seededService(t, []models.Clip{
		stampedClip("old", "p1", "first", base),
		stampedClip("new", "p1", "second", base.Add(time.Minute)),
	})

	results, err := svc.Search(context.Background(), Params{Query: "", Mode: ModeBasic, Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "new", results[0].ID)
	assert.Equal(t, "old", results[1].ID)
}

func TestSearchProfileFilter(t *testing.T) {
	base := time.Now()
	svc := seededService(t, []models.Clip{
		stampedClip("c1", "p1", "안녕", base),
		stampedClip("c2", "p2", "안녕", base),
	})

	results, err := svc.Search(context.Background(), Params{Query: "안녕", ProfileID: "p2", Mode: ModeBasic, Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c2", results[0].ID)
}

func TestSearchKoSoundExcludesNonKorean(t *testing.T) {
	base := time.Now()
	svc := seededService(t, []models.Clip{
		stampedClip("ko", "p1", "국물", base),
		stampedClip("en", "p1", "gungmul", base),
	})

	results, err := svc.Search(context.Background(), Params{Query: "궁물", Mode: ModeKoSound, Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ko", results[0].ID)
}

func TestSearchKoSoundMatchesPronunciationSpelling(t *testing.T) {
	// 국물 is pronounced 궁물; a query spelled phonetically must hit it.
	svc := seededService(t, []models.Clip{
		stampedClip("c1", "p1", "국물", time.Now()),
	})

	results, err := svc.Search(context.Background(), Params{Query: "궁물", Mode: ModeKoSound, Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSearchJapaneseScriptDetection(t *testing.T) {
	base := time.Now()
	svc := seededService(t, []models.Clip{
		stampedClip("jp", "p1", "きっと", base),
	})

	for _, query := range []string{"きっと", "キット", "kitto"} {
		results, err := svc.Search(context.Background(), Params{Query: query, Mode: ModeJpSound, Limit: 10})
		require.NoError(t, err)
		require.Len(t, results, 1, "query %q", query)
		assert.Equal(t, "jp", results[0].ID, "query %q", query)
	}
}

func TestSearchJapaneseNoScriptNormalizesEmpty(t *testing.T) {
	base := time.Now()
	svc := seededService(t, []models.Clip{
		stampedClip("jp", "p1", "きっと", base),
		stampedClip("other", "p1", "hello", base.Add(time.Second)),
	})

	// digits only: no script detected, falls back to recency listing
	results, err := svc.Search(context.Background(), Params{Query: "123", Mode: ModeJpSound, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "other", results[0].ID)
}

func TestSearchLegacyClipRecomputesProjection(t *testing.T) {
	// record imported without cached projections
	legacy := models.Clip{
		ID:         "legacy",
		ProfileID:  "p1",
		Transcript: "안녕하세요",
		CreatedAt:  time.Now(),
	}
	svc := seededService(t, []models.Clip{legacy})

	results, err := svc.Search(context.Background(), Params{Query: "안녕", Mode: ModeBasic, Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = svc.Search(context.Background(), Params{Query: "안녕", Mode: ModeKoSound, Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSearchLimitAndOrdering(t *testing.T) {
	base := time.Now()
	clips := []models.Clip{
		stampedClip("exact", "p1", "안녕", base),
		stampedClip("partial", "p1", "안녕하세요 여러분", base.Add(time.Second)),
		stampedClip("newer-exact", "p1", "안녕", base.Add(2*time.Second)),
	}
	svc := seededService(t, clips)

	results, err := svc.Search(context.Background(), Params{Query: "안녕", Mode: ModeBasic, Limit: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	// score ties broken by recency
	assert.Equal(t, "newer-exact", results[0].ID)
}
