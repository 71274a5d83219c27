package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/voice-search-api/api/types"
	"github.com/killallgit/voice-search-api/internal/models"
	searchservice "github.com/killallgit/voice-search-api/internal/services/search"
	"github.com/killallgit/voice-search-api/internal/store"
	"github.com/killallgit/voice-search-api/pkg/phonetics"
)

func newTestRouter(t *testing.T, clips []models.Clip) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, st.Update(func(d *store.Data) error {
		d.Clips = append(d.Clips, clips...)
		return nil
	}))

	deps := &types.Dependencies{
		Store:         st,
		SearchService: searchservice.NewService(st),
	}
	router := gin.New()
	group := router.Group("/api/v1/search")
	RegisterRoutes(group, deps)
	return router
}

func seedClip(id, transcript string) models.Clip {
	return models.Clip{
		ID:         id,
		ProfileID:  "p1",
		AudioID:    "a1",
		Transcript: transcript,
		Norm:       phonetics.NormalizeBasic(transcript),
		KoPronNorm: phonetics.NormalizePronunciation(transcript),
		JpKanaNorm: phonetics.FoldKana(transcript),
		CreatedAt:  time.Now(),
	}
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(t, []models.Clip{
		seedClip("c1", "안녕하세요"),
		seedClip("c2", "goodbye"),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=%EC%95%88%EB%85%95&mode=basic", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "basic", resp.Mode)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "c1", resp.Results[0].ID)
}

func TestSearchEndpointUnknownModeFallsBack(t *testing.T) {
	router := newTestRouter(t, []models.Clip{seedClip("c1", "hello")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=hello&mode=bogus", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "basic", resp.Mode)
	assert.Equal(t, 1, resp.Count)
}

func TestSearchEndpointInvalidLimit(t *testing.T) {
	router := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=x&limit=abc", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
