package clips

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/voice-search-api/api/types"
	"github.com/killallgit/voice-search-api/internal/models"
	"github.com/killallgit/voice-search-api/internal/services/library"
)

// BulkDeleteRequest represents the request to delete several clips at once
// @Description Request body for bulk clip deletion
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// List handles clip listing
// @Summary List clips
// @Description Returns clips, newest first, optionally restricted to one profile.
// @Tags clips
// @Produce json
// @Param profile_id query string false "Restrict to one profile"
// @Success 200 {object} types.ClipsResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/clips [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		clips, err := deps.LibraryService.ListClips(c.Request.Context(), c.Query("profile_id"))
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to list clips: %v", err))
			return
		}
		types.SendSuccess(c, types.ClipsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Clips:        clips,
			Count:        len(clips),
		})
	}
}

// Delete handles single clip deletion
// @Summary Delete a clip
// @Description Removes the clip record and invalidates its cached cut audio.
// @Tags clips
// @Produce json
// @Param id path string true "Clip ID"
// @Success 200 {object} types.BaseResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/clips/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := deps.LibraryService.DeleteClip(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, library.ErrClipNotFound) {
				types.SendNotFound(c, "Clip not found")
				return
			}
			types.SendInternalError(c, fmt.Sprintf("Failed to delete clip: %v", err))
			return
		}
		types.SendSuccess(c, types.BaseResponse{Status: types.StatusOK, Message: "Clip deleted"})
	}
}

// BulkDelete handles bulk clip deletion
// @Summary Delete several clips
// @Description Removes the given clips. Duplicate and unknown ids are tolerated; the
// @Description response reports how many records were actually removed.
// @Tags clips
// @Accept json
// @Produce json
// @Param request body BulkDeleteRequest true "Clip ids to delete"
// @Success 200 {object} types.BulkDeleteResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/clips/bulk-delete [post]
func BulkDelete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BulkDeleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			types.SendBadRequest(c, err.Error())
			return
		}

		deleted, err := deps.LibraryService.BulkDeleteClips(c.Request.Context(), req.IDs)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to delete clips: %v", err))
			return
		}
		types.SendSuccess(c, types.BulkDeleteResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Deleted:      deleted,
		})
	}
}

// GetAudio serves the cut audio of one clip
// @Summary Download clip audio
// @Description Cuts the clip out of its source recording on first request and serves the
// @Description cached WAV afterwards. The download filename is derived from the transcript.
// @Tags clips
// @Produce audio/wav
// @Param id path string true "Clip ID"
// @Success 200 {file} binary "WAV audio"
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/clips/{id}/audio [get]
func GetAudio(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		clip, err := deps.LibraryService.GetClip(ctx, c.Param("id"))
		if err != nil {
			if errors.Is(err, library.ErrClipNotFound) {
				types.SendNotFound(c, "Clip not found")
				return
			}
			types.SendInternalError(c, fmt.Sprintf("Failed to load clip: %v", err))
			return
		}

		audio, err := deps.LibraryService.GetAudio(ctx, clip.AudioID)
		if err != nil {
			if errors.Is(err, library.ErrAudioNotFound) {
				types.SendNotFound(c, "Source audio not found")
				return
			}
			types.SendInternalError(c, fmt.Sprintf("Failed to load source audio: %v", err))
			return
		}

		path, err := deps.ClipCache.Ensure(ctx, clip.ID, deps.LibraryService.SourcePath(audio), clip.StartS, clip.EndS)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to cut clip audio: %v", err))
			return
		}

		filename, err := downloadFilename(ctx, deps, clip)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to resolve filename: %v", err))
			return
		}
		c.FileAttachment(path, filename)
	}
}

// downloadFilename derives the attachment name from the transcript and
// disambiguates clips sharing the same sanitized name with an " (n)" suffix,
// numbered by creation order.
func downloadFilename(ctx context.Context, deps *types.Dependencies, clip models.Clip) (string, error) {
	base := sanitizeFilename(clip.Transcript)

	all, err := deps.LibraryService.ListClips(ctx, clip.ProfileID)
	if err != nil {
		return "", err
	}

	var peers []models.Clip
	for _, other := range all {
		if sanitizeFilename(other.Transcript) == base {
			peers = append(peers, other)
		}
	}
	sort.SliceStable(peers, func(i, j int) bool {
		if !peers[i].CreatedAt.Equal(peers[j].CreatedAt) {
			return peers[i].CreatedAt.Before(peers[j].CreatedAt)
		}
		return peers[i].ID < peers[j].ID
	})

	for i, other := range peers {
		if other.ID == clip.ID && i > 0 {
			// 1-based position: the second clip with this name gets " (2)"
			return fmt.Sprintf("%s (%d).wav", base, i+1), nil
		}
	}
	return base + ".wav", nil
}

// sanitizeFilename keeps letters, digits and single spaces, truncates long
// transcripts and falls back to "clip" for empty results.
func sanitizeFilename(transcript string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range transcript {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}

	name := strings.TrimSpace(b.String())
	runes := []rune(name)
	if len(runes) > 60 {
		name = strings.TrimSpace(string(runes[:60]))
	}
	if name == "" {
		return "clip"
	}
	return name
}
