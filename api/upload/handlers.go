package upload

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/killallgit/voice-search-api/api/types"
	"github.com/killallgit/voice-search-api/internal/services/library"
)

// Post handles audio uploads
// @Summary Upload an audio recording
// @Description Stores the uploaded audio under the given profile and queues a transcription job.
// @Description Re-uploading identical content for the same profile reuses the existing audio and
// @Description does not queue a new job.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param profile_id formData string true "Profile ID owning the recording"
// @Param file formData file true "Audio file (.wav, .mp3, .m4a, .flac, .ogg, .aac)"
// @Success 202 {object} types.UploadResponse "Upload accepted, transcription queued"
// @Success 200 {object} types.UploadResponse "Duplicate content, existing audio returned"
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/upload [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.PostForm("profile_id")
		if profileID == "" {
			types.SendBadRequest(c, "profile_id is required")
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			types.SendBadRequest(c, "file is required")
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			types.SendBadRequest(c, fmt.Sprintf("Failed to read upload: %v", err))
			return
		}
		defer f.Close()

		audio, created, err := deps.LibraryService.SaveUpload(c.Request.Context(), profileID, fileHeader.Filename, f)
		if err != nil {
			switch {
			case errors.Is(err, library.ErrUnsupportedExtension):
				types.SendBadRequest(c, err.Error())
			case errors.Is(err, library.ErrProfileNotFound):
				types.SendNotFound(c, "Profile not found")
			default:
				types.SendInternalError(c, fmt.Sprintf("Failed to store upload: %v", err))
			}
			return
		}

		if !created {
			types.SendSuccess(c, types.UploadResponse{
				BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Identical content already uploaded"},
				Audio:        audio,
				Duplicate:    true,
			})
			return
		}

		job, err := deps.JobService.Submit(c.Request.Context(), audio, deps.LibraryService.SourcePath(audio))
		if err != nil {
			// the audio record is kept; transcription can be retried by re-upload
			log.Error().Err(err).Str("audio_id", audio.ID).Msg("failed to queue transcription job")
			types.SendInternalError(c, fmt.Sprintf("Failed to queue transcription: %v", err))
			return
		}

		types.SendAccepted(c, types.UploadResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Transcription queued"},
			Audio:        audio,
			JobID:        job.ID,
		})
	}
}
