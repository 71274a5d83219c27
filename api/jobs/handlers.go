package jobs

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/voice-search-api/api/types"
)

// Get handles job status requests
// @Summary Get job status
// @Description Returns the current state of a transcription job. Jobs live for the
// @Description process lifetime only.
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} types.JobResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/jobs/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, ok := deps.JobService.Get(c.Param("id"))
		if !ok {
			types.SendNotFound(c, "Job not found")
			return
		}
		types.SendSuccess(c, types.JobResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Job:          job,
		})
	}
}

// Cancel handles job cancellation requests
// @Summary Cancel a job
// @Description Requests cancellation of a transcription job. A queued job is cancelled
// @Description outright ("pre-start"); a running job finishes its current segment and
// @Description keeps the clips produced so far ("cooperative"); a finished job is
// @Description unaffected ("noop").
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} types.CancelResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/jobs/{id}/cancel [post]
func Cancel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		outcome, ok := deps.JobService.Cancel(id)
		if !ok {
			types.SendNotFound(c, "Job not found")
			return
		}
		types.SendSuccess(c, types.CancelResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			JobID:        id,
			Outcome:      string(outcome),
		})
	}
}
