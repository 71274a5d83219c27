package jobs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/killallgit/voice-search-api/api/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the HTTP layer already allows any origin via CORS
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	pushInterval = 250 * time.Millisecond
	writeTimeout = 5 * time.Second
)

// Watch streams job state over a websocket until the job is terminal
// @Summary Watch job progress
// @Description Upgrades to a websocket and pushes the job state whenever it changes,
// @Description closing after the terminal state has been delivered.
// @Tags jobs
// @Param id path string true "Job ID"
// @Success 101 {string} string "Switching protocols"
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/jobs/{id}/ws [get]
func Watch(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, ok := deps.JobService.Get(id); !ok {
			types.SendNotFound(c, "Job not found")
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Str("job_id", id).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		// discard client frames, but notice a closed connection
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pushInterval)
		defer ticker.Stop()

		var last types.JobResponse
		for {
			job, ok := deps.JobService.Get(id)
			if !ok {
				return
			}

			msg := types.JobResponse{
				BaseResponse: types.BaseResponse{Status: types.StatusOK},
				Job:          job,
			}
			if msg != last {
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
				last = msg
			}

			if job.IsTerminal() {
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "job finished"))
				return
			}

			select {
			case <-ticker.C:
			case <-c.Request.Context().Done():
				return
			}
		}
	}
}
