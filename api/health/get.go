package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/voice-search-api/api/types"
)

// Get handles health check requests
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		if deps != nil && deps.Store != nil {
			response["store"] = getStoreStatus(deps)
		} else {
			response["store"] = gin.H{"status": "not configured"}
		}

		c.JSON(http.StatusOK, response)
	}
}

// getStoreStatus reports whether the clip store snapshot is readable
func getStoreStatus(deps *types.Dependencies) gin.H {
	data, err := deps.Store.View()
	if err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}
	return gin.H{
		"status":   "healthy",
		"profiles": len(data.Profiles),
		"audios":   len(data.Audios),
		"clips":    len(data.Clips),
	}
}
