package jobs

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/voice-search-api/api/types"
)

// RegisterRoutes registers job routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("/:id", Get(deps))
	group.POST("/:id/cancel", Cancel(deps))
	group.GET("/:id/ws", Watch(deps))
}
