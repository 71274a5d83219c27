package clips

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/voice-search-api/api/types"
)

// RegisterRoutes registers clip routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("", List(deps))
	group.DELETE("/:id", Delete(deps))
	group.POST("/bulk-delete", BulkDelete(deps))
	group.GET("/:id/audio", GetAudio(deps))
}
