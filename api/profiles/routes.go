package profiles

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/voice-search-api/api/types"
)

// RegisterRoutes registers profile routes
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("", List(deps))
	group.POST("", Create(deps))
	group.DELETE("/:id", Delete(deps))
}
