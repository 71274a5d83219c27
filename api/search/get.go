package search

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/voice-search-api/api/types"
	searchservice "github.com/killallgit/voice-search-api/internal/services/search"
)

// Get handles clip search requests
// @Summary Search clips by text or pronunciation
// @Description Ranks clips against the query. Mode "basic" compares literal jamo and
// @Description alphanumerics, "ko_sound" compares Korean pronunciation, and "jp_sound"
// @Description compares Japanese kana readings with automatic script detection of the query.
// @Tags search
// @Produce json
// @Param q query string false "Search query"
// @Param profile_id query string false "Restrict results to one profile"
// @Param mode query string false "basic | ko_sound | jp_sound" default(basic)
// @Param limit query int false "Maximum results" default(50)
// @Success 200 {object} types.SearchResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/search [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				types.SendBadRequest(c, "limit must be a non-negative integer")
				return
			}
			limit = n
		}

		mode := searchservice.ParseMode(c.DefaultQuery("mode", "basic"))
		params := searchservice.Params{
			Query:     c.Query("q"),
			ProfileID: c.Query("profile_id"),
			Mode:      mode,
			Limit:     limit,
		}

		results, err := deps.SearchService.Search(c.Request.Context(), params)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Search failed: %v", err))
			return
		}

		types.SendSuccess(c, types.SearchResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Query:        params.Query,
			Mode:         string(mode),
			Results:      results,
			Count:        len(results),
		})
	}
}
