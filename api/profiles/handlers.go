package profiles

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/voice-search-api/api/types"
	"github.com/killallgit/voice-search-api/internal/services/library"
)

// CreateProfileRequest represents the request to create a profile
// @Description Request body for creating a new speaker profile
type CreateProfileRequest struct {
	Name string `json:"name" binding:"required" example:"Tutor A"`
}

// List handles profile listing
// @Summary List speaker profiles
// @Description Returns all speaker profiles, newest first.
// @Tags profiles
// @Produce json
// @Success 200 {object} types.ProfilesResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/profiles [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		profiles, err := deps.LibraryService.ListProfiles(c.Request.Context())
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to list profiles: %v", err))
			return
		}
		types.SendSuccess(c, types.ProfilesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Profiles:     profiles,
			Count:        len(profiles),
		})
	}
}

// Create handles profile creation
// @Summary Create a speaker profile
// @Description Creates a profile that owns uploaded audio and clips. The name must not be blank.
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body CreateProfileRequest true "Profile name"
// @Success 201 {object} types.SingleProfileResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/profiles [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			types.SendBadRequest(c, err.Error())
			return
		}

		profile, err := deps.LibraryService.CreateProfile(c.Request.Context(), req.Name)
		if err != nil {
			if errors.Is(err, library.ErrBlankProfileName) {
				types.SendBadRequest(c, err.Error())
				return
			}
			types.SendInternalError(c, fmt.Sprintf("Failed to create profile: %v", err))
			return
		}

		types.SendCreated(c, types.SingleProfileResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Profile:      profile,
		})
	}
}

// Delete handles profile deletion
// @Summary Delete a speaker profile
// @Description Deletes the profile together with its uploaded audio, clips and cached cut files.
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} types.BaseResponse
// @Failure 404 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /api/v1/profiles/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		err := deps.LibraryService.DeleteProfile(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, library.ErrProfileNotFound) {
				types.SendNotFound(c, "Profile not found")
				return
			}
			types.SendInternalError(c, fmt.Sprintf("Failed to delete profile: %v", err))
			return
		}
		types.SendSuccess(c, types.BaseResponse{Status: types.StatusOK, Message: "Profile deleted"})
	}
}
