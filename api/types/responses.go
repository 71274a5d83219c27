package types

import "github.com/killallgit/voice-search-api/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ProfilesResponse for profile lists
type ProfilesResponse struct {
	BaseResponse
	Profiles []models.Profile `json:"profiles"`
	Count    int              `json:"count"`
}

// SingleProfileResponse for a created or fetched profile
type SingleProfileResponse struct {
	BaseResponse
	Profile models.Profile `json:"profile"`
}

// UploadResponse for accepted uploads. Duplicate uploads reuse the existing
// audio and report the job id empty.
type UploadResponse struct {
	BaseResponse
	Audio     models.Audio `json:"audio"`
	JobID     string       `json:"job_id,omitempty"`
	Duplicate bool         `json:"duplicate"`
}

// SearchResponse for clip search results
type SearchResponse struct {
	BaseResponse
	Query   string        `json:"query"`
	Mode    string        `json:"mode"`
	Results []models.Clip `json:"results"`
	Count   int           `json:"count"`
}

// ClipsResponse for clip lists
type ClipsResponse struct {
	BaseResponse
	Clips []models.Clip `json:"clips"`
	Count int           `json:"count"`
}

// BulkDeleteResponse reports how many clips a bulk delete removed
type BulkDeleteResponse struct {
	BaseResponse
	Deleted int `json:"deleted"`
}

// JobResponse for job status
type JobResponse struct {
	BaseResponse
	Job models.Job `json:"job"`
}

// CancelResponse reports which cancellation path applied
type CancelResponse struct {
	BaseResponse
	JobID   string `json:"job_id"`
	Outcome string `json:"outcome"`
}
