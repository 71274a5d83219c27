package models

// JobStatus represents the status of a transcription job
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusDone      JobStatus = "done"
	JobStatusError     JobStatus = "error"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job is the externally visible state of one transcription job. Jobs live
// for the process lifetime only; clips merged into the store survive a
// restart, an interrupted job does not.
type Job struct {
	ID           string    `json:"job_id"`
	Status       JobStatus `json:"status"`
	Progress     int       `json:"progress"` // 0-100; below 100 until terminal done
	Message      string    `json:"message"`
	ClipsCreated int       `json:"clips_created"`
}

// IsTerminal returns true if the job has finished, failed or been cancelled.
func (j Job) IsTerminal() bool {
	return j.Status == JobStatusDone || j.Status == JobStatusError || j.Status == JobStatusCancelled
}
