// Package models defines the records owned by the clip store and the
// ephemeral job table.
package models

import "time"

// Profile is an owner of uploaded audio and the clips cut from it.
// Deleting a profile cascades to its audios and clips.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Audio is one uploaded source recording.
type Audio struct {
	ID               string    `json:"id"`
	ProfileID        string    `json:"profile_id"`
	OriginalFilename string    `json:"orig_filename"`
	Path             string    `json:"path"`         // filename relative to the upload directory
	ContentHash      string    `json:"content_hash"` // blake3 of the uploaded bytes
	Duration         float64   `json:"duration"`     // seconds; 0 means unknown
	CreatedAt        time.Time `json:"created_at"`
}

// Clip is one transcribed segment of an audio. The three normalized fields
// are computed once at creation from the transcript and are authoritative;
// recomputation from Transcript is a compatibility fallback for records
// imported without them.
type Clip struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profile_id"`
	AudioID    string    `json:"audio_id"`
	StartS     float64   `json:"start_s"`
	EndS       float64   `json:"end_s"`
	Transcript string    `json:"transcript"`
	Norm       string    `json:"norm"`         // basic jamo projection
	KoPronNorm string    `json:"ko_pron_norm"` // Korean pronunciation projection
	JpKanaNorm string    `json:"jp_kana_norm"` // Japanese kana projection
	CreatedAt  time.Time `json:"created_at"`
}
