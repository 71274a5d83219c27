package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/voice-search-api/internal/models"
)

func TestRegistryCreateAndGet(t *testing.T) {
	reg := NewRegistry()
	job := reg.Create()

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, models.JobStatusQueued, job.Status)

	got, ok := reg.Get(job.ID)
	require.True(t, ok)
	assert.Equal(t, job, got)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistryStartGate(t *testing.T) {
	reg := NewRegistry()
	job := reg.Create()

	token, ok := reg.TryStart(job.ID)
	require.True(t, ok)
	assert.False(t, token.Cancelled())

	// second start loses the gate
	_, ok = reg.TryStart(job.ID)
	assert.False(t, ok)
}

func TestRegistryCancelPreStart(t *testing.T) {
	reg := NewRegistry()
	job := reg.Create()

	outcome, ok := reg.Cancel(job.ID)
	require.True(t, ok)
	assert.Equal(t, CancelPreStart, outcome)

	got, _ := reg.Get(job.ID)
	assert.Equal(t, models.JobStatusCancelled, got.Status)
	assert.Equal(t, 0, got.ClipsCreated)

	// the gate is closed: execution never starts
	_, ok = reg.TryStart(job.ID)
	assert.False(t, ok)
}

func TestRegistryCancelCooperative(t *testing.T) {
	reg := NewRegistry()
	job := reg.Create()

	token, ok := reg.TryStart(job.ID)
	require.True(t, ok)

	outcome, ok := reg.Cancel(job.ID)
	require.True(t, ok)
	assert.Equal(t, CancelCooperative, outcome)
	assert.True(t, token.Cancelled())

	// still running until the loop observes the token
	got, _ := reg.Get(job.ID)
	assert.Equal(t, models.JobStatusRunning, got.Status)
}

func TestRegistryCancelTerminalIsNoop(t *testing.T) {
	reg := NewRegistry()
	job := reg.Create()
	reg.Finalize(job.ID, models.JobStatusError, 0, "boom")

	outcome, ok := reg.Cancel(job.ID)
	require.True(t, ok)
	assert.Equal(t, CancelNoop, outcome)

	got, _ := reg.Get(job.ID)
	assert.Equal(t, models.JobStatusError, got.Status)
}

func TestRegistryCancelUnknown(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Cancel("missing")
	assert.False(t, ok)
}

func TestRegistryProgressMonotonicAndCapped(t *testing.T) {
	reg := NewRegistry()
	job := reg.Create()
	_, ok := reg.TryStart(job.ID)
	require.True(t, ok)

	reg.SetProgress(job.ID, 40)
	reg.SetProgress(job.ID, 30) // regression ignored
	got, _ := reg.Get(job.ID)
	assert.Equal(t, 40, got.Progress)

	reg.SetProgress(job.ID, 250)
	got, _ = reg.Get(job.ID)
	assert.Equal(t, 99, got.Progress)

	reg.Finalize(job.ID, models.JobStatusDone, 3, "")
	got, _ = reg.Get(job.ID)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, 3, got.ClipsCreated)
}

func TestRegistryFinalizeOnlyOnce(t *testing.T) {
	reg := NewRegistry()
	job := reg.Create()
	_, ok := reg.TryStart(job.ID)
	require.True(t, ok)

	reg.Finalize(job.ID, models.JobStatusCancelled, 2, "cancelled")
	reg.Finalize(job.ID, models.JobStatusDone, 9, "")

	got, _ := reg.Get(job.ID)
	assert.Equal(t, models.JobStatusCancelled, got.Status)
	assert.Equal(t, 2, got.ClipsCreated)
}
