package jobs

import (
	"sync"

	"github.com/google/uuid"

	"github.com/killallgit/voice-search-api/internal/models"
)

// CancelOutcome reports which path a cancellation took.
type CancelOutcome string

const (
	// CancelPreStart means the job was still queued and never ran.
	CancelPreStart CancelOutcome = "pre-start"
	// CancelCooperative means the running job was asked to stop and will
	// finish at the next segment boundary.
	CancelCooperative CancelOutcome = "cooperative"
	// CancelNoop means the job had already reached a terminal state.
	CancelNoop CancelOutcome = "noop"
)

// Token is a per-job cooperative cancellation flag. The execution loop polls
// it between segments; it never interrupts work in flight.
type Token struct {
	once sync.Once
	c    chan struct{}
}

func newToken() *Token {
	return &Token{c: make(chan struct{})}
}

// Cancel trips the token. Safe to call more than once.
func (t *Token) Cancel() {
	t.once.Do(func() { close(t.c) })
}

// Cancelled reports whether the token has been tripped.
func (t *Token) Cancelled() bool {
	select {
	case <-t.c:
		return true
	default:
		return false
	}
}

// jobState pairs the visible job record with its cancellation token.
type jobState struct {
	job   models.Job
	token *Token
}

// Registry owns the in-memory job table. All access goes through its single
// mutex; accessors return copies so handles never leak. Jobs do not survive
// a restart.
type Registry struct {
	mu   sync.Mutex
	jobs map[string]*jobState
}

// NewRegistry creates an empty job table.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*jobState)}
}

// Create registers a new queued job and returns its snapshot.
func (r *Registry) Create() models.Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	job := models.Job{
		ID:     uuid.New().String(),
		Status: models.JobStatusQueued,
	}
	r.jobs[job.ID] = &jobState{job: job, token: newToken()}
	return job
}

// Get returns a snapshot of the job, if known.
func (r *Registry) Get(id string) (models.Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.jobs[id]
	if !ok {
		return models.Job{}, false
	}
	return st.job, true
}

// TryStart is the start gate: it moves the job from queued to running and
// hands the execution loop its token. A job cancelled before the gate never
// starts and TryStart returns false.
func (r *Registry) TryStart(id string) (*Token, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.jobs[id]
	if !ok || st.job.Status != models.JobStatusQueued {
		return nil, false
	}
	st.job.Status = models.JobStatusRunning
	return st.token, true
}

// Cancel requests cancellation and reports which path applied. Queued jobs
// flip straight to cancelled; running jobs get their token tripped and stay
// running until the execution loop observes it.
func (r *Registry) Cancel(id string) (CancelOutcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.jobs[id]
	if !ok {
		return "", false
	}

	switch st.job.Status {
	case models.JobStatusQueued:
		st.job.Status = models.JobStatusCancelled
		st.job.Message = "cancelled before start"
		st.token.Cancel()
		return CancelPreStart, true
	case models.JobStatusRunning:
		st.token.Cancel()
		return CancelCooperative, true
	default:
		return CancelNoop, true
	}
}

// SetProgress updates the visible progress percentage of a running job.
// Progress never regresses and is capped at 99 until the job is done.
func (r *Registry) SetProgress(id string, progress int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.jobs[id]
	if !ok || st.job.Status != models.JobStatusRunning {
		return
	}
	if progress > 99 {
		progress = 99
	}
	if progress > st.job.Progress {
		st.job.Progress = progress
	}
}

// Finalize moves the job to a terminal state. Done jobs report 100 percent.
func (r *Registry) Finalize(id string, status models.JobStatus, clipsCreated int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.jobs[id]
	if !ok || st.job.IsTerminal() {
		return
	}
	st.job.Status = status
	st.job.ClipsCreated = clipsCreated
	st.job.Message = message
	if status == models.JobStatusDone {
		st.job.Progress = 100
	}
}
