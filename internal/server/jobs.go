package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmartel/cv-anonymizer/internal/pipeline"
)

// Job statuses
const (
	JobQueued    = "queued"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// Job tracks one conversion from upload to download.
type Job struct {
	ID         uuid.UUID `json:"id"`
	InputName  string    `json:"input_name"`
	Style      string    `json:"style"`
	Format     string    `json:"format"`
	Status     string    `json:"status"`
	Percent    int       `json:"percent"`
	Message    string    `json:"message,omitempty"`
	Error      string    `json:"error,omitempty"`
	Hint       string    `json:"hint,omitempty"`
	OutputPath string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`

	inputPath string
}

// jobStore is an in-memory registry of conversion jobs. Jobs are small
// so nothing is evicted for the lifetime of the process.
type jobStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[uuid.UUID]*Job)}
}

// Create registers a new queued job for the given upload.
func (s *jobStore) Create(inputName, inputPath, style, format string) *Job {
	job := &Job{
		ID:        uuid.New(),
		InputName: inputName,
		Style:     style,
		Format:    format,
		Status:    JobQueued,
		CreatedAt: time.Now(),
		inputPath: inputPath,
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return job
}

// Get returns a copy of the job, or nil when unknown. The copy keeps
// readers isolated from concurrent worker updates.
func (s *jobStore) Get(id uuid.UUID) *Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil
	}
	snapshot := *job
	return &snapshot
}

// SetRunning marks the job as picked up by the worker.
func (s *jobStore) SetRunning(id uuid.UUID) {
	s.update(id, func(job *Job) {
		job.Status = JobRunning
	})
}

// SetProgress records the latest pipeline progress event.
func (s *jobStore) SetProgress(id uuid.UUID, event pipeline.ProgressEvent) {
	s.update(id, func(job *Job) {
		job.Percent = event.Percent
		job.Message = event.Message
	})
}

// SetCompleted marks the job as finished with its output file.
func (s *jobStore) SetCompleted(id uuid.UUID, outputPath string) {
	s.update(id, func(job *Job) {
		job.Status = JobCompleted
		job.Percent = 100
		job.OutputPath = outputPath
	})
}

// SetFailed marks the job as failed with the error message and an
// optional recovery hint for the caller.
func (s *jobStore) SetFailed(id uuid.UUID, errMsg, hint string) {
	s.update(id, func(job *Job) {
		job.Status = JobFailed
		job.Error = errMsg
		job.Hint = hint
	})
}

func (s *jobStore) update(id uuid.UUID, fn func(*Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, ok := s.jobs[id]; ok {
		fn(job)
	}
}
