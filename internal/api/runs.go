package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/get-hunter/hero365-app-sub011/internal/orchestrator"
)

// RunState is the lifecycle state of a generation run.
type RunState string

const (
	RunStateRunning   RunState = "running"
	RunStateCompleted RunState = "completed"
	RunStateFailed    RunState = "failed"
)

// RunStatus is the observable state of one generation run.
type RunStatus struct {
	ID         uuid.UUID             `json:"id"`
	BusinessID string                `json:"business_id"`
	State      RunState              `json:"state"`
	Progress   orchestrator.Progress `json:"progress"`
	Result     *orchestrator.Result  `json:"result,omitempty"`
	Error      string                `json:"error,omitempty"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt *time.Time            `json:"finished_at,omitempty"`
}

// RunRegistry tracks generation runs in memory so clients can poll status.
type RunRegistry struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*RunStatus
}

// NewRunRegistry creates an empty registry.
func NewRunRegistry() *RunRegistry {
	return &RunRegistry{runs: make(map[uuid.UUID]*RunStatus)}
}

// Start registers a new running run and returns its id.
func (r *RunRegistry) Start(businessID string) uuid.UUID {
	id := uuid.New()
	r.mu.Lock()
	r.runs[id] = &RunStatus{
		ID:         id,
		BusinessID: businessID,
		State:      RunStateRunning,
		StartedAt:  time.Now().UTC(),
	}
	r.mu.Unlock()
	return id
}

// Get returns a copy of the run status.
func (r *RunRegistry) Get(id uuid.UUID) (RunStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return RunStatus{}, false
	}
	return *run, true
}

// UpdateProgress records the latest progress report for a run.
func (r *RunRegistry) UpdateProgress(id uuid.UUID, p orchestrator.Progress) {
	r.mu.Lock()
	if run, ok := r.runs[id]; ok && run.State == RunStateRunning {
		run.Progress = p
	}
	r.mu.Unlock()
}

// Complete marks a run finished with its result.
func (r *RunRegistry) Complete(id uuid.UUID, result *orchestrator.Result) {
	now := time.Now().UTC()
	r.mu.Lock()
	if run, ok := r.runs[id]; ok {
		run.State = RunStateCompleted
		run.Result = result
		run.Progress = orchestrator.Progress{
			Completed: result.Total,
			Total:     result.Total,
			Percent:   100,
		}
		run.FinishedAt = &now
	}
	r.mu.Unlock()
}

// Fail marks a run failed at the run level.
func (r *RunRegistry) Fail(id uuid.UUID, err error) {
	now := time.Now().UTC()
	r.mu.Lock()
	if run, ok := r.runs[id]; ok {
		run.State = RunStateFailed
		run.Error = err.Error()
		run.FinishedAt = &now
	}
	r.mu.Unlock()
}
