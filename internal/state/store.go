package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/clipnote/clipnote/internal/platform"
	"github.com/clipnote/clipnote/internal/shortform"
)

// Phase is the controller's position in the ingestion state machine.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseRecovering       Phase = "recovering"
	PhaseSubmitting       Phase = "submitting"
	PhasePolling          Phase = "polling"
	PhaseAlreadyProcessed Phase = "already-processed"
	PhasePriorFailure     Phase = "prior-failure"
	PhaseSaving           Phase = "saving"
	PhaseCompleted        Phase = "completed"
	PhaseFailed           Phase = "failed"
	PhaseSaveFailed       Phase = "save-failed"
	PhaseConnectivityLost Phase = "connectivity-lost"
)

// Done reports whether the phase ends the session for the current URL.
func (p Phase) Done() bool {
	switch p {
	case PhaseAlreadyProcessed, PhasePriorFailure, PhaseCompleted,
		PhaseFailed, PhaseSaveFailed, PhaseConnectivityLost:
		return true
	}
	return false
}

// Snapshot represents the latest orchestration state available to the UI.
type Snapshot struct {
	Phase               Phase
	Detection           platform.Detection
	Job                 shortform.Job
	HasJob              bool
	Resumed             bool
	SlowWarning         bool
	ConsecutiveFailures int
	Notice              string
	SavedPath           string
	LastError           error
	LastUpdated         time.Time
}

// Store coordinates concurrent updates between the controller goroutine
// and the UI. The zero value is ready to use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetDetection records the classified input URL.
func (s *Store) SetDetection(det platform.Detection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Detection = det
	s.snapshot.LastUpdated = time.Now()
}

// Transition moves the state machine to a new phase with an optional
// user-facing notice.
func (s *Store) Transition(phase Phase, notice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Phase = phase
	s.snapshot.Notice = notice
	s.snapshot.LastUpdated = time.Now()
}

// UpdateJob replaces the cached job read model. A non-nil err keeps the
// previous job data and bumps the consecutive-failure counter so the UI
// can show stale-but-useful progress during a network blip.
func (s *Store) UpdateJob(job *shortform.Job, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		s.snapshot.LastUpdated = time.Now()
		return
	}
	if job != nil {
		s.snapshot.Job = *job
		s.snapshot.HasJob = true
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.LastUpdated = time.Now()
}

// MarkResumed flags that the current job was recovered rather than
// freshly submitted.
func (s *Store) MarkResumed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Resumed = true
	s.snapshot.LastUpdated = time.Now()
}

// MarkSlow raises the soft "taking longer than expected" warning.
// Tracking continues; this is informational only.
func (s *Store) MarkSlow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.SlowWarning = true
	s.snapshot.LastUpdated = time.Now()
}

// MarkSaved records where the completed resource landed.
func (s *Store) MarkSaved(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.SavedPath = path
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
