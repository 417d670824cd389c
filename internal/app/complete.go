package app

import (
	"context"
	"fmt"

	"github.com/clipnote/clipnote/internal/library"
	"github.com/clipnote/clipnote/internal/platform"
	"github.com/clipnote/clipnote/internal/shortform"
	"github.com/clipnote/clipnote/internal/state"
)

// handleTerminal performs the one-time side effect for a job that
// reached a terminal status. The handled gate makes it idempotent: a
// redundant terminal observation for the same jobId cannot create a
// second resource or re-announce a failure.
func (c *Controller) handleTerminal(ctx context.Context, job *shortform.Job, det platform.Detection) error {
	c.mu.Lock()
	if c.handled[job.JobID] {
		c.mu.Unlock()
		return nil
	}
	c.handled[job.JobID] = true
	c.mu.Unlock()

	switch job.Status {
	case shortform.StatusCompleted:
		return c.saveCompleted(ctx, job, det)
	case shortform.StatusFailed, shortform.StatusUnsupported:
		c.store.Transition(state.PhaseFailed, terminalFailureNotice(job))
		return &JobFailedError{JobID: job.JobID, Status: job.Status, Cause: job.Error}
	default:
		return fmt.Errorf("terminal handler invoked with non-terminal status %q", job.Status)
	}
}

func (c *Controller) saveCompleted(ctx context.Context, job *shortform.Job, det platform.Detection) error {
	if job.Metadata == nil {
		// Metadata is present iff status is completed; its absence here
		// means the server broke its own contract.
		c.store.Transition(state.PhaseFailed,
			"the service reported success but returned no video details; retry, and report this if it keeps happening")
		return fmt.Errorf("job %s completed without metadata", job.JobID)
	}

	c.store.Transition(state.PhaseSaving, "saving to your library")

	saved, err := c.library.AddResource(ctx, library.FromJob(*job, det))
	if err != nil {
		c.store.Transition(state.PhaseSaveFailed,
			"the video was processed but could not be saved locally: "+err.Error()+
				". Running again will reuse the finished job instead of reprocessing.")
		return &SaveFailedError{JobID: job.JobID, Err: err}
	}

	location := saved.Path
	if location == "" {
		location = saved.ID
	}
	c.store.MarkSaved(location)
	c.store.Transition(state.PhaseCompleted, fmt.Sprintf("saved %q to your library", saved.Title))
	return nil
}
