package app

import (
	"context"
	"fmt"
	"time"

	"github.com/clipnote/clipnote/internal/shortform"
	"github.com/clipnote/clipnote/internal/state"
)

// maxPollInterval caps how far a server-suggested backoff can stretch a
// single wait. The server value is otherwise taken as-is.
const maxPollInterval = 30 * time.Second

// intervalFor converts a server-suggested pollIntervalMs into the delay
// before the next poll.
func (c *Controller) intervalFor(ms int) time.Duration {
	if ms <= 0 {
		return c.defaultPoll
	}
	d := time.Duration(ms) * time.Millisecond
	if d > maxPollInterval {
		return maxPollInterval
	}
	return d
}

// poll drives a job's status forward until it reaches a terminal value.
// The loop is strictly sequential: poll N+1 is scheduled only after poll
// N's response has been processed, so there is never more than one
// outstanding request per job. The delay before each poll comes from the
// previous response's pollIntervalMs.
//
// A bounded number of consecutive failures is tolerated, because the job
// keeps progressing server-side regardless of whether we can see it.
func (c *Controller) poll(ctx context.Context, jobID string, interval time.Duration) (*shortform.Job, error) {
	c.mu.Lock()
	if c.pollingJobs[jobID] {
		c.mu.Unlock()
		return nil, fmt.Errorf("already polling job %s", jobID)
	}
	c.pollingJobs[jobID] = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pollingJobs, jobID)
		c.mu.Unlock()
	}()

	timer := time.NewTimer(interval)
	defer timer.Stop()

	start := time.Now()
	failures := 0
	slowWarned := false

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		job, err := c.client.FetchJob(ctx, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failures++
			c.store.UpdateJob(nil, err)
			c.logf("status poll for %s failed (%d/%d): %v", jobID, failures, c.maxPollFailures, err)
			if failures >= c.maxPollFailures {
				c.store.Transition(state.PhaseConnectivityLost,
					"lost contact with the processing service; the job may still finish server-side, run clipnote again later to pick up the result")
				return nil, fmt.Errorf("poll job %s: %d consecutive failures: %w", jobID, failures, err)
			}
			// Keep the last known cadence while the connection recovers.
			timer.Reset(interval)
			continue
		}

		failures = 0
		c.store.UpdateJob(job, nil)

		if job.Terminal() {
			return job, nil
		}

		if !slowWarned && c.slowWarnAfter > 0 && time.Since(start) >= c.slowWarnAfter {
			slowWarned = true
			c.store.MarkSlow()
			c.logf("job %s still processing after %s", jobID, c.slowWarnAfter)
		}

		interval = c.intervalFor(job.PollIntervalMs)
		timer.Reset(interval)
	}
}
