package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/clipnote/clipnote/internal/library"
	"github.com/clipnote/clipnote/internal/platform"
	"github.com/clipnote/clipnote/internal/shortform"
	"github.com/clipnote/clipnote/internal/state"
)

const defaultPollInterval = 2 * time.Second

// Options configure a Controller.
type Options struct {
	Client  shortform.API
	Library library.Store
	Store   *state.Store

	// DefaultPollInterval is used when the server suggests no interval.
	DefaultPollInterval time.Duration
	// MaxPollFailures is the number of consecutive poll failures
	// tolerated before the session surfaces a connectivity error.
	MaxPollFailures int
	// SlowWarnAfter raises a soft warning once a job has been processing
	// this long. Zero disables the warning. Tracking never stops for it.
	SlowWarnAfter time.Duration
	// IncludeTranscript asks the server to extract captions.
	IncludeTranscript bool
	// Reprocess allows resubmitting a URL whose prior job already
	// reached a terminal state.
	Reprocess bool
	// Logf receives background diagnostics. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// Controller sequences recovery, submission, polling, and completion for
// one ingestion session. Its one-time gates (recovery check, auto-submit,
// handled jobs) are keyed explicitly so that re-entry for the same URL or
// job cannot repeat a side effect.
type Controller struct {
	client  shortform.API
	library library.Store
	store   *state.Store

	defaultPoll       time.Duration
	maxPollFailures   int
	slowWarnAfter     time.Duration
	includeTranscript bool
	reprocess         bool
	logf              func(format string, args ...any)

	mu              sync.Mutex
	recoveryChecked map[string]bool
	autoSubmitted   map[string]bool
	handled         map[string]bool
	pollingJobs     map[string]bool
}

// NewController builds a Controller from options, applying defaults.
func NewController(opts Options) *Controller {
	poll := opts.DefaultPollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	maxFailures := opts.MaxPollFailures
	if maxFailures <= 0 {
		maxFailures = 5
	}
	logf := opts.Logf
	if logf == nil {
		logf = log.Printf
	}
	return &Controller{
		client:            opts.Client,
		library:           opts.Library,
		store:             opts.Store,
		defaultPoll:       poll,
		maxPollFailures:   maxFailures,
		slowWarnAfter:     opts.SlowWarnAfter,
		includeTranscript: opts.IncludeTranscript,
		reprocess:         opts.Reprocess,
		logf:              logf,
		recoveryChecked:   make(map[string]bool),
		autoSubmitted:     make(map[string]bool),
		handled:           make(map[string]bool),
		pollingJobs:       make(map[string]bool),
	}
}

// Ingest drives a raw URL from detection to a durable outcome: a saved
// resource, an authoritative failure, or a recovered prior result. It
// blocks until the session reaches a terminal phase or ctx is cancelled.
func (c *Controller) Ingest(ctx context.Context, rawURL string) error {
	det := platform.Detect(rawURL)
	c.store.SetDetection(det)
	if !det.Supported {
		c.store.Transition(state.PhaseFailed,
			"that does not look like a supported short-form video URL; paste a TikTok, YouTube Shorts, or Instagram Reels link")
		return &UnsupportedURLError{Raw: rawURL}
	}

	prior, err := c.recoverExisting(ctx, det.NormalizedURL)
	if err != nil {
		return err
	}

	if prior != nil {
		if !prior.Terminal() {
			// An identical job is already in flight server-side; attach
			// to it instead of creating a duplicate.
			c.store.UpdateJob(prior, nil)
			c.store.MarkResumed()
			c.store.Transition(state.PhasePolling, "processing is already underway for this video, picking it back up")
			return c.trackToCompletion(ctx, prior.JobID, prior.PollIntervalMs, det)
		}
		if !c.reprocess {
			return c.resolvePriorTerminal(prior)
		}
		// Reprocess requested: fall through to a fresh submission.
	}

	jobID, pollMs, err := c.submit(ctx, det.NormalizedURL)
	if err != nil {
		return err
	}
	return c.trackToCompletion(ctx, jobID, pollMs, det)
}

// recoverExisting performs the recovery lookup that must complete before
// any submission decision. Lookup failures other than not-found degrade
// to "no information available" so a flaky lookup cannot block the user.
func (c *Controller) recoverExisting(ctx context.Context, normalizedURL string) (*shortform.Job, error) {
	c.store.Transition(state.PhaseRecovering, "checking whether this video was already processed")

	job, err := c.client.FindJobByURL(ctx, normalizedURL)

	c.mu.Lock()
	c.recoveryChecked[normalizedURL] = true
	c.mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logf("recovery lookup for %s failed, treating as no prior job: %v", normalizedURL, err)
		return nil, nil
	}
	return job, nil
}

// resolvePriorTerminal settles the session against a job that already
// finished in an earlier session, without touching the network again.
func (c *Controller) resolvePriorTerminal(prior *shortform.Job) error {
	c.store.UpdateJob(prior, nil)
	if prior.Status == shortform.StatusCompleted {
		c.store.Transition(state.PhaseAlreadyProcessed,
			"this video was already processed and saved; use -reprocess to extract it again")
		return nil
	}
	c.store.Transition(state.PhasePriorFailure,
		terminalFailureNotice(prior)+" Use -reprocess to try again.")
	return &JobFailedError{JobID: prior.JobID, Status: prior.Status, Cause: prior.Error}
}

func (c *Controller) submit(ctx context.Context, normalizedURL string) (jobID string, pollMs int, err error) {
	c.mu.Lock()
	if c.autoSubmitted[normalizedURL] {
		c.mu.Unlock()
		return "", 0, fmt.Errorf("a submission for %s was already attempted this session", normalizedURL)
	}
	// The gate flips before the request goes out so that no retry or
	// re-entry can produce a second submission, whatever the outcome.
	c.autoSubmitted[normalizedURL] = true
	c.mu.Unlock()

	c.store.Transition(state.PhaseSubmitting, "submitting for processing")

	res, err := c.client.StartProcessing(ctx, normalizedURL, shortform.ProcessOptions{
		IncludeTranscript: c.includeTranscript,
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", 0, ctx.Err()
		}
		c.store.Transition(state.PhaseFailed, submissionFailureNotice(err))
		return "", 0, fmt.Errorf("submit %s: %w", normalizedURL, err)
	}

	c.store.UpdateJob(&shortform.Job{
		JobID:          res.JobID,
		NormalizedURL:  normalizedURL,
		Status:         res.Status,
		PollIntervalMs: res.PollIntervalMs,
	}, nil)
	c.store.Transition(state.PhasePolling, "processing")
	return res.JobID, res.PollIntervalMs, nil
}

func (c *Controller) trackToCompletion(ctx context.Context, jobID string, pollMs int, det platform.Detection) error {
	terminal, err := c.poll(ctx, jobID, c.intervalFor(pollMs))
	if err != nil {
		return err
	}
	return c.handleTerminal(ctx, terminal, det)
}

func submissionFailureNotice(err error) string {
	var apiErr *shortform.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if apiErr.RetryAfterMs > 0 {
			wait := (time.Duration(apiErr.RetryAfterMs) * time.Millisecond).Round(time.Second)
			msg += fmt.Sprintf(" (try again in %s)", wait)
		}
		if apiErr.FallbackSuggestion != "" {
			msg += ". " + apiErr.FallbackSuggestion
		}
		return msg
	}
	return "submission failed: " + err.Error() + ". Check your connection and retry."
}

func terminalFailureNotice(job *shortform.Job) string {
	if job.Error != nil {
		msg := job.Error.Message
		if job.Error.FallbackSuggestion != "" {
			msg += ". " + job.Error.FallbackSuggestion
		}
		return msg
	}
	if job.Status == shortform.StatusUnsupported {
		return "the service could not process this kind of video."
	}
	return "processing failed without further detail."
}
