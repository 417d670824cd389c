package app

import (
	"fmt"

	"github.com/clipnote/clipnote/internal/shortform"
)

// UnsupportedURLError reports input that failed local classification.
// No network call is made for these.
type UnsupportedURLError struct {
	Raw string
}

func (e *UnsupportedURLError) Error() string {
	return fmt.Sprintf("unsupported video URL: %q", e.Raw)
}

// JobFailedError reports a job that the server drove to a terminal
// failed or unsupported status. The server's verdict is authoritative.
type JobFailedError struct {
	JobID  string
	Status shortform.ProcessingStatus
	Cause  *shortform.APIError
}

func (e *JobFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job %s %s: %s", e.JobID, e.Status, e.Cause.Message)
	}
	return fmt.Sprintf("job %s ended %s", e.JobID, e.Status)
}

func (e *JobFailedError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return nil
}

// SaveFailedError reports the distinct "processed but not saved"
// outcome: the remote work succeeded, only local persistence failed.
type SaveFailedError struct {
	JobID string
	Err   error
}

func (e *SaveFailedError) Error() string {
	return fmt.Sprintf("job %s processed but saving failed: %v", e.JobID, e.Err)
}

func (e *SaveFailedError) Unwrap() error { return e.Err }
