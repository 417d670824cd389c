package shortform

import (
	"fmt"
	"time"
)

// ProcessingStatus is the server-side pipeline state of a job.
type ProcessingStatus string

const (
	StatusCreated     ProcessingStatus = "created"
	StatusDetecting   ProcessingStatus = "detecting"
	StatusMetadata    ProcessingStatus = "metadata"
	StatusTranscript  ProcessingStatus = "transcript"
	StatusCompleted   ProcessingStatus = "completed"
	StatusFailed      ProcessingStatus = "failed"
	StatusUnsupported ProcessingStatus = "unsupported"
)

// Terminal reports whether the status admits no further transitions.
func (s ProcessingStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusUnsupported:
		return true
	}
	return false
}

// ErrorCode enumerates the machine-readable failure codes the API emits.
type ErrorCode string

const (
	CodeInvalidURL          ErrorCode = "invalid_url"
	CodeUnsupportedPlatform ErrorCode = "unsupported_platform"
	CodeUnsupportedContent  ErrorCode = "unsupported_content"
	CodePrivacyBlocked      ErrorCode = "privacy_blocked"
	CodeNotFound            ErrorCode = "not_found"
	CodeQuotaExceeded       ErrorCode = "quota_exceeded"
	CodeAPIError            ErrorCode = "api_error"
	CodeRateLimited         ErrorCode = "rate_limited"
	CodeExtractionFailed    ErrorCode = "extraction_failed"
	CodeTranscriptFailed    ErrorCode = "transcript_failed"
	CodeInternalError       ErrorCode = "internal_error"
)

// APIError is the error object carried by non-success envelopes and by
// terminally failed jobs.
type APIError struct {
	Code               ErrorCode `json:"code"`
	Message            string    `json:"message"`
	Details            string    `json:"details,omitempty"`
	RetryAfterMs       int       `json:"retryAfterMs,omitempty"`
	FallbackSuggestion string    `json:"fallbackSuggestion,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Metadata is the extracted description of a processed video. Present on
// a job if and only if its status is completed.
type Metadata struct {
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Creator          string   `json:"creator,omitempty"`
	CreatorHandle    string   `json:"creatorHandle,omitempty"`
	DurationSeconds  int      `json:"duration"`
	Hashtags         []string `json:"hashtags,omitempty"`
	ThumbnailURL     string   `json:"thumbnailUrl,omitempty"`
	PublishedAt      string   `json:"publishedAt,omitempty"`
	ExtractionMethod string   `json:"extractionMethod,omitempty"`
}

// Job mirrors the status payload for one processing job. The server owns
// the canonical record; this is a read model refreshed by polling.
type Job struct {
	JobID          string           `json:"jobId"`
	NormalizedURL  string           `json:"normalizedUrl,omitempty"`
	Status         ProcessingStatus `json:"status"`
	CurrentStep    string           `json:"currentStep,omitempty"`
	Progress       int              `json:"progress,omitempty"`
	Metadata       *Metadata        `json:"metadata,omitempty"`
	Transcript     string           `json:"transcript,omitempty"`
	Error          *APIError        `json:"error,omitempty"`
	PollIntervalMs int              `json:"pollIntervalMs,omitempty"`
	CreatedAt      string           `json:"createdAt,omitempty"`
	UpdatedAt      string           `json:"updatedAt,omitempty"`
	CompletedAt    string           `json:"completedAt,omitempty"`
}

// Terminal reports whether the job has reached a final status.
func (j Job) Terminal() bool {
	return j.Status.Terminal()
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (j Job) ParsedCreatedAt() time.Time {
	return parseTime(j.CreatedAt)
}

// ParsedCompletedAt returns the parsed CompletedAt timestamp.
func (j Job) ParsedCompletedAt() time.Time {
	return parseTime(j.CompletedAt)
}

// ProcessOptions tune a processing request.
type ProcessOptions struct {
	IncludeTranscript bool
}

// ProcessResult is the acknowledgement returned when a job is accepted.
type ProcessResult struct {
	JobID           string           `json:"jobId"`
	Status          ProcessingStatus `json:"status"`
	EstimatedTimeMs int              `json:"estimatedTimeMs,omitempty"`
	PollIntervalMs  int              `json:"pollIntervalMs"`
	Message         string           `json:"message,omitempty"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
