// Package shortform provides the HTTP client for the remote short-form
// video processing API.
//
// # Overview
//
// The API exposes two endpoints:
//
//   - POST /short-form/process: submit a URL, receive a job handle
//   - GET  /short-form/status: query a job by jobId or normalizedUrl
//
// Both require bearer-token authorization, which is supplied at client
// construction. A client without a token cannot be built; missing
// credentials surface immediately rather than as a runtime 401.
//
// # Response envelopes
//
// Every response is a discriminated envelope: {"success": true, ...data}
// or {"success": false, "error": {...}}. The decoder never lets a
// non-success envelope masquerade as job data — error envelopes turn into
// a typed *APIError carrying the server's code, message, and retry hints
// (retryAfterMs, fallbackSuggestion).
//
// A terminally failed job is a different thing from a failed request: it
// arrives in a success envelope with status "failed" and its error
// object attached to the job itself.
//
// # Not-found semantics
//
// The status endpoint answers 404 when no job exists for a key. For
// FindJobByURL that is a normal outcome and resolves to (nil, nil): the
// recovery lookup that precedes every submission relies on being able to
// distinguish "no prior job" from "lookup broke". For FetchJob, which is
// only ever called with a jobId the server itself issued, a 404 is an
// error.
//
// # Error handling
//
// Network, HTTP, and decode failures are wrapped with context
// (fmt.Errorf + %w). Structured API errors implement the error interface
// and can be recovered with errors.As for code-specific handling.
package shortform
