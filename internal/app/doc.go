// Package app orchestrates a short-form video ingestion session.
//
// # Overview
//
// The Controller is the single owner of session state. For one URL it
// sequences:
//
//	detect -> recover -> (resume | submit) -> poll -> complete
//
// publishing progress to a state.Store that the UI reads, and performing
// exactly one persistent side effect (saving the resource) per job.
//
// # State machine
//
//	idle
//	  └─ recovering           lookup by normalized URL
//	       ├─ polling          prior non-terminal job found (resumed)
//	       ├─ already-processed prior completed job found
//	       ├─ prior-failure     prior failed/unsupported job found
//	       └─ submitting        nothing found, or lookup failed
//	            └─ polling
//	                 ├─ saving -> completed | save-failed
//	                 ├─ failed
//	                 └─ connectivity-lost
//
// # Correctness gates
//
// Three explicit per-key gates replace anything incidental to rendering
// or call order:
//
//   - recoveryChecked: the recovery lookup runs to completion (found,
//     not-found, or degraded) before any submission decision for that
//     URL. This is what prevents duplicate job creation after a reload.
//   - autoSubmitted: flips before the submit request goes out, so at
//     most one submission per normalized URL happens per session no
//     matter how often the flow is re-entered or retried.
//   - handled: the terminal side effect fires once per jobId. A second
//     terminal observation for the same job is a no-op.
//
// # Polling
//
// The poll loop is pull-based and strictly sequential, so a single
// request per job is outstanding at any time. The wait before each poll
// is the pollIntervalMs suggested by the previous response (capped at
// 30s), letting the server tune cadence without a client change; the
// configured default applies when the server is silent. Transient poll
// failures are tolerated up to a bound because the job keeps progressing
// server-side; only after the bound is the session declared out of
// contact, without marking the job itself failed.
//
// # Error categories
//
// Fatal to the session (returned from Ingest): unsupported input,
// submission rejection, terminal job failure, save failure after
// success, connectivity loss. Each carries a user-facing notice with a
// concrete next action. Recoverable (logged, flow continues): recovery
// lookup failures, transient poll failures.
package app
