// Package config handles loading and parsing clipnote configuration.
//
// # Overview
//
// Configuration lives in a TOML file (~/.config/clipnote/config.toml by
// default). A missing file is not an error: clipnote works out of the
// box with defaults, needing only an API token.
//
// # Fields
//
//	api_base_url = "https://api.clipnote.dev"
//	api_token = "..."                 # prefer CLIPNOTE_API_TOKEN instead
//	library_dir = "~/.local/share/clipnote"
//	default_poll_ms = 2000            # used when the server suggests none
//	max_poll_failures = 5             # consecutive failures before a connectivity error
//	slow_warn_after_secs = 180        # soft "taking a while" warning
//	include_transcript = true
//
// All fields are optional. Tilde expansion is performed on paths.
//
// # Credentials
//
// The CLIPNOTE_API_TOKEN environment variable always wins over the
// api_token file field, so tokens can stay out of dotfiles. The cmd
// layer loads a .env file first, meaning a project-local .env also
// works.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, and
// TOML parse errors. A file that simply does not exist triggers defaults
// instead.
package config
