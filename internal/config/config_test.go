package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLIPNOTE_API_TOKEN", "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("APIBaseURL = %q, want %q", cfg.APIBaseURL, defaultAPIBaseURL)
	}
	if cfg.DefaultPoll != defaultPollMs*time.Millisecond {
		t.Fatalf("DefaultPoll = %v, want %v", cfg.DefaultPoll, defaultPollMs*time.Millisecond)
	}
	if cfg.MaxPollFailures != defaultMaxPollFailures {
		t.Fatalf("MaxPollFailures = %d, want %d", cfg.MaxPollFailures, defaultMaxPollFailures)
	}
	if !cfg.IncludeTranscript {
		t.Fatal("IncludeTranscript = false, want true by default")
	}
	if !strings.HasPrefix(cfg.LibraryDir, home) {
		t.Fatalf("LibraryDir = %q, want it under HOME %q", cfg.LibraryDir, home)
	}
}

func TestLoad_ParsesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLIPNOTE_API_TOKEN", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base_url = "  https://staging.clipnote.dev  "
api_token = "file-token"
library_dir = "~/notes"
default_poll_ms = 500
max_poll_failures = 3
slow_warn_after_secs = 60
include_transcript = false
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "https://staging.clipnote.dev" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APIToken != "file-token" {
		t.Fatalf("APIToken = %q, want file-token", cfg.APIToken)
	}
	if cfg.LibraryDir != filepath.Join(home, "notes") {
		t.Fatalf("LibraryDir = %q, want %q", cfg.LibraryDir, filepath.Join(home, "notes"))
	}
	if cfg.DefaultPoll != 500*time.Millisecond {
		t.Fatalf("DefaultPoll = %v, want 500ms", cfg.DefaultPoll)
	}
	if cfg.MaxPollFailures != 3 {
		t.Fatalf("MaxPollFailures = %d, want 3", cfg.MaxPollFailures)
	}
	if cfg.SlowWarnAfter != time.Minute {
		t.Fatalf("SlowWarnAfter = %v, want 1m", cfg.SlowWarnAfter)
	}
	if cfg.IncludeTranscript {
		t.Fatal("IncludeTranscript = true, want false")
	}
}

func TestLoad_EnvTokenWinsOverFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CLIPNOTE_API_TOKEN", "env-token")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_token = "file-token"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIToken != "env-token" {
		t.Fatalf("APIToken = %q, want env-token", cfg.APIToken)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatal("expandPath returned nil error, want error")
	}
}
