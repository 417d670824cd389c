package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything clipnote needs to reach the processing API
// and the local library.
type Config struct {
	APIBaseURL        string
	APIToken          string
	LibraryDir        string
	DefaultPoll       time.Duration
	MaxPollFailures   int
	SlowWarnAfter     time.Duration
	IncludeTranscript bool
}

const (
	defaultConfigPath      = "~/.config/clipnote/config.toml"
	defaultAPIBaseURL      = "https://api.clipnote.dev"
	defaultLibraryDir      = "~/.local/share/clipnote"
	defaultPollMs          = 2000
	defaultMaxPollFailures = 5
	defaultSlowWarnSecs    = 180

	tokenEnvVar = "CLIPNOTE_API_TOKEN"
)

// Load locates and parses the clipnote config, falling back to defaults
// when missing. The API token always prefers the environment so that
// credentials can stay out of the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.LibraryDir = mustExpand(cfg.LibraryDir)
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL        string `toml:"api_base_url"`
		APIToken          string `toml:"api_token"`
		LibraryDir        string `toml:"library_dir"`
		DefaultPollMs     int    `toml:"default_poll_ms"`
		MaxPollFailures   int    `toml:"max_poll_failures"`
		SlowWarnAfterSecs int    `toml:"slow_warn_after_secs"`
		IncludeTranscript *bool  `toml:"include_transcript"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(raw.APIToken); v != "" {
		cfg.APIToken = v
	}
	if v := strings.TrimSpace(raw.LibraryDir); v != "" {
		cfg.LibraryDir = v
	}
	if raw.DefaultPollMs > 0 {
		cfg.DefaultPoll = time.Duration(raw.DefaultPollMs) * time.Millisecond
	}
	if raw.MaxPollFailures > 0 {
		cfg.MaxPollFailures = raw.MaxPollFailures
	}
	if raw.SlowWarnAfterSecs > 0 {
		cfg.SlowWarnAfter = time.Duration(raw.SlowWarnAfterSecs) * time.Second
	}
	if raw.IncludeTranscript != nil {
		cfg.IncludeTranscript = *raw.IncludeTranscript
	}

	cfg.LibraryDir = mustExpand(cfg.LibraryDir)
	applyEnv(&cfg)

	return cfg, nil
}

func defaults() Config {
	return Config{
		APIBaseURL:        defaultAPIBaseURL,
		LibraryDir:        defaultLibraryDir,
		DefaultPoll:       defaultPollMs * time.Millisecond,
		MaxPollFailures:   defaultMaxPollFailures,
		SlowWarnAfter:     defaultSlowWarnSecs * time.Second,
		IncludeTranscript: true,
	}
}

func applyEnv(cfg *Config) {
	if token := strings.TrimSpace(os.Getenv(tokenEnvVar)); token != "" {
		cfg.APIToken = token
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
