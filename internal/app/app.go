package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/clipnote/clipnote/internal/config"
	"github.com/clipnote/clipnote/internal/library"
	"github.com/clipnote/clipnote/internal/shortform"
	"github.com/clipnote/clipnote/internal/state"
	"github.com/clipnote/clipnote/internal/ui"
)

// RunOptions configure one clipnote invocation.
type RunOptions struct {
	ConfigPath   string
	URL          string
	NoUI         bool
	Reprocess    bool
	NoTranscript bool
}

// Run ingests one URL, with or without the TUI, until done or cancelled.
func Run(ctx context.Context, opts RunOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := shortform.NewClient(cfg.APIBaseURL, cfg.APIToken)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := &state.Store{}
	ctrl := NewController(Options{
		Client:              client,
		Library:             library.NewFSStore(cfg.LibraryDir),
		Store:               store,
		DefaultPollInterval: cfg.DefaultPoll,
		MaxPollFailures:     cfg.MaxPollFailures,
		SlowWarnAfter:       cfg.SlowWarnAfter,
		IncludeTranscript:   cfg.IncludeTranscript && !opts.NoTranscript,
		Reprocess:           opts.Reprocess,
	})

	if opts.NoUI {
		ingestErr := ctrl.Ingest(ctx, opts.URL)
		printSummary(os.Stdout, store.Snapshot())
		return ingestErr
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- ctrl.Ingest(ctx, opts.URL) }()

	uiErr := ui.Run(ui.Options{Context: ctx, Store: store})

	// Quitting the UI stops observing; the remote job keeps running and
	// a later invocation will recover it by URL.
	cancel()
	ingestErr := <-done

	if uiErr != nil {
		return uiErr
	}
	if ingestErr != nil && !errors.Is(ingestErr, context.Canceled) {
		return ingestErr
	}
	return nil
}

// printSummary reports the headless outcome in scraper-CLI style.
func printSummary(w io.Writer, snap state.Snapshot) {
	fmt.Fprintln(w, "\n=== Ingestion Summary ===")
	if snap.Detection.NormalizedURL != "" {
		fmt.Fprintf(w, "URL:      %s\n", snap.Detection.NormalizedURL)
		fmt.Fprintf(w, "Platform: %s\n", snap.Detection.Platform)
	}
	if snap.HasJob {
		fmt.Fprintf(w, "Job:      %s (%s)\n", snap.Job.JobID, snap.Job.Status)
	}
	fmt.Fprintf(w, "Outcome:  %s\n", snap.Phase)
	if snap.Notice != "" {
		fmt.Fprintf(w, "Note:     %s\n", snap.Notice)
	}
	if snap.SavedPath != "" {
		fmt.Fprintf(w, "Saved:    %s\n", snap.SavedPath)
	}
}
