package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/clipnote/clipnote/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A project-local .env may carry CLIPNOTE_API_TOKEN; absence is fine.
	_ = godotenv.Load()

	urlFlag := flag.String("url", "", "short-form video URL to ingest")
	configPath := flag.String("config", "", "override config path (optional)")
	noUI := flag.Bool("no-ui", false, "run headless with plain log output")
	reprocess := flag.Bool("reprocess", false, "resubmit even if this URL was already processed")
	noTranscript := flag.Bool("no-transcript", false, "skip transcript extraction")
	flag.Parse()

	rawURL := *urlFlag
	if rawURL == "" && flag.NArg() > 0 {
		rawURL = flag.Arg(0)
	}
	if rawURL == "" {
		fmt.Fprintln(os.Stderr, "Usage: clipnote [-config path] [-no-ui] [-reprocess] [-no-transcript] <video-url>")
		fmt.Fprintln(os.Stderr, "\nExample:")
		fmt.Fprintln(os.Stderr, "  clipnote https://youtube.com/shorts/dQw4w9WgXcQ")
		fmt.Fprintln(os.Stderr, "  clipnote -no-ui https://www.tiktok.com/@user/video/1234567890")
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.RunOptions{
		ConfigPath:   *configPath,
		URL:          rawURL,
		NoUI:         *noUI,
		Reprocess:    *reprocess,
		NoTranscript: *noTranscript,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "clipnote: %v\n", err)
		return 1
	}
	return 0
}
