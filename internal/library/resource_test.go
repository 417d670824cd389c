package library

import (
	"context"
	"encoding/json"
	"os"
	"reflect"
	"testing"

	"github.com/clipnote/clipnote/internal/platform"
	"github.com/clipnote/clipnote/internal/shortform"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{45, "0:45"},
		{59, "0:59"},
		{60, "1:00"},
		{61, "1:01"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
		{-5, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTagsFromHashtags(t *testing.T) {
	got := TagsFromHashtags([]string{"#GoLang", "golang", " #Testing ", "#", "", "#testing"})
	want := []string{"golang", "testing"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TagsFromHashtags = %v, want %v", got, want)
	}

	if got := TagsFromHashtags(nil); got != nil {
		t.Fatalf("TagsFromHashtags(nil) = %v, want nil", got)
	}
}

func TestFromJob(t *testing.T) {
	det := platform.Detect("https://youtu.be/abc123XYZ")
	job := shortform.Job{
		JobID:  "job-1",
		Status: shortform.StatusCompleted,
		Metadata: &shortform.Metadata{
			Title:            "Test Video",
			Description:      "a clip",
			Creator:          "Some Creator",
			DurationSeconds:  45,
			Hashtags:         []string{"#Go", "#testing"},
			ExtractionMethod: "captions-api",
		},
		Transcript:  "hello world",
		CompletedAt: "2026-08-29T10:05:00Z",
	}

	res := FromJob(job, det)
	if res.Title != "Test Video" || res.Type != "video" {
		t.Fatalf("resource = %#v, want title/type set", res)
	}
	if res.Duration != "0:45" {
		t.Errorf("duration = %q, want 0:45", res.Duration)
	}
	if !reflect.DeepEqual(res.Tags, []string{"go", "testing"}) {
		t.Errorf("tags = %v", res.Tags)
	}
	if res.Transcript != "hello world" {
		t.Errorf("transcript = %q", res.Transcript)
	}
	if res.Source.Platform != string(platform.YouTubeShort) {
		t.Errorf("source platform = %q", res.Source.Platform)
	}
	if res.Source.URL != det.NormalizedURL || res.Source.JobID != "job-1" {
		t.Errorf("provenance = %#v", res.Source)
	}
	if res.Source.ExtractionMethod != "captions-api" {
		t.Errorf("extraction method = %q", res.Source.ExtractionMethod)
	}
	if res.Source.ExtractedAt.IsZero() {
		t.Error("extractedAt not parsed from completedAt")
	}
}

func TestFromJob_FallbackCreatorAndTitle(t *testing.T) {
	det := platform.Detect("https://tiktok.com/@user/video/123456789")
	job := shortform.Job{
		JobID:    "job-2",
		Status:   shortform.StatusCompleted,
		Metadata: &shortform.Metadata{CreatorHandle: "@user"},
	}

	res := FromJob(job, det)
	if res.Creator != "@user" {
		t.Errorf("creator = %q, want handle fallback", res.Creator)
	}
	if res.Title != det.NormalizedURL {
		t.Errorf("title = %q, want normalized url fallback", res.Title)
	}
}

func TestFSStore_AddResource(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(dir)

	res, err := store.AddResource(context.Background(), Resource{
		Type:  "video",
		Title: "Test Video",
	})
	if err != nil {
		t.Fatalf("AddResource returned error: %v", err)
	}
	if res.ID == "" {
		t.Fatal("AddResource did not assign an ID")
	}
	if res.CreatedAt.IsZero() {
		t.Fatal("AddResource did not assign CreatedAt")
	}
	if res.Path != store.ResourcePath(res.ID) {
		t.Fatalf("Path = %q, want %q", res.Path, store.ResourcePath(res.ID))
	}

	data, err := os.ReadFile(store.ResourcePath(res.ID))
	if err != nil {
		t.Fatalf("reading resource document: %v", err)
	}
	var loaded Resource
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("decoding resource document: %v", err)
	}
	if loaded.ID != res.ID || loaded.Title != "Test Video" {
		t.Fatalf("persisted resource = %#v", loaded)
	}
}

func TestFSStore_AddResourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewFSStore(t.TempDir())
	if _, err := store.AddResource(ctx, Resource{Title: "x"}); err == nil {
		t.Fatal("AddResource with cancelled context returned nil error, want error")
	}
}
