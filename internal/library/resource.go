package library

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clipnote/clipnote/internal/platform"
	"github.com/clipnote/clipnote/internal/shortform"
)

// Resource is a saved note-library entry produced from a completed job.
type Resource struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Creator     string     `json:"creator,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Transcript  string     `json:"transcript,omitempty"`
	Source      Provenance `json:"source"`
	CreatedAt   time.Time  `json:"createdAt"`

	// Path is where the store put the document; filled on save, not part
	// of the document itself.
	Path string `json:"-"`
}

// Provenance records where a resource came from and how.
type Provenance struct {
	Platform         string    `json:"platform"`
	URL              string    `json:"url"`
	JobID            string    `json:"jobId"`
	ExtractionMethod string    `json:"extractionMethod,omitempty"`
	ExtractedAt      time.Time `json:"extractedAt,omitempty"`
}

// Store is the persistence collaborator. AddResource is called exactly
// once per successfully completed job.
type Store interface {
	AddResource(ctx context.Context, res Resource) (Resource, error)
}

// FromJob maps a completed job's remote metadata into the locally-owned
// resource shape. The job must carry metadata; callers validate that
// before mapping.
func FromJob(job shortform.Job, det platform.Detection) Resource {
	meta := job.Metadata
	res := Resource{
		Type:        "video",
		Title:       meta.Title,
		Description: meta.Description,
		Creator:     creatorLabel(meta),
		Duration:    FormatDuration(meta.DurationSeconds),
		Tags:        TagsFromHashtags(meta.Hashtags),
		Transcript:  job.Transcript,
		Source: Provenance{
			Platform:         string(det.Platform),
			URL:              det.NormalizedURL,
			JobID:            job.JobID,
			ExtractionMethod: meta.ExtractionMethod,
			ExtractedAt:      job.ParsedCompletedAt(),
		},
	}
	if res.Title == "" {
		res.Title = det.NormalizedURL
	}
	return res
}

func creatorLabel(meta *shortform.Metadata) string {
	if meta.Creator != "" {
		return meta.Creator
	}
	return meta.CreatorHandle
}

// FormatDuration renders a second count as m:ss (or h:mm:ss past an
// hour). Negative input renders as 0:00.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// TagsFromHashtags converts raw hashtags into deduplicated lowercase
// tags, stripped of the leading '#'.
func TagsFromHashtags(hashtags []string) []string {
	seen := make(map[string]struct{}, len(hashtags))
	var tags []string
	for _, h := range hashtags {
		tag := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(h), "#"))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
