package library

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FSStore persists resources as one JSON document each under
// <baseDir>/resources/.
type FSStore struct {
	baseDir string
}

// NewFSStore creates a filesystem-backed resource store.
func NewFSStore(baseDir string) *FSStore {
	return &FSStore{baseDir: baseDir}
}

// Ensure FSStore implements Store at compile time.
var _ Store = (*FSStore)(nil)

// AddResource assigns an ID and creation time, then writes the resource
// document. The returned copy carries the assigned fields.
func (s *FSStore) AddResource(ctx context.Context, res Resource) (Resource, error) {
	if err := ctx.Err(); err != nil {
		return Resource{}, err
	}
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}

	dir := filepath.Join(s.baseDir, "resources")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Resource{}, fmt.Errorf("create resources dir: %w", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return Resource{}, fmt.Errorf("encode resource: %w", err)
	}

	path := s.ResourcePath(res.ID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Resource{}, fmt.Errorf("write resource: %w", err)
	}
	res.Path = path
	return res, nil
}

// ResourcePath returns the document path for a resource ID.
func (s *FSStore) ResourcePath(id string) string {
	return filepath.Join(s.baseDir, "resources", id+".json")
}
