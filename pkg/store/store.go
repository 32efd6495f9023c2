// Package store archives computed layouts as named snapshots.
//
// Snapshots let serve deployments keep a history of layouts (for example
// one per push); the CLI commands do not read or write them. The MongoDB
// backend is the production implementation; tests use [Memory].
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/gitlanes/pkg/graphio"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one archived layout with its provenance.
type Snapshot struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name" bson:"name"`
	RepoPath  string          `json:"repo_path" bson:"repo_path"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	Layout    *graphio.Layout `json:"layout" bson:"layout"`
}

// Store is the interface snapshot backends implement.
type Store interface {
	// Save persists a snapshot, assigning ID and CreatedAt when unset.
	Save(ctx context.Context, snap *Snapshot) error

	// Get retrieves a snapshot by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// List returns snapshot metadata for a repository, newest first,
	// without the layout payloads.
	List(ctx context.Context, repoPath string) ([]Snapshot, error)

	// Delete removes a snapshot. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error

	// Close releases the backend's resources.
	Close(ctx context.Context) error
}
