// Package cache stores computed layouts and graph exports keyed by their
// inputs.
//
// Laying out a large repository is cheap; re-running git against it is
// not. The CLI and the serve mode hash the raw snapshot buffers plus the
// layout options into a key and reuse the serialized result when nothing
// changed. Two backends are provided: a file cache for the CLI and a
// Redis cache for multi-instance serve deployments, plus a null cache to
// disable caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is the interface all storage backends implement.
// Get returns (nil, false, nil) on a miss; expiry counts as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKey derives the cache key for a computed layout from everything
// that influences it: the raw log and ref buffers, the protected-branch
// patterns, and whether the crossing optimizer ran. Identical inputs
// always produce identical layouts, so the key is safe to share between
// processes.
func LayoutKey(log, refs []byte, protectedBranches []string, optimized bool) string {
	h := sha256.New()
	h.Write(log)
	h.Write([]byte{0})
	h.Write(refs)
	h.Write([]byte{0})
	meta, _ := json.Marshal(struct {
		Protected []string `json:"protected"`
		Optimized bool     `json:"optimized"`
	}{protectedBranches, optimized})
	h.Write(meta)
	return fmt.Sprintf("layout:%s", hex.EncodeToString(h.Sum(nil)))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
