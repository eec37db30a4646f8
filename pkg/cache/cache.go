// Package cache stores rendered chart artifacts.
//
// A [Cache] is a byte store with per-entry expiration. Three backends are
// provided:
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for multiple servers
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Keys are produced by a [Keyer] so every backend sees the same key layout:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(slicesJSON), cache.ArtifactKeyOpts{Format: "svg"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
//
// Cache errors are never fatal to callers: a failed Get is treated as a miss
// and a failed Set only loses the entry.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime of a rendered artifact.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a key/value byte store.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is reported
	// as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey names an artifact rendered from a slice list, identified
	// by the hash of its encoding.
	ArtifactKey(slicesHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Donut       bool    `json:"donut"`
	OuterRadius float64 `json:"outer_radius"`
	InnerRadius float64 `json:"inner_radius"`
	Title       string  `json:"title,omitempty"`
	InnerTitle  string  `json:"inner_title,omitempty"`
	Width       string  `json:"width,omitempty"`
	Height      string  `json:"height,omitempty"`
	Links       bool    `json:"links,omitempty"`
	LinkBase    string  `json:"link_base,omitempty"`
	Interaction bool    `json:"interaction,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key options into "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(slicesHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", slicesHash, opts)
}
