// Package cache stores rendered composition artifacts.
//
// A composition is fully determined by its template set, seed, canvas size
// and palette, so rendered bytes can be reused. Keys are produced by a
// [Keyer] and values are opaque byte slices.
//
// Backends:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TTLArtifact is how long rendered artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts identifies one rendered artifact.
type ArtifactKeyOpts struct {
	Template string  `json:"template"` // empty when the template was picked at random
	Seed     uint64  `json:"seed"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Palette  string  `json:"palette,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	ArtifactKey(opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options into "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered artifact.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	// Marshalling a struct of plain fields cannot fail.
	data, _ := json.Marshal(opts)
	return "artifact:" + digest(data)
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache misses on every lookup. It backs --no-cache and the "none"
// backend.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
