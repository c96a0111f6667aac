// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a plain byte store with per-entry TTL. Three backends are
// provided:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: never stores anything
//
// Keys come from a [Keyer] so that every caller derives the same key for the
// same column and options. [NewScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Entry lifetimes used by the pipeline.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value byte store. A miss is reported through the bool, not
// as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// LayoutKeyOpts holds every layout option that changes the computed model.
type LayoutKeyOpts struct {
	Mode          string   `json:"mode"`
	Height        float64  `json:"height"`
	ShowGaps      bool     `json:"show_gaps"`
	WindowFrom    float64  `json:"window_from"`
	WindowTo      float64  `json:"window_to"`
	Levels        []string `json:"levels"`
	Environment   bool     `json:"environment"`
	MarkerSpacing float64  `json:"marker_spacing"`
	MinHeight     float64  `json:"min_height"`
	// ReferenceHash identifies the chronostratigraphic table in use.
	ReferenceHash string `json:"reference_hash"`
}

// ArtifactKeyOpts holds the render options for one output format.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Title  string  `json:"title"`
	Scale  float64 `json:"scale"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(columnHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>" over the column hash and options.
func (DefaultKeyer) LayoutKey(columnHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", columnHash, opts)
}

// ArtifactKey returns "artifact:<sha256>" over the layout hash and options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
