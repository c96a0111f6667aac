package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vijaymanbajracharya/stratcol/pkg/cache"
	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/layout"
	"github.com/vijaymanbajracharya/stratcol/pkg/observability"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Mapper *chrono.Mapper
	Logger *log.Logger
	// TTL overrides the cache lifetime of layouts and artifacts when set.
	TTL time.Duration

	referenceHash string
}

// NewRunner wires a runner. A nil cache disables caching, a nil keyer uses
// DefaultKeyer and a nil mapper uses the built-in reference table.
func NewRunner(c cache.Cache, keyer cache.Keyer, m *chrono.Mapper, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if m == nil {
		m = chrono.NewMapper(chrono.Default())
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:         c,
		Keyer:         keyer,
		Mapper:        m,
		Logger:        logger,
		referenceHash: tableHash(m.Table()),
	}
}

// tableHash identifies a reference table's content for cache keys.
func tableHash(t *chrono.Table) string {
	var levels [][]chrono.Unit
	for _, l := range chrono.Levels {
		levels = append(levels, t.Units(l))
	}
	data, _ := json.Marshal(levels)
	return cache.Hash(data)
}

// ExecuteFile loads path and runs the remaining stages.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	start := time.Now()
	layers, meta, err := Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(start)
	r.Logger.Info("loaded column", "path", path, "layers", len(layers), "duration", loadTime)

	res, err := r.Execute(ctx, layers, opts)
	if err != nil {
		return nil, err
	}
	res.Metadata = meta
	res.Stats.LoadTime = loadTime
	return res, nil
}

// Execute runs layout and render for the given layers.
func (r *Runner) Execute(ctx context.Context, layers []strat.Layer, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	res := &Result{
		Layers:     layers,
		ColumnHash: ColumnHash(layers),
	}
	res.Stats.Layers = len(layers)

	layoutStart := time.Now()
	model, hit, err := r.ComputeLayoutWithCacheInfo(ctx, layers, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Model = model
	res.Stats.LayoutTime = time.Since(layoutStart)
	res.Stats.Blocks = len(model.Blocks)
	res.Stats.Unconformities = len(model.Unconformities)
	res.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"mode", opts.Mode,
		"blocks", len(model.Blocks),
		"unconformities", len(model.Unconformities),
		"cached", hit,
		"duration", res.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, model, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(renderStart)
	res.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// ComputeLayoutWithCacheInfo computes the model, consulting the cache
// first unless opts.Refresh is set. The bool reports a cache hit.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, layers []strat.Layer, opts Options) (layout.Model, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Model{}, false, err
	}
	hooks := observability.Cache()

	key := r.Keyer.LayoutKey(ColumnHash(layers), opts.LayoutKeyOpts(r.referenceHash))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached layout.Model
			if err := json.Unmarshal(data, &cached); err == nil {
				hooks.OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			opts.Logger.Debug("discarding unreadable cached layout", "key", key)
		} else if err != nil {
			opts.Logger.Warn("layout cache read failed", "err", err)
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	model, err := ComputeLayout(ctx, layers, r.Mapper, opts)
	if err != nil {
		return layout.Model{}, false, err
	}

	if data, err := json.Marshal(model); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLLayout)); err != nil {
			opts.Logger.Warn("layout cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, "layout", len(data))
		}
	}
	return model, false, nil
}

// ComputeLayout is ComputeLayoutWithCacheInfo without the hit flag.
func (r *Runner) ComputeLayout(ctx context.Context, layers []strat.Layer, opts Options) (layout.Model, error) {
	m, _, err := r.ComputeLayoutWithCacheInfo(ctx, layers, opts)
	return m, err
}

// RenderWithCacheInfo renders every requested format. The bool is true
// only when all formats came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m layout.Model, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	modelData, err := json.Marshal(m)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	modelHash := cache.Hash(modelData)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		hooks.OnCacheMiss(ctx, "artifact")
	}

	rendered, err := Render(ctx, m, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(modelHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err == nil {
			hooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, m layout.Model, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
