package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/donut/pkg/cache"
	"github.com/matzehuels/donut/pkg/donut"
	"github.com/matzehuels/donut/pkg/interact"
	dio "github.com/matzehuels/donut/pkg/io"
	"github.com/matzehuels/donut/pkg/observability"
)

// Runner executes the pipeline with an artifact cache.
//
// The Runner holds no per-run state; multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached artifacts; cache.TTLArtifact when zero.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load, build and render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	if opts.DataFile != "" {
		loadStart := time.Now()
		params, err := Load(opts.DataFile, opts.Params)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		opts.Params = params
		result.Stats.LoadTime = time.Since(loadStart)
		opts.Logger.Debug("loaded chart data", "file", opts.DataFile, "duration", result.Stats.LoadTime)
	}

	buildStart := time.Now()
	c := r.Build(ctx, opts.Params, interact.Collaborators{})
	result.Chart = c
	result.Stats.Entries = len(opts.Params.Input().Entries())
	result.Stats.Slices = len(c.Slices())
	result.Stats.BuildTime = time.Since(buildStart)

	opts.Logger.Info("built slices",
		"entries", result.Stats.Entries,
		"slices", result.Stats.Slices,
		"donut", c.IsDonut())

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.SlicesHash = SlicesHash(c)
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load imports path and returns p with its data sources replaced.
func Load(path string, p donut.Params) (donut.Params, error) {
	in, err := dio.ImportFile(path)
	if err != nil {
		return p, err
	}
	p.Data, p.Items = in.Data, in.Items
	if p.Labels == nil {
		p.Labels = in.Labels
	}
	return p, nil
}

// Build lays out a chart and reports it to the pipeline hooks.
func (r *Runner) Build(ctx context.Context, p donut.Params, collab interact.Collaborators) *donut.Chart {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(p.Input().Entries()))
	start := time.Now()
	c := donut.New(p, collab)
	hooks.OnBuildComplete(ctx, len(c.Slices()), time.Since(start), nil)
	return c
}

// RenderWithCacheInfo renders c in every requested format and reports
// whether all artifacts came from the cache. Charts with a visible tooltip
// are rendered without the cache since their markup depends on hover state.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *donut.Chart, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, hit, err := r.render(ctx, c, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, c *donut.Chart, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, c *donut.Chart, opts Options) (map[string][]byte, bool, error) {
	if c.State().Tooltip().Visible {
		artifacts, err := Render(c, opts)
		return artifacts, false, err
	}

	slicesHash := SlicesHash(c)
	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(slicesHash, opts.ArtifactKeyOpts(c, format))
		if !opts.Refresh {
			if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
				cacheHooks.OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			} else if err != nil {
				opts.Logger.Debug("cache read failed", "format", format, "err", err)
			}
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
		allHit = false

		data, err := RenderFormat(c, format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Debug("cache write failed", "format", format, "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, allHit, nil
}

// SlicesHash returns the content hash of the chart's slice list.
func SlicesHash(c *donut.Chart) string {
	data, _ := json.Marshal(c.Slices())
	return cache.Hash(data)
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
