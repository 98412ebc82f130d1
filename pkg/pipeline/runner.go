package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/kozu/pkg/cache"
	"github.com/matzehuels/kozu/pkg/composition"
	"github.com/matzehuels/kozu/pkg/errors"
	"github.com/matzehuels/kozu/pkg/observability"
	"github.com/matzehuels/kozu/pkg/surface"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Selector *composition.Selector

	// Style fingerprints the palette and sampler settings behind Selector.
	// It is part of every cache key so a palette change never serves stale
	// artifacts.
	Style string
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The runner starts with the default templates and palette.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Selector: composition.DefaultSelector(composition.DefaultPalette),
		Style:    "default",
	}
}

// Execute runs the generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.CacheInfo.Cacheable = opts.Cacheable()

	seed := opts.Seed
	if seed == 0 {
		seed = NewSeed()
	}
	result.Seed = seed

	// Stage 1: Generate
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	genStart := time.Now()
	c, err := r.Generate(ctx, opts, seed)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Composition = c
	result.Template = c.Template
	result.Stats.ShapeCount = len(c.Shapes)
	result.Stats.GenerateTime = time.Since(genStart)

	opts.Logger.Debug("generated composition",
		"template", c.Template,
		"seed", seed,
		"shapes", len(c.Shapes),
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, c, seed, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate plans a composition for seed on a recording surface. An empty
// template picks one uniformly at random.
func (r *Runner) Generate(ctx context.Context, opts Options, seed uint64) (*composition.Composition, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Generate()
	name := opts.Template
	if name == "" {
		name = "random"
	}
	hooks.OnGenerateStart(ctx, name, seed)

	start := time.Now()
	rec := surface.NewRecorder(opts.Width, opts.Height)
	rnd := NewRand(seed)

	var (
		c   *composition.Composition
		err error
	)
	if opts.Template == "" {
		c, err = r.Selector.GenerateRandom(rec, rnd)
	} else {
		c, err = r.Selector.Generate(opts.Template, rec, rnd)
	}

	shapes := 0
	if c != nil {
		shapes = len(c.Shapes)
		name = c.Template
	}
	hooks.OnGenerateComplete(ctx, name, shapes, time.Since(start), err)
	return c, err
}

// RenderWithCacheInfo renders every requested format, serving artifacts from
// the cache when the run is cacheable. It reports whether all formats were
// cache hits. Cache failures never fail the run.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *composition.Composition, seed uint64, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheable := opts.Cacheable()
	cacheHooks := observability.Cache()
	genHooks := observability.Generate()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true

	for _, format := range opts.Formats {
		var key string
		if cacheable {
			key = r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(seed, format, r.Style))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Debug("cache get failed", "format", format, "error", err)
			}
			if err == nil && hit {
				cacheHooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				continue
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}
		allCached = false

		start := time.Now()
		data, err := RenderFormat(c, seed, format, opts.Scale)
		genHooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data

		if cacheable {
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				opts.Logger.Debug("cache set failed", "format", format, "error", err)
			} else {
				cacheHooks.OnCacheSet(ctx, format, len(data))
			}
		}
	}

	return artifacts, cacheable && allCached, nil
}

// Batch configures ExecuteBatch.
type Batch struct {
	// Count is the number of compositions to generate.
	Count int

	// Concurrency bounds parallel runs; zero means DefaultConcurrency.
	Concurrency int

	// OnResult, when set, is called after each successful run. Calls are
	// serialized but arrive in completion order, not run order.
	OnResult func(i int, res *Result)
}

// ExecuteBatch runs b.Count independent compositions with at most
// b.Concurrency runs in flight. When opts.Seed is set, run i uses seed
// opts.Seed+i so the whole batch is reproducible; otherwise every run draws
// a fresh seed. Results are returned in run order. The first failure
// cancels the batch.
func (r *Runner) ExecuteBatch(ctx context.Context, opts Options, b Batch) ([]*Result, error) {
	if b.Count < 1 || b.Count > MaxBatch {
		return nil, errors.New(errors.ErrCodeInvalidInput, "batch count must be in [1, %d], got %d", MaxBatch, b.Count)
	}
	if b.Concurrency < 1 {
		b.Concurrency = DefaultConcurrency
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	results := make([]*Result, b.Count)
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Concurrency)

	for i := range b.Count {
		runOpts := opts
		runOpts.Formats = append([]string(nil), opts.Formats...)
		if opts.Seed != 0 {
			runOpts.Seed = opts.Seed + uint64(i)
			if runOpts.Seed == 0 {
				runOpts.Seed = 1
			}
		}
		g.Go(func() error {
			res, err := r.Execute(gctx, runOpts)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = res
			if b.OnResult != nil {
				mu.Lock()
				b.OnResult(i, res)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
