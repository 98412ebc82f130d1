// Package pkg provides the core libraries for kozu random shape compositions.
//
// # Overview
//
// Kozu places a handful of simple shapes (circles, rectangles, triangles) on
// a transparent canvas according to a composition template, and exports the
// result as PNG, SVG or JSON. The pkg directory is organized into three
// areas:
//
//  1. Domain: [geom], [shape], [surface], [composition]
//  2. Output and orchestration: [export], [pipeline]
//  3. Infrastructure: [cache], [gallery], [config], [observability], [errors]
//
// # Architecture
//
// The data flow of a single run:
//
//	seed → [composition] (pick template, plan shapes with [geom] samplers)
//	         ↓
//	    [shape] specs drawn onto a [surface]
//	         ↓
//	    [export] (PNG via gg, SVG, JSON document)
//	         ↓
//	    [cache] / [gallery] / files
//
// [pipeline.Runner] wires these steps together and is shared by the CLI and
// the HTTP server so both produce identical bytes for the same inputs.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, _ := runner.Execute(ctx, pipeline.Options{
//	    Template: composition.TemplateSun,
//	    Seed:     42,
//	    Formats:  []string{pipeline.FormatPNG},
//	})
//	os.WriteFile("sun.png", res.Artifacts[pipeline.FormatPNG], 0o644)
//
// # Main Packages
//
// [geom] - Points, the margin-aware position sampler and size ranges.
//
// [shape] - Shape kinds, specs, color parsing and the [shape.Surface]
// drawing contract.
//
// [surface] - Surface implementations: an anti-aliased raster (fogleman/gg),
// an SVG writer and a call recorder used in tests.
//
// [composition] - The triangle and sun templates and the [composition.Selector]
// that picks one at random.
//
// [export] - PNG, SVG and JSON encoders for finished compositions.
//
// [pipeline] - Option validation, seeding, rendering and batch execution.
//
// [cache] - Artifact caches: null, file (CLI) and Redis (server).
//
// [gallery] - Saved compositions, in memory or in MongoDB.
//
// [config] - TOML and YAML configuration files.
//
// [observability] - Hooks for generation, cache and HTTP events.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/composition/... # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/kozu/pkg/geom
// [shape]: https://pkg.go.dev/github.com/matzehuels/kozu/pkg/shape
// [surface]: https://pkg.go.dev/github.com/matzehuels/kozu/pkg/surface
// [composition]: https://pkg.go.dev/github.com/matzehuels/kozu/pkg/composition
// [export]: https://pkg.go.dev/github.com/matzehuels/kozu/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/kozu/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/kozu/pkg/cache
// [gallery]: https://pkg.go.dev/github.com/matzehuels/kozu/pkg/gallery
// [config]: https://pkg.go.dev/github.com/matzehuels/kozu/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/kozu/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/kozu/pkg/errors
package pkg
