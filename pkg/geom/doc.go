// Package geom samples point sets for composition templates.
//
// # Overview
//
// Compositions place shapes at sampled points. This package owns the
// geometric side of that: the [Point] type, distance helpers and the
// samplers used by the templates in package composition.
//
//   - [SampleTrianglePositions]: three points forming a balanced triangle
//   - [SampleSunPosition]: the canvas center
//
// # Triangle Sampling
//
// Points are drawn uniformly inside the canvas inset by [DefaultMargin] on
// every edge. A candidate triangle is accepted when its shortest side is
// more than half its longest side ([MinSideRatio]), which rejects slivers
// and near-collinear point sets:
//
//	pts, err := geom.SampleTrianglePositions(500, 500, rng)
//
// Sampling is bounded. A canvas that cannot hold the margin-inset region
// fails immediately with INSUFFICIENT_CANVAS, and a run that does not find
// a valid triangle within [MaxAttempts] candidates fails with
// SAMPLING_EXHAUSTED. Use a [Sampler] to change the margin, ratio or cap.
//
// # Randomness
//
// Samplers read from a [Rand], which *math/rand/v2.Rand satisfies. Tests
// pass scripted sources to force specific candidates.
package geom
