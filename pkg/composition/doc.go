// Package composition generates random shape compositions.
//
// # Overview
//
// A composition is the set of shapes drawn together by one generation
// call. Templates ([Strategy]) decide how many shapes there are, where they
// go and how they look; [Generate] clears a surface and draws a template's
// shapes onto it; a [Selector] picks a template uniformly at random.
//
// Two templates are built in:
//
//   - [Triangle] ("triangle"): a circle, a square and a triangle placed on
//     the corners of a balanced random triangle, with small, large and
//     medium sizes shuffled across them
//   - [Sun] ("sun"): one shape of random kind at the canvas center
//
// # Usage
//
//	sel := composition.DefaultSelector(composition.DefaultPalette)
//	rng := rand.New(rand.NewPCG(seed, seed))
//	c, err := sel.GenerateRandom(surface.NewRaster(500, 500), rng)
//
// # Determinism
//
// All randomness comes from the [Rand] passed in. The same seed, canvas
// size and selector always produce the same composition.
//
// # Clearing
//
// Exactly one composition is live on a surface: [Generate] plans all
// shapes first, then clears the surface and draws them. A planning failure
// (for example a canvas too small for the triangle template) leaves the
// surface untouched.
package composition
