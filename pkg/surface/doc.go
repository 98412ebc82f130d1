// Package surface provides drawing surfaces for compositions.
//
// Every surface implements [shape.Surface]:
//
//   - [Raster]: an RGBA pixel canvas backed by fogleman/gg, transparent
//     until painted, used for PNG export
//   - [SVG]: accumulates SVG elements, used for vector export
//   - [Recorder]: records primitive calls, used by tests and for JSON
//     inspection of what a composition drew
//
// Surfaces are not safe for concurrent use. Each generation run owns one.
package surface
