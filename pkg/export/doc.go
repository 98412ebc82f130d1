// Package export encodes compositions as PNG, SVG and JSON artifacts.
//
// # Overview
//
//   - [PNG]: rasterizes a composition on a transparent canvas, optionally
//     scaled for high-density output
//   - [SVG]: vector document without a background element
//   - [WriteJSON] / [ReadJSON]: the composition's shape list, for
//     inspection and for re-rendering with [Replay]
//
// # JSON Format
//
//	{
//	  "template": "triangle",
//	  "seed": 42,
//	  "width": 500,
//	  "height": 500,
//	  "shapes": [
//	    {"kind": "circle", "x": 120.5, "y": 88.1, "size": 31.2, "color": "#ff6666"}
//	  ]
//	}
//
// Kinds are "circle", "rectangle" or "triangle"; colors are "#rrggbb".
// Round trips preserve every shape exactly.
package export
