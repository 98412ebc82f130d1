package surface

import (
	"image/color"
	"slices"

	"github.com/matzehuels/kozu/pkg/geom"
	"github.com/matzehuels/kozu/pkg/shape"
)

// Op names a primitive surface call.
type Op string

const (
	OpClear Op = "clear"
	OpArc   Op = "arc"
	OpRect  Op = "rect"
	OpPath  Op = "path"
)

// Call is one recorded primitive.
type Call struct {
	Op     Op
	Points []geom.Point // arc: center; rect: top-left; path: vertices
	Size   [2]float64   // arc: radius, 0; rect: width, height
	Color  color.RGBA
}

// Recorder is a surface that remembers every call made to it. Unlike the
// other surfaces, Clear does not forget history; use [Recorder.Since] to
// look at what is currently "visible".
type Recorder struct {
	Width, Height float64
	Calls         []Call
}

// NewRecorder creates a recorder reporting the given canvas size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) Clear() {
	r.Calls = append(r.Calls, Call{Op: OpClear})
}

func (r *Recorder) FillArc(cx, cy, radius float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: OpArc, Points: []geom.Point{{X: cx, Y: cy}}, Size: [2]float64{radius, 0}, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: OpRect, Points: []geom.Point{{X: x, Y: y}}, Size: [2]float64{w, h}, Color: c})
}

func (r *Recorder) FillPath(pts []geom.Point, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: OpPath, Points: slices.Clone(pts), Color: c})
}

// Since returns the draw calls made after the most recent clear, and
// whether a clear was ever recorded.
func (r *Recorder) Since() ([]Call, bool) {
	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Op == OpClear {
			return r.Calls[i+1:], true
		}
	}
	return r.Calls, false
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() { r.Calls = nil }

var _ shape.Surface = (*Recorder)(nil)
