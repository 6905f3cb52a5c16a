package bounds

import (
	"fmt"

	"github.com/Faultbox/scenecore/pkg/math"
)

// SliceAccessor serves positions from a slice.
type SliceAccessor []math.Vec3

// Len returns the vertex count.
func (s SliceAccessor) Len() int { return len(s) }

// Position returns vertex i.
func (s SliceAccessor) Position(i int) math.Vec3 { return s[i] }

// FlatAccessor reads positions out of an interleaved float buffer, the way
// vertex streams arrive from a decoder.
type FlatAccessor struct {
	Data   []float32
	Stride int // floats per vertex, >= 3
	Offset int // index of the x component inside a vertex
}

// Len returns the number of whole vertices in Data.
func (f FlatAccessor) Len() int {
	if f.Stride <= 0 || len(f.Data) < f.Offset+3 {
		return 0
	}
	return (len(f.Data)-f.Offset-3)/f.Stride + 1
}

// Position returns vertex i and panics when i is out of range.
func (f FlatAccessor) Position(i int) math.Vec3 {
	if i < 0 || i >= f.Len() {
		panic(fmt.Sprintf("bounds: vertex %d out of range [0, %d)", i, f.Len()))
	}
	base := i*f.Stride + f.Offset
	return math.Vec3{X: f.Data[base], Y: f.Data[base+1], Z: f.Data[base+2]}
}
