// Package anim evaluates keyframed animation drivers against a playhead time.
package anim

import (
	"errors"
	"fmt"

	"github.com/Faultbox/scenecore/pkg/math"
)

// Driver construction errors.
var (
	ErrNoKeyframes          = errors.New("driver has no keyframes")
	ErrTimesNotIncreasing   = errors.New("driver times are not strictly increasing")
	ErrLengthMismatch       = errors.New("driver times/values length mismatch")
	ErrUnknownChannel       = errors.New("unknown driver channel")
	ErrUnknownInterpolation = errors.New("unknown driver interpolation")
	ErrSlerpChannel         = errors.New("slerp interpolation requires the rotation channel")
)

// Channel is the node property a driver animates.
type Channel uint8

const (
	Translation Channel = iota
	Scale
	Rotation

	// NumChannels is the number of animatable channels per node.
	NumChannels = 3
)

// String returns a human-readable channel name.
func (c Channel) String() string {
	switch c {
	case Translation:
		return "translation"
	case Scale:
		return "scale"
	case Rotation:
		return "rotation"
	default:
		return fmt.Sprintf("Channel(%d)", uint8(c))
	}
}

// Components returns the number of floats stored per keyframe, or 0 for an
// unknown channel.
func (c Channel) Components() int {
	switch c {
	case Translation, Scale:
		return 3
	case Rotation:
		return 4
	default:
		return 0
	}
}

// Interpolation selects how values between two keyframes are computed.
type Interpolation uint8

const (
	Step Interpolation = iota
	Linear
	Slerp
)

// String returns a human-readable interpolation name.
func (m Interpolation) String() string {
	switch m {
	case Step:
		return "step"
	case Linear:
		return "linear"
	case Slerp:
		return "slerp"
	default:
		return fmt.Sprintf("Interpolation(%d)", uint8(m))
	}
}

// DriverID indexes a driver in its Timeline.
type DriverID int32

// NoDriver marks a channel without a driver.
const NoDriver DriverID = -1

// Value holds one evaluated sample. Translation and scale use the first
// three lanes; rotation uses all four as x, y, z, w.
type Value [4]float32

// Driver is a keyframe track for one channel of one node.
type Driver struct {
	Channel Channel
	Mode    Interpolation
	Times   []float32
	Values  []float32

	// cursor is the index of the last keyframe at or before the playhead,
	// -1 before the first keyframe.
	cursor int
}

// NewDriver validates the keyframe arrays and returns a driver whose cursor
// sits before the first keyframe. The slices are retained, not copied.
func NewDriver(channel Channel, mode Interpolation, times, values []float32) (*Driver, error) {
	comps := channel.Components()
	if comps == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChannel, channel)
	}
	switch mode {
	case Step, Linear:
	case Slerp:
		if channel != Rotation {
			return nil, fmt.Errorf("%w: got %s", ErrSlerpChannel, channel)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownInterpolation, mode)
	}
	if len(times) == 0 {
		return nil, ErrNoKeyframes
	}
	if len(values) != len(times)*comps {
		return nil, fmt.Errorf("%w: %d times need %d %s values, got %d",
			ErrLengthMismatch, len(times), len(times)*comps, channel, len(values))
	}
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			return nil, fmt.Errorf("%w: times[%d]=%v, times[%d]=%v",
				ErrTimesNotIncreasing, i-1, times[i-1], i, times[i])
		}
	}

	return &Driver{
		Channel: channel,
		Mode:    mode,
		Times:   times,
		Values:  values,
		cursor:  -1,
	}, nil
}

// Cursor returns the current keyframe index in [-1, len(Times)-1].
func (d *Driver) Cursor() int {
	return d.cursor
}

// LastIndex returns the index of the final keyframe.
func (d *Driver) LastIndex() int {
	return len(d.Times) - 1
}

// seek moves the cursor to the keyframe at or before t, one step at a time.
// Only one of the loops does any work when the invariant held for the
// previous time.
func (d *Driver) seek(t float32) {
	last := len(d.Times) - 1
	for d.cursor < last && d.Times[d.cursor+1] <= t {
		d.cursor++
	}
	for d.cursor >= 0 && d.Times[d.cursor] > t {
		d.cursor--
	}
}

func (d *Driver) sample(i int) Value {
	var v Value
	comps := d.Channel.Components()
	copy(v[:comps], d.Values[i*comps:(i+1)*comps])
	return v
}

// Evaluate returns the channel value at playhead time t using the current
// cursor. The cursor must already reflect t (see Timeline.Seek).
func (d *Driver) Evaluate(t float32) Value {
	last := len(d.Times) - 1
	switch {
	case d.cursor >= last:
		return d.sample(last)
	case d.cursor < 0:
		return d.sample(0)
	}

	i := d.cursor
	beg := d.sample(i)
	begT, endT := d.Times[i], d.Times[i+1]
	u := (t - begT) / (endT - begT)

	switch d.Mode {
	case Linear:
		end := d.sample(i + 1)
		var out Value
		for c := range out {
			out[c] = (1-u)*beg[c] + u*end[c]
		}
		return out
	case Slerp:
		end := d.sample(i + 1)
		q := math.QuatFromSlice(beg[:]).Slerp(math.QuatFromSlice(end[:]), u)
		return Value{q.X, q.Y, q.Z, q.W}
	default:
		// Step, and any mode that slipped past NewDriver.
		return beg
	}
}

// EvaluateVec3 returns a translation or scale value at t.
func (d *Driver) EvaluateVec3(t float32) math.Vec3 {
	v := d.Evaluate(t)
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// EvaluateQuat returns a rotation value at t.
func (d *Driver) EvaluateQuat(t float32) math.Quat {
	v := d.Evaluate(t)
	return math.QuatFromSlice(v[:])
}
