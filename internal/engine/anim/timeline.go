package anim

// Timeline owns every driver of a scene and moves their cursors together as
// the playhead changes. It is not safe for concurrent use.
type Timeline struct {
	drivers []*Driver

	minTime, maxTime float32
	prev             float32
	// synced is false until the first Seek and after Reset, so the next
	// Seek always repositions the cursors.
	synced bool
}

// NewTimeline takes ownership of drivers. The time range is the min/max over
// all keyframe times, or 0/0 when there are no drivers.
func NewTimeline(drivers []*Driver) *Timeline {
	tl := &Timeline{drivers: drivers}
	for i, d := range drivers {
		first, last := d.Times[0], d.Times[len(d.Times)-1]
		if i == 0 || first < tl.minTime {
			tl.minTime = first
		}
		if i == 0 || last > tl.maxTime {
			tl.maxTime = last
		}
	}
	return tl
}

// Len returns the number of drivers.
func (tl *Timeline) Len() int {
	return len(tl.drivers)
}

// Driver returns the driver with the given id.
func (tl *Timeline) Driver(id DriverID) *Driver {
	return tl.drivers[id]
}

// Cursor returns the cursor of the driver with the given id.
func (tl *Timeline) Cursor(id DriverID) int {
	return tl.drivers[id].cursor
}

// Bounds returns the scene time range.
func (tl *Timeline) Bounds() (minTime, maxTime float32) {
	return tl.minTime, tl.maxTime
}

// Time returns the playhead time of the last Seek, or 0 before the first.
func (tl *Timeline) Time() float32 {
	return tl.prev
}

// Seek moves every cursor to reflect playhead time t. Work is proportional
// to the number of keyframes crossed since the previous Seek.
func (tl *Timeline) Seek(t float32) {
	switch {
	case tl.synced && t == tl.prev:
		return
	case t <= tl.minTime:
		for _, d := range tl.drivers {
			d.cursor = -1
		}
	case t >= tl.maxTime:
		for _, d := range tl.drivers {
			d.cursor = len(d.Times) - 1
		}
	default:
		for _, d := range tl.drivers {
			d.seek(t)
		}
	}
	tl.prev = t
	tl.synced = true
}

// Reset rewinds every cursor to the first keyframe. Used when playback
// loops or restarts; the next Seek walks forward or back from there.
func (tl *Timeline) Reset() {
	for _, d := range tl.drivers {
		d.cursor = 0
	}
	tl.synced = false
}
