package rover

import "time"

// NumInputs is the length of the input vectors built by Tracker
const NumInputs = 4

// Tracker turns pairs of distance readings into network inputs. Besides the two distances,
// it reports how long each side has gone without a valid reading.
type Tracker struct {
	lastLeft  time.Time // when the left sensor last had a valid reading
	lastRight time.Time // when the right sensor last had a valid reading
}

// NewTracker returns a Tracker that counts both sides as last valid at start
func NewTracker(start time.Time) *Tracker {
	return &Tracker{lastLeft: start, lastRight: start}
}

// Observe records the readings taken at now and returns the input vector
// {left distance, right distance, left duration, right duration}, with durations in seconds.
func (t *Tracker) Observe(now time.Time, left, right float32) []float32 {
	if left > 0 {
		t.lastLeft = now
	}
	if right > 0 {
		t.lastRight = now
	}
	return []float32{
		left,
		right,
		float32(now.Sub(t.lastLeft).Seconds()),
		float32(now.Sub(t.lastRight).Seconds()),
	}
}
