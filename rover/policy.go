package rover

import "time"

// SafeDistance is how close in centimetres an obstacle may get before AvoidancePolicy steers away from it
const SafeDistance float32 = 30

// H-bridge targets for the four motor inputs IN1, IN2 (left wheel) and IN3, IN4 (right wheel)
var (
	Forward   = []float32{1, 0, 1, 0}
	TurnRight = []float32{1, 0, 0, 1}
	TurnLeft  = []float32{0, 1, 1, 0}
	Reverse   = []float32{0, 1, 0, 1}
)

// AvoidancePolicy returns the motor targets that a simple obstacle-avoiding driver would choose
// for the given input vector (as built by Tracker, so it must have at least the two distances).
// It is used to generate training targets.
func AvoidancePolicy(input []float32) []float32 {
	leftBlocked := blocked(input[0])
	rightBlocked := blocked(input[1])
	var res []float32
	switch {
	case leftBlocked && rightBlocked:
		res = Reverse
	case leftBlocked:
		res = TurnRight
	case rightBlocked:
		res = TurnLeft
	default:
		res = Forward
	}
	return append([]float32(nil), res...)
}

// blocked returns whether a valid reading is closer than SafeDistance
func blocked(d float32) bool {
	return d > 0 && d < SafeDistance
}

// PolicySamples replays recorded left and right distances through a Tracker, one reading every interval,
// and returns the resulting input vectors together with the AvoidancePolicy targets for each of them.
// Extra readings on the longer side are ignored.
func PolicySamples(left, right []float32, interval time.Duration) (inputs, targets [][]float32) {
	num := len(left)
	if len(right) < num {
		num = len(right)
	}
	start := time.Time{}
	tr := NewTracker(start)
	inputs = make([][]float32, num)
	targets = make([][]float32, num)
	for i := 0; i < num; i++ {
		now := start.Add(time.Duration(i) * interval)
		inputs[i] = tr.Observe(now, left[i], right[i])
		targets[i] = AvoidancePolicy(inputs[i])
	}
	return inputs, targets
}
