package rover

import "github.com/pkg/errors"

// Threshold is the output value above which a motor is switched on
const Threshold float32 = 0.5

// ErrMotorCount is returned when the number of outputs and motors differ
var ErrMotorCount = errors.New("number of outputs does not match number of motors")

// Motor is a binary actuator, such as one input of an H-bridge
type Motor interface {
	Set(on bool)
}

// Actuate switches on every motor whose output is above Threshold and switches off the rest.
// It returns the state it set for each motor.
func Actuate(outputs []float32, motors []Motor) ([]bool, error) {
	if len(outputs) != len(motors) {
		return nil, errors.Wrapf(ErrMotorCount, "%d outputs for %d motors", len(outputs), len(motors))
	}
	states := make([]bool, len(outputs))
	for i, o := range outputs {
		states[i] = o > Threshold
		motors[i].Set(states[i])
	}
	return states, nil
}

// MotorFunc adapts a function to the Motor interface
type MotorFunc func(on bool)

// Set calls f(on)
func (f MotorFunc) Set(on bool) {
	f(on)
}

// StateMotor is a Motor that only remembers its last state
type StateMotor struct {
	On bool
}

// Set records the state
func (m *StateMotor) Set(on bool) {
	m.On = on
}
