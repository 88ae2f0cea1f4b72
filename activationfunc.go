package ffnet

import (
	"strconv"
	"strings"

	"github.com/goki/mat32"
	"github.com/pkg/errors"
)

// Activation selects one of the supported activation functions
type Activation int

const (
	// Identity returns the net input unchanged
	Identity Activation = iota
	// Rectifier is the rectifier (ReLU) activation function
	Rectifier
	// Logistic is the standard logistic / Sigmoid activation function
	Logistic
	// Tanh is the hyperbolic tangent activation function
	Tanh

	numActivations
)

// ActivationFunc is a function that turns a given net input into an activation value.
// It contains the actual activation function (Func) and its derivative (Derivative).
type ActivationFunc struct {
	Name       string
	Func       func(x float32) float32
	Derivative func(x float32) float32
}

// activationFuncs maps each Activation to its function and derivative
var activationFuncs = [numActivations]ActivationFunc{
	Identity:  {Name: "identity", Func: IdentityFunc, Derivative: IdentityDerivative},
	Rectifier: {Name: "relu", Func: RectifierFunc, Derivative: RectifierDerivative},
	Logistic:  {Name: "sigmoid", Func: LogisticFunc, Derivative: LogisticFuncDerivative},
	Tanh:      {Name: "tanh", Func: TanhFunc, Derivative: TanhDerivative},
}

// Valid returns whether a is one of the supported activation functions
func (a Activation) Valid() bool {
	return a >= 0 && a < numActivations
}

// Func returns the ActivationFunc for a. It panics if a is not valid, so callers
// that take an Activation from outside should check Valid first.
func (a Activation) Func() ActivationFunc {
	return activationFuncs[a]
}

// Apply returns the value of the activation function at x
func (a Activation) Apply(x float32) float32 {
	return activationFuncs[a].Func(x)
}

func (a Activation) String() string {
	if !a.Valid() {
		return "Activation(" + strconv.Itoa(int(a)) + ")"
	}
	return activationFuncs[a].Name
}

// ParseActivation returns the Activation with the given name (identity, relu, sigmoid or tanh).
// The aliases linear, rectifier and logistic are also accepted.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "identity", "linear":
		return Identity, nil
	case "relu", "rectifier":
		return Rectifier, nil
	case "sigmoid", "logistic":
		return Logistic, nil
	case "tanh":
		return Tanh, nil
	}
	return 0, errors.Errorf("unknown activation function %q", name)
}

// IdentityFunc just returns the input x unchanged
func IdentityFunc(x float32) float32 {
	return x
}

// IdentityDerivative returns the derivative of the identity function (which is 1)
func IdentityDerivative(x float32) float32 {
	return 1
}

// RectifierFunc returns the value of the rectifier (ReLU) activation function at the given point (x if x > 0 and 0 otherwise)
func RectifierFunc(x float32) float32 {
	return mat32.Max(0, x)
}

// RectifierDerivative returns the derivative of the rectifier (ReLU) activation function at the given point (1 if x > 0 and 0 otherwise)
func RectifierDerivative(x float32) float32 {
	if x > 0 {
		return 1
	}
	return 0
}

// LogisticFunc returns the value of the standard logistic / Sigmoid activation function at the given point (1 / (1 + e^-x))
func LogisticFunc(x float32) float32 {
	return 1 / (1 + mat32.Exp(-x))
}

// LogisticFuncDerivative returns the derivative of the standard logistic / Sigmoid activation function at the given point
func LogisticFuncDerivative(x float32) float32 {
	s := LogisticFunc(x)
	return s * (1 - s)
}

// TanhFunc returns the value of the hyperbolic tangent at the given point
func TanhFunc(x float32) float32 {
	return mat32.Tanh(x)
}

// TanhDerivative returns the derivative of the hyperbolic tangent at the given point (1 - tanh(x)^2)
func TanhDerivative(x float32) float32 {
	t := mat32.Tanh(x)
	return 1 - t*t
}
