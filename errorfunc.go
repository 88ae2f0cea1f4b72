package ffnet

import (
	"math"
	"strconv"
	"strings"

	"github.com/goki/mat32"
	"github.com/pkg/errors"
)

// ErrorFunc selects how ComputeError compares an output with a target
type ErrorFunc int

const (
	// MeanSquared is the average of the squared differences
	MeanSquared ErrorFunc = iota
	// MeanAbsolute is the average of the absolute differences
	MeanAbsolute
	// CrossEntropy is the average binary cross-entropy, treating every output as a probability
	CrossEntropy
)

// probEpsilon is how close to 0 or 1 a probability may get before CrossEntropy takes its logarithm
const probEpsilon = 1e-9

func (e ErrorFunc) String() string {
	switch e {
	case MeanSquared:
		return "mse"
	case MeanAbsolute:
		return "mae"
	case CrossEntropy:
		return "cross-entropy"
	}
	return "ErrorFunc(" + strconv.Itoa(int(e)) + ")"
}

// ParseErrorFunc returns the ErrorFunc with the given name (mse, mae or cross-entropy)
func ParseErrorFunc(name string) (ErrorFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mse", "mean-squared":
		return MeanSquared, nil
	case "mae", "mean-absolute":
		return MeanAbsolute, nil
	case "cross-entropy", "crossentropy", "bce":
		return CrossEntropy, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedErrorFunction, "%q", name)
}

// ComputeError returns the error between output and target according to kind.
// Empty vectors have an error of 0.
func ComputeError(output, target []float32, kind ErrorFunc) (float32, error) {
	if len(output) != len(target) {
		return 0, errors.Wrapf(ErrSizeMismatch, "output has %d values, target has %d", len(output), len(target))
	}
	var perElem func(o, t float32) float32
	switch kind {
	case MeanSquared:
		perElem = func(o, t float32) float32 {
			d := o - t
			return d * d
		}
	case MeanAbsolute:
		perElem = func(o, t float32) float32 {
			return mat32.Abs(o - t)
		}
	case CrossEntropy:
		perElem = func(o, t float32) float32 {
			// 1-probEpsilon is not representable in float32, so the clamp and logs run in float64
			p := math.Min(math.Max(float64(o), probEpsilon), 1-probEpsilon)
			tt := float64(t)
			return float32(-(tt*math.Log(p) + (1-tt)*math.Log(1-p)))
		}
	default:
		return 0, errors.Wrapf(ErrUnsupportedErrorFunction, "%v", kind)
	}
	if len(output) == 0 {
		return 0, nil
	}
	var sum float32
	for i := range output {
		sum += perElem(output[i], target[i])
	}
	return sum / float32(len(output)), nil
}
