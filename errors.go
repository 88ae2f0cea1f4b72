package ffnet

import "github.com/pkg/errors"

// Errors reported by the network. Operations wrap these with the offending sizes,
// so callers should compare with errors.Is.
var (
	// ErrInvalidTopology is returned when a network has fewer than two layers,
	// a layer without units, or an unknown activation function
	ErrInvalidTopology = errors.New("invalid topology")
	// ErrTopologyMismatch is returned when loaded parameters do not fit the topology
	ErrTopologyMismatch = errors.New("parameters do not match topology")
	// ErrGradientShapeMismatch is returned when gradients do not fit the parameters
	ErrGradientShapeMismatch = errors.New("gradients do not match parameters")
	// ErrInputSizeMismatch is returned when an input does not fit the input layer
	ErrInputSizeMismatch = errors.New("input size does not match input layer")
	// ErrSizeMismatch is returned when an output and a target differ in length
	ErrSizeMismatch = errors.New("output and target sizes differ")
	// ErrUnsupportedErrorFunction is returned for an unknown ErrorFunc
	ErrUnsupportedErrorFunction = errors.New("unsupported error function")
)
