// Package ffnet implements small fixed-topology feedforward neural networks
// (multilayer perceptrons) with forward inference, error evaluation,
// backpropagation and plain gradient descent in Go.
package ffnet

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultInitialValue is the value that every weight and bias starts at.
// It is a deterministic placeholder; trained parameters are expected to be
// loaded with LoadParameters or learned with TrainStep.
const DefaultInitialValue float32 = 0.1

// Network is a feedforward neural network.
// A Network is owned by a single caller and is not safe for concurrent use.
type Network struct {
	layers      []int        // the number of units on each layer, including the input and output layers
	connections []Connection // the connections between consecutive layers
	weights     [][]float32  // the weights of each connection, indexed with Connection.WeightIndex
	biases      [][]float32  // the biases of each connection, one per unit on the layer above

	hidden Activation // the activation function for all hidden layers
	output Activation // the activation function for the output layer

	initialValue     float32 // the value that every weight and bias starts at
	activationDerivs bool    // whether ComputeGradients multiplies by the activation derivatives
}

// Option configures optional behavior of a Network
type Option func(n *Network)

// WithInitialValue makes every weight and bias start at v instead of DefaultInitialValue
func WithInitialValue(v float32) Option {
	return func(n *Network) {
		n.initialValue = v
	}
}

// WithActivationDerivatives makes ComputeGradients apply the derivative of the activation
// function at every layer, which gives exact mean squared error gradients.
// Without it, the gradients skip that factor (see ComputeGradients).
func WithActivationDerivatives() Option {
	return func(n *Network) {
		n.activationDerivs = true
	}
}

// NewNetwork creates and returns a new network with the given number of units on each layer
// (layers[0] is the input layer and the last element is the output layer), using hidden as the
// activation function for all hidden layers and output for the output layer.
func NewNetwork(layers []int, hidden, output Activation, opts ...Option) (*Network, error) {
	if len(layers) < 2 {
		return nil, errors.Wrapf(ErrInvalidTopology, "need at least 2 layers, got %d", len(layers))
	}
	for i, units := range layers {
		if units <= 0 {
			return nil, errors.Wrapf(ErrInvalidTopology, "layer %d has %d units", i, units)
		}
	}
	if !hidden.Valid() {
		return nil, errors.Wrapf(ErrInvalidTopology, "hidden activation %v", hidden)
	}
	if !output.Valid() {
		return nil, errors.Wrapf(ErrInvalidTopology, "output activation %v", output)
	}

	n := &Network{
		layers:       append([]int(nil), layers...),
		connections:  make([]Connection, len(layers)-1),
		weights:      make([][]float32, len(layers)-1),
		biases:       make([][]float32, len(layers)-1),
		hidden:       hidden,
		output:       output,
		initialValue: DefaultInitialValue,
	}
	for _, opt := range opts {
		opt(n)
	}

	for k := range n.connections {
		act := hidden
		// the final connection feeds the output layer
		if k == len(n.connections)-1 {
			act = output
		}
		n.connections[k] = Connection{
			Index:      k,
			InSize:     layers[k],
			OutSize:    layers[k+1],
			Activation: act,
		}
		n.weights[k] = make([]float32, n.connections[k].NumWeights())
		n.biases[k] = make([]float32, layers[k+1])
	}
	// need to initialize weights and biases
	for k := range n.connections {
		fill(n.weights[k], n.initialValue)
		fill(n.biases[k], n.initialValue)
	}
	return n, nil
}

// Layers returns the number of units on each layer
func (n *Network) Layers() []int {
	return append([]int(nil), n.layers...)
}

// NumInputs returns the number of units on the input layer
func (n *Network) NumInputs() int {
	return n.layers[0]
}

// NumOutputs returns the number of units on the output layer
func (n *Network) NumOutputs() int {
	return n.layers[len(n.layers)-1]
}

// Connections returns the connections between consecutive layers
func (n *Network) Connections() []Connection {
	return append([]Connection(nil), n.connections...)
}

// HiddenActivation returns the activation function used on the hidden layers
func (n *Network) HiddenActivation() Activation {
	return n.hidden
}

// OutputActivation returns the activation function used on the output layer
func (n *Network) OutputActivation() Activation {
	return n.output
}

// Weights returns a copy of the weights of every connection
func (n *Network) Weights() [][]float32 {
	return clone2(n.weights)
}

// Biases returns a copy of the biases of every connection
func (n *Network) Biases() [][]float32 {
	return clone2(n.biases)
}

// LoadParameters replaces all of the weights and biases of the network with copies of the given ones.
// weights[k] must have layers[k]*layers[k+1] values laid out as described by Connection.WeightIndex,
// and biases[k] must have layers[k+1] values. If anything does not match, the network is left unchanged.
func (n *Network) LoadParameters(weights, biases [][]float32) error {
	if len(weights) != len(n.connections) {
		return errors.Wrapf(ErrTopologyMismatch, "got %d weight collections for %d connections", len(weights), len(n.connections))
	}
	if len(biases) != len(n.connections) {
		return errors.Wrapf(ErrTopologyMismatch, "got %d bias collections for %d connections", len(biases), len(n.connections))
	}
	for k, c := range n.connections {
		if len(weights[k]) != c.NumWeights() {
			return errors.Wrapf(ErrTopologyMismatch, "connection %d has %d weights, want %d", k, len(weights[k]), c.NumWeights())
		}
		if len(biases[k]) != c.OutSize {
			return errors.Wrapf(ErrTopologyMismatch, "connection %d has %d biases, want %d", k, len(biases[k]), c.OutSize)
		}
	}
	n.weights = clone2(weights)
	n.biases = clone2(biases)
	return nil
}

// Forward computes the forward propagation pass for the given input and returns the activations of the output layer
func (n *Network) Forward(input []float32) ([]float32, error) {
	if len(input) != n.NumInputs() {
		return nil, errors.Wrapf(ErrInputSizeMismatch, "got %d inputs, want %d", len(input), n.NumInputs())
	}
	act := input
	for k := range n.connections {
		c := &n.connections[k]
		net := make([]float32, c.OutSize)
		next := make([]float32, c.OutSize)
		c.Forward(n.weights[k], n.biases[k], act, net, next)
		// the activations of this layer become the inputs of the next one
		act = next
	}
	return act, nil
}

// trace holds the net inputs and activations of every layer from a single forward pass
type trace struct {
	acts [][]float32 // the activations of every layer; acts[0] is the input
	nets [][]float32 // the net inputs of every layer above the input layer; nets[k] belongs to connection k
}

// forwardTrace computes the forward propagation pass like Forward, but keeps the values of every layer
func (n *Network) forwardTrace(input []float32) (*trace, error) {
	if len(input) != n.NumInputs() {
		return nil, errors.Wrapf(ErrInputSizeMismatch, "got %d inputs, want %d", len(input), n.NumInputs())
	}
	tr := &trace{
		acts: make([][]float32, len(n.layers)),
		nets: make([][]float32, len(n.connections)),
	}
	tr.acts[0] = append([]float32(nil), input...)
	for k := range n.connections {
		c := &n.connections[k]
		tr.nets[k] = make([]float32, c.OutSize)
		tr.acts[k+1] = make([]float32, c.OutSize)
		c.Forward(n.weights[k], n.biases[k], tr.acts[k], tr.nets[k], tr.acts[k+1])
	}
	return tr, nil
}

// ParseTopology parses a whitespace or comma separated list of layer sizes such as "4 8 4"
func ParseTopology(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	layers := make([]int, len(fields))
	for i, f := range fields {
		units, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		layers[i] = units
	}
	return layers, nil
}

// fill sets every element of s to v
func fill(s []float32, v float32) {
	for i := range s {
		s[i] = v
	}
}

// clone2 returns a deep copy of s
func clone2(s [][]float32) [][]float32 {
	res := make([][]float32, len(s))
	for i := range s {
		res[i] = append([]float32(nil), s[i]...)
	}
	return res
}
