package ffnet

import "github.com/pkg/errors"

// Gradients contains the gradient of the error with respect to every weight and bias of a network.
// Weights[k] and Biases[k] have the same lengths as the weights and biases of connection k.
type Gradients struct {
	Weights [][]float32
	Biases  [][]float32
}

// ComputeGradients runs a forward pass with the given input and propagates the error against target
// back through the network, returning the gradients for every weight and bias.
//
// The error signal at the output layer is always (output - target), the derivative of the
// mean squared error, regardless of the ErrorFunc used to report the error. Unless the network
// was created with WithActivationDerivatives, the error signal is not multiplied by the derivative
// of the activation function at each layer, so the gradients are only exact for identity activations.
func (n *Network) ComputeGradients(input, target []float32) (*Gradients, error) {
	if len(input) != n.NumInputs() {
		return nil, errors.Wrapf(ErrInputSizeMismatch, "got %d inputs, want %d", len(input), n.NumInputs())
	}
	if len(target) != n.NumOutputs() {
		return nil, errors.Wrapf(ErrSizeMismatch, "target has %d values, output layer has %d", len(target), n.NumOutputs())
	}
	tr, err := n.forwardTrace(input)
	if err != nil {
		return nil, err
	}
	g := &Gradients{
		Weights: make([][]float32, len(n.connections)),
		Biases:  make([][]float32, len(n.connections)),
	}

	// the error signal for the output layer
	final := tr.acts[len(tr.acts)-1]
	delta := make([]float32, len(final))
	for j := range final {
		delta[j] = final[j] - target[j]
	}

	// start from the final connection and go back to the input layer
	for k := len(n.connections) - 1; k >= 0; k-- {
		c := &n.connections[k]
		if n.activationDerivs {
			deriv := c.Activation.Func().Derivative
			for j := range delta {
				delta[j] *= deriv(tr.nets[k][j])
			}
		}
		in := tr.acts[k]
		w := n.weights[k]
		gw := make([]float32, c.NumWeights())
		gb := make([]float32, c.OutSize)
		// the error signal for the layer below
		prev := make([]float32, c.InSize)
		// i = index for the layer below, j = index for the layer above
		for i := 0; i < c.InSize; i++ {
			var sum float32
			for j := 0; j < c.OutSize; j++ {
				wi := c.WeightIndex(i, j)
				gw[wi] = in[i] * delta[j]
				sum += w[wi] * delta[j]
			}
			prev[i] = sum
		}
		copy(gb, delta)
		g.Weights[k] = gw
		g.Biases[k] = gb
		delta = prev
	}
	return g, nil
}

// UpdateWeights applies one step of gradient descent, subtracting learningRate times each gradient
// from the corresponding weight or bias. If the gradients do not have the shape of the parameters,
// nothing is changed.
func (n *Network) UpdateWeights(g *Gradients, learningRate float32) error {
	if g == nil {
		return errors.Wrap(ErrGradientShapeMismatch, "nil gradients")
	}
	if len(g.Weights) != len(n.weights) || len(g.Biases) != len(n.biases) {
		return errors.Wrapf(ErrGradientShapeMismatch, "got %d weight and %d bias collections for %d connections", len(g.Weights), len(g.Biases), len(n.connections))
	}
	for k := range n.connections {
		if len(g.Weights[k]) != len(n.weights[k]) {
			return errors.Wrapf(ErrGradientShapeMismatch, "connection %d has %d weight gradients, want %d", k, len(g.Weights[k]), len(n.weights[k]))
		}
		if len(g.Biases[k]) != len(n.biases[k]) {
			return errors.Wrapf(ErrGradientShapeMismatch, "connection %d has %d bias gradients, want %d", k, len(g.Biases[k]), len(n.biases[k]))
		}
	}
	for k := range n.connections {
		w := n.weights[k]
		for i, gr := range g.Weights[k] {
			w[i] -= learningRate * gr
		}
		b := n.biases[k]
		for j, gr := range g.Biases[k] {
			b[j] -= learningRate * gr
		}
	}
	return nil
}

// TrainStep computes the gradients for the given input and target and applies them with the given learning rate
func (n *Network) TrainStep(input, target []float32, learningRate float32) error {
	g, err := n.ComputeGradients(input, target)
	if err != nil {
		return err
	}
	return n.UpdateWeights(g, learningRate)
}
