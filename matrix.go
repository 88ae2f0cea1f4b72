package ffnet

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// WeightMatrix returns a copy of the weights of connection k as an InSize x OutSize matrix,
// so that element (i, j) is the weight from unit i on the layer below to unit j on the layer above.
func (n *Network) WeightMatrix(k int) (*mat.Dense, error) {
	if k < 0 || k >= len(n.connections) {
		return nil, errors.Errorf("connection %d out of range [0, %d)", k, len(n.connections))
	}
	c := n.connections[k]
	data := make([]float64, c.NumWeights())
	for i, w := range n.weights[k] {
		data[i] = float64(w)
	}
	// the weights are already stored row-major with one row per unit on the layer below
	return mat.NewDense(c.InSize, c.OutSize, data), nil
}

// BiasVector returns a copy of the biases of connection k
func (n *Network) BiasVector(k int) (*mat.VecDense, error) {
	if k < 0 || k >= len(n.connections) {
		return nil, errors.Errorf("connection %d out of range [0, %d)", k, len(n.connections))
	}
	data := make([]float64, len(n.biases[k]))
	for j, b := range n.biases[k] {
		data[j] = float64(b)
	}
	return mat.NewVecDense(len(data), data), nil
}
