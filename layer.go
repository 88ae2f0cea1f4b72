package ffnet

// Connection represents the weights and biases between two consecutive layers of a network
type Connection struct {
	Index      int        // the index of this connection in the network (connection k joins layer k to layer k+1)
	InSize     int        // the number of units on the layer below
	OutSize    int        // the number of units on the layer above
	Activation Activation // the activation function applied to the units on the layer above
}

// NumWeights returns the number of weights in the connection
func (c *Connection) NumWeights() int {
	return c.InSize * c.OutSize
}

// WeightIndex returns the index of the weight from the given index on the layer below to the given index on the layer above
func (c *Connection) WeightIndex(from, to int) int {
	// we offset by from multiplied by OutSize, and then we get to final position with to
	return from*c.OutSize + to
}

// Forward computes the net input and activation of every unit on the layer above
// from the activations of the layer below (in). Both net and act must have length OutSize.
func (c *Connection) Forward(weights, biases, in, net, act []float32) {
	fn := c.Activation.Func().Func
	for j := 0; j < c.OutSize; j++ {
		// we use i for the layer below and j for the layer above
		var sum float32
		for i := 0; i < c.InSize; i++ {
			sum += in[i] * weights[c.WeightIndex(i, j)]
		}
		sum += biases[j]
		net[j] = sum
		act[j] = fn(sum)
	}
}
