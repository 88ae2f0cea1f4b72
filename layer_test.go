package ffnet

import "testing"

func TestWeightIndex(t *testing.T) {
	c := Connection{InSize: 9, OutSize: 6}

	// how many times each index has occurred
	indexMap := map[int]int{}
	for i := 0; i < c.InSize; i++ {
		for j := 0; j < c.OutSize; j++ {
			wi := c.WeightIndex(i, j)
			// input-major: all of the weights from input i come before those from input i+1
			if wi != i*c.OutSize+j {
				t.Errorf("error: weight index for %d -> %d is %d, expected %d", i, j, wi, i*c.OutSize+j)
			}
			indexMap[wi]++
		}
	}

	for i := 0; i < c.NumWeights(); i++ {
		// each index should only occur once
		if indexMap[i] != 1 {
			t.Errorf("error: weight index %d occurs %d times, when it should occur 1 time", i, indexMap[i])
		}
	}
}

func TestConnectionForward(t *testing.T) {
	c := Connection{InSize: 2, OutSize: 2, Activation: Rectifier}
	// weights from input 0 are [1, -1] and from input 1 are [2, -2]
	weights := []float32{1, -1, 2, -2}
	biases := []float32{0.5, 0.5}
	net := make([]float32, 2)
	act := make([]float32, 2)
	c.Forward(weights, biases, []float32{1, 1}, net, act)

	// net = [1+2+0.5, -1-2+0.5] = [3.5, -2.5], act = Rectifier(net) = [3.5, 0]
	wantNet := []float32{3.5, -2.5}
	wantAct := []float32{3.5, 0}
	for j := range wantNet {
		if !aboutEqual(net[j], wantNet[j], defTol) || !aboutEqual(act[j], wantAct[j], defTol) {
			t.Errorf("error: unit %d: expected net %g act %g, but got net %g act %g", j, wantNet[j], wantAct[j], net[j], act[j])
		}
	}
}
