package ffnet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeError(t *testing.T) {
	output := []float32{0.5, 1, 3}
	target := []float32{1, 1, 1}

	// differences = [-0.5, 0, 2]
	// mse = (0.25 + 0 + 4) / 3 = 1.416667
	mse, err := ComputeError(output, target, MeanSquared)
	require.NoError(t, err)
	require.InDelta(t, 1.416667, mse, 1e-5)

	// mae = (0.5 + 0 + 2) / 3 = 0.833333
	mae, err := ComputeError(output, target, MeanAbsolute)
	require.NoError(t, err)
	require.InDelta(t, 0.833333, mae, 1e-5)
}

func TestComputeErrorCrossEntropy(t *testing.T) {
	// -(1*log(0.8)) = 0.223144 and -(0*log(0.4) + 1*log(0.6)) = 0.510826, mean = 0.366985
	ce, err := ComputeError([]float32{0.8, 0.4}, []float32{1, 0}, CrossEntropy)
	require.NoError(t, err)
	require.InDelta(t, 0.366985, ce, 1e-5)

	// predictions of exactly 0 and 1 are clamped to 1e-9 and 1-1e-9, so each element is -log(1e-9) ≈ 20.723266
	ce, err = ComputeError([]float32{0, 1}, []float32{1, 0}, CrossEntropy)
	require.NoError(t, err)
	require.False(t, math.IsInf(float64(ce), 0))
	require.InDelta(t, 20.723266, ce, 1e-3)
}

func TestComputeErrorEqual(t *testing.T) {
	v := []float32{0.1, -2, 7, 0}
	for _, kind := range []ErrorFunc{MeanSquared, MeanAbsolute} {
		e, err := ComputeError(v, v, kind)
		require.NoError(t, err)
		require.Zero(t, e, "%v of equal vectors", kind)
	}
}

func TestComputeErrorEmpty(t *testing.T) {
	for _, kind := range []ErrorFunc{MeanSquared, MeanAbsolute, CrossEntropy} {
		e, err := ComputeError(nil, []float32{}, kind)
		require.NoError(t, err)
		require.Zero(t, e)
	}
}

func TestComputeErrorSizeMismatch(t *testing.T) {
	for _, kind := range []ErrorFunc{MeanSquared, MeanAbsolute, CrossEntropy, ErrorFunc(9)} {
		_, err := ComputeError([]float32{1, 2}, []float32{1}, kind)
		require.ErrorIs(t, err, ErrSizeMismatch)
	}
}

func TestComputeErrorUnsupported(t *testing.T) {
	_, err := ComputeError([]float32{1}, []float32{1}, ErrorFunc(9))
	require.ErrorIs(t, err, ErrUnsupportedErrorFunction)
}

func TestParseErrorFunc(t *testing.T) {
	for _, kind := range []ErrorFunc{MeanSquared, MeanAbsolute, CrossEntropy} {
		got, err := ParseErrorFunc(kind.String())
		require.NoError(t, err)
		require.Equal(t, kind, got)
	}
	_, err := ParseErrorFunc("hinge")
	require.ErrorIs(t, err, ErrUnsupportedErrorFunction)
}
