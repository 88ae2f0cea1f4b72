package rover

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start)

	// the left reading is valid, so its duration resets; the right one has had nothing since start
	in := tr.Observe(start.Add(100*time.Millisecond), 50, NoEcho)
	require.Len(t, in, NumInputs)
	require.InDeltaSlice(t, []float32{50, -1, 0, 0.1}, in, 1e-6)

	in = tr.Observe(start.Add(300*time.Millisecond), NoEcho, 20)
	require.InDeltaSlice(t, []float32{-1, 20, 0.2, 0}, in, 1e-6)

	in = tr.Observe(start.Add(1300*time.Millisecond), NoEcho, NoEcho)
	require.InDeltaSlice(t, []float32{-1, -1, 1.2, 1}, in, 1e-6)
}
