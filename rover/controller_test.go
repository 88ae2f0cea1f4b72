package rover

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/kkoreilly/ffnet"
	"github.com/stretchr/testify/require"
)

func newTestNetwork(t *testing.T, layers ...int) *ffnet.Network {
	t.Helper()
	n, err := ffnet.NewNetwork(layers, ffnet.Rectifier, ffnet.Logistic)
	require.NoError(t, err)
	return n
}

func newMotors(num int) ([]*StateMotor, []Motor) {
	motors := make([]*StateMotor, num)
	ms := make([]Motor, num)
	for i := range motors {
		motors[i] = &StateMotor{}
		ms[i] = motors[i]
	}
	return motors, ms
}

func TestControllerStep(t *testing.T) {
	var out, logs bytes.Buffer
	motors, ms := newMotors(4)
	c := &Controller{
		Net:    newTestNetwork(t, 4, 8, 4),
		Left:   NewReplaySensor([]float32{10, NoEcho}),
		Right:  NewReplaySensor([]float32{NoEcho, NoEcho}),
		Motors: ms,
		Out:    &out,
		Logger: log.New(&logs, "", 0),
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// input = {10, -1, 0, 0}
	// hidden net input = 0.1(10-1) + 0.1 = 1.0, output net input = 0.1(8*1.0) + 0.1 = 0.9
	// Logistic(0.9) ≈ 0.711 > 0.5, so every motor is on
	states, err := c.Step(start)
	require.NoError(t, err)
	require.Equal(t, []bool{true, true, true, true}, states)
	for i, m := range motors {
		require.True(t, m.On, "motor %d", i)
	}

	// input = {-1, -1, 0.1, 0.1}
	// hidden net input = 0.1(-2+0.2) + 0.1 = -0.08, which the rectifier turns into 0
	// output net input = 0.1, Logistic(0.1) ≈ 0.525 > 0.5, so every motor stays on
	states, err = c.Step(start.Add(100 * time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, []bool{true, true, true, true}, states)

	want := "left_distance,right_distance,left_duration,right_duration,IN1,IN2,IN3,IN4\n" +
		"10.00,-1.00,0.00,0.00,1,1,1,1\n" +
		"-1.00,-1.00,0.10,0.10,1,1,1,1\n"
	require.Equal(t, want, out.String())
	require.Equal(t, "right sensor: no echo\nleft sensor: no echo\n", logs.String())
}

func TestControllerStepMotorsOff(t *testing.T) {
	n := newTestNetwork(t, 4, 2, 4)
	// strongly negative output biases switch everything off
	require.NoError(t, n.LoadParameters(
		[][]float32{make([]float32, 8), make([]float32, 8)},
		[][]float32{{0, 0}, {-10, -10, -10, 10}},
	))
	motors, ms := newMotors(4)
	c := &Controller{
		Net:    n,
		Left:   NewReplaySensor([]float32{100}),
		Right:  NewReplaySensor([]float32{100}),
		Motors: ms,
	}
	states, err := c.Step(time.Now())
	require.NoError(t, err)
	require.Equal(t, []bool{false, false, false, true}, states)
	require.True(t, motors[3].On)
}

func TestControllerStepErrors(t *testing.T) {
	_, ms := newMotors(3)
	c := &Controller{
		Net:    newTestNetwork(t, 4, 8, 4),
		Left:   NewReplaySensor([]float32{10}),
		Right:  NewReplaySensor([]float32{10}),
		Motors: ms,
	}
	_, err := c.Step(time.Now())
	require.ErrorIs(t, err, ErrMotorCount)

	_, ms = newMotors(4)
	c = &Controller{
		Net:    newTestNetwork(t, 3, 4),
		Left:   NewReplaySensor(nil),
		Right:  NewReplaySensor(nil),
		Motors: ms,
		Logger: log.New(&bytes.Buffer{}, "", 0),
	}
	_, err = c.Step(time.Now())
	require.ErrorIs(t, err, ffnet.ErrInputSizeMismatch)
}

func TestControllerRun(t *testing.T) {
	var steps int
	ms := make([]Motor, 4)
	for i := range ms {
		idx := i
		ms[i] = MotorFunc(func(on bool) {
			if idx == 0 {
				steps++
			}
		})
	}
	c := &Controller{
		Net:      newTestNetwork(t, 4, 8, 4),
		Left:     NewReplaySensor([]float32{50, 50, 50}),
		Right:    NewReplaySensor([]float32{50, 50, 50}),
		Motors:   ms,
		Interval: 10 * time.Millisecond,
		Logger:   log.New(&bytes.Buffer{}, "", 0),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := c.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Greater(t, steps, 0)
}

func TestControllerRunStopsOnError(t *testing.T) {
	_, ms := newMotors(2)
	c := &Controller{
		Net:      newTestNetwork(t, 4, 8, 4),
		Left:     NewReplaySensor(nil),
		Right:    NewReplaySensor(nil),
		Motors:   ms,
		Interval: time.Millisecond,
		Logger:   log.New(&bytes.Buffer{}, "", 0),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := c.Run(ctx)
	require.ErrorIs(t, err, ErrMotorCount)
}
