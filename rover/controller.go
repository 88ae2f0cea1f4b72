// Package rover connects a feedforward network to a two-sensor, four-motor robot:
// it turns distance readings into network inputs, turns network outputs into
// motor states, and runs the fixed-interval control loop that logs every step as CSV.
package rover

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/kkoreilly/ffnet"
	"github.com/pkg/errors"
)

// DefaultInterval is the time between two control steps
const DefaultInterval = 100 * time.Millisecond

// Controller reads both distance sensors, runs the network and drives the motors once per step.
// The network is owned by the controller while it runs.
type Controller struct {
	Net      *ffnet.Network // the network mapping inputs to motor outputs; it needs NumInputs inputs and one output per motor
	Left     DistanceSensor // the sensor on the left side
	Right    DistanceSensor // the sensor on the right side
	Motors   []Motor        // the motors, in the order of the network outputs
	Interval time.Duration  // the time between two steps in Run; DefaultInterval if 0
	Out      io.Writer      // where the CSV log of every step goes; nothing is logged if nil
	Logger   *log.Logger    // where operational messages go; log.Default() if nil

	tracker   *Tracker
	csv       *csv.Writer
	lostLeft  bool
	lostRight bool
}

// Step runs one control step at the given time and returns the motor states it set
func (c *Controller) Step(now time.Time) ([]bool, error) {
	if c.tracker == nil {
		c.tracker = NewTracker(now)
	}
	left := c.Left.Distance()
	right := c.Right.Distance()
	c.noteDropout("left", left, &c.lostLeft)
	c.noteDropout("right", right, &c.lostRight)

	input := c.tracker.Observe(now, left, right)
	outputs, err := c.Net.Forward(input)
	if err != nil {
		return nil, errors.Wrap(err, "running network")
	}
	states, err := Actuate(outputs, c.Motors)
	if err != nil {
		return nil, err
	}
	if err := c.writeRow(input, states); err != nil {
		return nil, err
	}
	return states, nil
}

// Run calls Step every Interval until ctx is done, and then returns ctx.Err().
// It stops early with the error of a failed step.
func (c *Controller) Run(ctx context.Context) error {
	interval := c.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if _, err := c.Step(now); err != nil {
				return err
			}
		}
	}
}

// noteDropout logs when a sensor stops or starts giving valid readings
func (c *Controller) noteDropout(side string, d float32, lost *bool) {
	switch {
	case d <= 0 && !*lost:
		c.logger().Printf("%s sensor: no echo", side)
		*lost = true
	case d > 0 && *lost:
		c.logger().Printf("%s sensor: echo back at %.1f cm", side, d)
		*lost = false
	}
}

func (c *Controller) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// writeRow writes one CSV row with the inputs and motor states of a step, preceded by the header on the first call
func (c *Controller) writeRow(input []float32, states []bool) error {
	if c.Out == nil {
		return nil
	}
	if c.csv == nil {
		c.csv = csv.NewWriter(c.Out)
		header := []string{"left_distance", "right_distance", "left_duration", "right_duration"}
		for i := range states {
			header = append(header, "IN"+strconv.Itoa(i+1))
		}
		if err := c.csv.Write(header); err != nil {
			return errors.Wrap(err, "writing log header")
		}
	}
	row := make([]string, 0, len(input)+len(states))
	for _, v := range input {
		row = append(row, strconv.FormatFloat(float64(v), 'f', 2, 32))
	}
	for _, on := range states {
		if on {
			row = append(row, "1")
		} else {
			row = append(row, "0")
		}
	}
	if err := c.csv.Write(row); err != nil {
		return errors.Wrap(err, "writing log row")
	}
	c.csv.Flush()
	return errors.Wrap(c.csv.Error(), "writing log row")
}
