package rover

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Limits of the ultrasonic ranger. Readings outside of them are reported as NoEcho.
const (
	// EchoTimeout is how long to wait for the echo pulse before giving up on a reading
	EchoTimeout = 30 * time.Millisecond
	// MinDistance is the closest distance in centimetres that the sensor reports reliably
	MinDistance float32 = 2
	// MaxDistance is the farthest distance in centimetres that the sensor reports reliably
	MaxDistance float32 = 400
	// NoEcho is the distance reported when there was no echo or the echo was out of range
	NoEcho float32 = -1

	// speedOfSound is in centimetres per microsecond
	speedOfSound = 0.034
)

// DistanceSensor measures the distance to the nearest obstacle in centimetres, or returns NoEcho
type DistanceSensor interface {
	Distance() float32
}

// EchoToDistance converts the width of an echo pulse to a distance in centimetres.
// The pulse covers the way to the obstacle and back, so the distance is half of what sound travels in that time.
func EchoToDistance(echo time.Duration) float32 {
	if echo <= 0 || echo >= EchoTimeout {
		return NoEcho
	}
	d := float32(float64(echo.Microseconds()) * speedOfSound / 2)
	if d < MinDistance || d > MaxDistance {
		return NoEcho
	}
	return d
}

// ReplaySensor is a DistanceSensor that returns previously recorded distances in order.
// Once the recording runs out it keeps returning NoEcho.
type ReplaySensor struct {
	readings []float32
	next     int
}

// NewReplaySensor returns a ReplaySensor that plays back the given readings
func NewReplaySensor(readings []float32) *ReplaySensor {
	return &ReplaySensor{readings: append([]float32(nil), readings...)}
}

// Distance returns the next recorded distance
func (r *ReplaySensor) Distance() float32 {
	if r.next >= len(r.readings) {
		return NoEcho
	}
	d := r.readings[r.next]
	r.next++
	return d
}

// Len returns the number of recorded readings
func (r *ReplaySensor) Len() int {
	return len(r.readings)
}

// Readings returns a copy of all of the recorded readings
func (r *ReplaySensor) Readings() []float32 {
	return append([]float32(nil), r.readings...)
}

// LoadReplay reads a recording of "left,right" distance rows in centimetres and returns a sensor for each side.
// A first row that does not parse as numbers is treated as a header and skipped.
func LoadReplay(r io.Reader) (left, right *ReplaySensor, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	var ls, rs []float32
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "reading replay")
		}
		l, lerr := strconv.ParseFloat(rec[0], 32)
		rt, rerr := strconv.ParseFloat(rec[1], 32)
		if lerr != nil || rerr != nil {
			if row == 0 {
				continue
			}
			return nil, nil, errors.Errorf("replay row %d: invalid distances %q", row+1, rec)
		}
		ls = append(ls, float32(l))
		rs = append(rs, float32(rt))
	}
	return NewReplaySensor(ls), NewReplaySensor(rs), nil
}
