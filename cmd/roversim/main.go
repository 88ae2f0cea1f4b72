// Command roversim replays recorded distance readings through the rover controller.
// It can first train the network to imitate the reference obstacle-avoidance policy,
// and writes the same CSV log that the robot prints on its serial port.
//
// Usage:
//
//	roversim -replay testdata/readings.csv [-epochs 50 -lr 1e-5] [-dump]
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/kkoreilly/ffnet"
	"github.com/kkoreilly/ffnet/rover"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	replayFile = flag.String("replay", "", "CSV file of recorded left,right distances in cm (required)")
	layersStr  = flag.String("layers", "4 8 4", "Number of units on each layer")
	hiddenStr  = flag.String("hidden", "relu", "Hidden activation: identity, relu, sigmoid, tanh")
	outputStr  = flag.String("output", "sigmoid", "Output activation: identity, relu, sigmoid, tanh")
	epochs     = flag.Int("epochs", 0, "Number of training epochs over the replay before running it")
	lr         = flag.Float64("lr", 1e-5, "Learning rate")
	lossStr    = flag.String("loss", "mse", "Error function to report while training: mse, mae, cross-entropy")
	initValue  = flag.Float64("init", float64(ffnet.DefaultInitialValue), "Value that every weight and bias starts at")
	exact      = flag.Bool("exact", false, "Apply activation derivatives when computing gradients")
	dump       = flag.Bool("dump", false, "Print the weight matrices and biases after training")
	interval   = flag.Duration("interval", rover.DefaultInterval, "Simulated time between two control steps")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("roversim: ")
	if err := run(os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(out io.Writer) error {
	if *replayFile == "" {
		flag.Usage()
		return errors.New("-replay is required")
	}
	layers, err := ffnet.ParseTopology(*layersStr)
	if err != nil {
		return err
	}
	hidden, err := ffnet.ParseActivation(*hiddenStr)
	if err != nil {
		return err
	}
	output, err := ffnet.ParseActivation(*outputStr)
	if err != nil {
		return err
	}
	kind, err := ffnet.ParseErrorFunc(*lossStr)
	if err != nil {
		return err
	}
	opts := []ffnet.Option{ffnet.WithInitialValue(float32(*initValue))}
	if *exact {
		opts = append(opts, ffnet.WithActivationDerivatives())
	}
	net, err := ffnet.NewNetwork(layers, hidden, output, opts...)
	if err != nil {
		return err
	}
	if net.NumInputs() != rover.NumInputs {
		return errors.Errorf("the input layer needs %d units, got %d", rover.NumInputs, net.NumInputs())
	}

	f, err := os.Open(*replayFile)
	if err != nil {
		return errors.Wrap(err, "opening replay")
	}
	left, right, err := rover.LoadReplay(f)
	f.Close()
	if err != nil {
		return err
	}
	log.Printf("loaded %d readings from %s", left.Len(), *replayFile)

	if *epochs > 0 {
		inputs, targets := rover.PolicySamples(left.Readings(), right.Readings(), *interval)
		if err := train(net, inputs, targets, kind); err != nil {
			return err
		}
	}
	if *dump {
		if err := dumpParameters(net); err != nil {
			return err
		}
	}

	motors := make([]rover.Motor, net.NumOutputs())
	for i := range motors {
		motors[i] = &rover.StateMotor{}
	}
	c := &rover.Controller{
		Net:    net,
		Left:   left,
		Right:  right,
		Motors: motors,
		Out:    out,
	}
	// step once per reading with a simulated clock instead of waiting for real ticks
	now := time.Now()
	for i := 0; i < left.Len(); i++ {
		if _, err := c.Step(now); err != nil {
			return err
		}
		now = now.Add(*interval)
	}
	return nil
}

// train runs the given number of epochs of single-sample gradient descent and logs the mean error of each epoch
func train(net *ffnet.Network, inputs, targets [][]float32, kind ffnet.ErrorFunc) error {
	if len(inputs) == 0 {
		return errors.New("no samples to train on")
	}
	errs := make([]float64, len(inputs))
	for epoch := 1; epoch <= *epochs; epoch++ {
		for i := range inputs {
			out, err := net.Forward(inputs[i])
			if err != nil {
				return err
			}
			e, err := ffnet.ComputeError(out, targets[i], kind)
			if err != nil {
				return err
			}
			errs[i] = float64(e)
			if err := net.TrainStep(inputs[i], targets[i], float32(*lr)); err != nil {
				return err
			}
		}
		log.Printf("epoch %d of %d: mean %v %.6f (max %.6f)", epoch, *epochs, kind, floats.Sum(errs)/float64(len(errs)), floats.Max(errs))
	}
	return nil
}

// dumpParameters logs the weights and biases of every connection
func dumpParameters(net *ffnet.Network) error {
	for k, c := range net.Connections() {
		w, err := net.WeightMatrix(k)
		if err != nil {
			return err
		}
		b, err := net.BiasVector(k)
		if err != nil {
			return err
		}
		log.Printf("connection %d (%d -> %d, %v) weights:\n%v", k, c.InSize, c.OutSize, c.Activation, mat.Formatted(w, mat.Prefix(""), mat.Squeeze()))
		log.Printf("connection %d biases:\n%v", k, mat.Formatted(b.T(), mat.Squeeze()))
	}
	return nil
}
