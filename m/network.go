package m

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// State is the lifecycle position of a Network.
type State int

const (
	Constructed State = iota
	Training
	Trained
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case Training:
		return "training"
	case Trained:
		return "trained"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Observer is notified after the baseline (epoch 0) and after every epoch.
type Observer interface {
	ObserveEpoch(epoch int, loss float64, examples int)
}

// Observers notifies each observer in order.
type Observers []Observer

func (obs Observers) ObserveEpoch(epoch int, loss float64, examples int) {
	for _, o := range obs {
		o.ObserveEpoch(epoch, loss, examples)
	}
}

// Option configures a Network at construction.
type Option func(*Network)

// WithSource seeds parameter initialisation.
func WithSource(src rand.Source) Option {
	return func(net *Network) {
		net.src = src
	}
}

// WithSeed is WithSource over a fresh source.
func WithSeed(seed uint64) Option {
	return WithSource(rand.NewSource(seed))
}

func WithLogger(logger zerolog.Logger) Option {
	return func(net *Network) {
		net.logger = logger
	}
}

func WithObserver(o Observer) Option {
	return func(net *Network) {
		net.observer = o
	}
}

// Network owns a fixed topology, its parameters and the loss recorded while training.
// A Network is not safe for concurrent use.
type Network struct {
	layers   []int
	weights  []*mat.Dense
	biases   []*mat.Dense
	history  []float64
	state    State
	src      rand.Source
	logger   zerolog.Logger
	observer Observer

	trainingStart time.Time
	trainingEnd   time.Time
}

// New validates layers and initialises the parameters.
func New(layers []int, opts ...Option) (*Network, error) {
	net := &Network{
		layers: append([]int(nil), layers...),
		logger: log.Logger,
		state:  Constructed,
	}
	for _, opt := range opts {
		opt(net)
	}
	if net.src == nil {
		net.src = rand.NewSource(uint64(time.Now().UnixNano()))
	}

	weights, biases, err := InitParams(net.layers, net.src)
	if err != nil {
		return nil, err
	}
	net.weights = weights
	net.biases = biases
	net.history = make([]float64, 0)
	return net, nil
}

func (net *Network) inputNum() int {
	return net.layers[0]
}

func (net *Network) outputNum() int {
	return net.layers[len(net.layers)-1]
}

// Train records the baseline loss, then runs one SGD step per line, in order, for every
// epoch and records the loss after each. Every line is checked before any update.
func (net *Network) Train(lines Lines, learningRate float64, epochs int) error {
	if epochs < 0 {
		return fmt.Errorf("%w: epochs must not be negative, got %d", ErrConfiguration, epochs)
	}
	if len(lines) == 0 {
		return fmt.Errorf("training: %w", ErrEmptyDataset)
	}
	if err := net.check(lines); err != nil {
		return err
	}

	inputs := make([]*mat.Dense, len(lines))
	targets := make([]*mat.Dense, len(lines))
	for i, line := range lines {
		inputs[i] = Column(line.Inputs)
		targets[i] = Column(line.Targets)
	}

	net.state = Training
	net.trainingStart = time.Now()
	net.logger.Info().
		Ints("layers", net.layers).
		Float64("rate", learningRate).
		Int("epochs", epochs).
		Int("examples", len(lines)).
		Msg("started training")

	if err := net.record(0, lines); err != nil {
		return err
	}
	for epoch := 1; epoch <= epochs; epoch++ {
		for i := range inputs {
			Step(net.weights, net.biases, inputs[i], targets[i], learningRate)
		}
		if err := net.record(epoch, lines); err != nil {
			return err
		}
	}

	net.trainingEnd = time.Now()
	net.state = Trained
	net.logger.Info().
		Dur("took", net.trainingEnd.Sub(net.trainingStart)).
		Msg("training complete")
	return nil
}

func (net *Network) record(epoch int, lines Lines) error {
	loss, err := DatasetLoss(net.weights, net.biases, lines)
	if err != nil {
		return err
	}
	net.history = append(net.history, loss)
	net.logger.Info().
		Int("epoch", epoch).
		Float64("loss", loss).
		Msg("epoch complete")
	if net.observer != nil {
		net.observer.ObserveEpoch(epoch, loss, len(lines))
	}
	return nil
}

func (net *Network) check(lines Lines) error {
	for i, line := range lines {
		if len(line.Inputs) != net.inputNum() {
			return ShapeError{Index: i, Field: "inputs", Got: len(line.Inputs), Want: net.inputNum()}
		}
		if len(line.Targets) != net.outputNum() {
			return ShapeError{Index: i, Field: "targets", Got: len(line.Targets), Want: net.outputNum()}
		}
	}
	return nil
}

// Forward exposes the full pass for x.
func (net *Network) Forward(inputData []float64) (Pass, error) {
	if len(inputData) != net.inputNum() {
		return Pass{}, ShapeError{Index: 0, Field: "inputs", Got: len(inputData), Want: net.inputNum()}
	}
	return Forward(net.weights, net.biases, Column(inputData)), nil
}

// Predict returns the index of the strongest output for inputData.
func (net *Network) Predict(inputData []float64) (int, error) {
	if len(inputData) != net.inputNum() {
		return 0, ShapeError{Index: 0, Field: "inputs", Got: len(inputData), Want: net.inputNum()}
	}
	return Predict(net.weights, net.biases, Column(inputData)), nil
}

// Loss is the dataset loss under the current parameters.
func (net *Network) Loss(lines Lines) (float64, error) {
	if err := net.check(lines); err != nil {
		return 0, err
	}
	return DatasetLoss(net.weights, net.biases, lines)
}

// Accuracy is the fraction of lines whose prediction matches the hot target.
func (net *Network) Accuracy(lines Lines) (float64, error) {
	if len(lines) == 0 {
		return 0, fmt.Errorf("accuracy: %w", ErrEmptyDataset)
	}
	if err := net.check(lines); err != nil {
		return 0, err
	}
	var correct int
	for _, line := range lines {
		if Predict(net.weights, net.biases, Column(line.Inputs)) == Argmax(Column(line.Targets)) {
			correct++
		}
	}
	return float64(correct) / float64(len(lines)), nil
}

func (net *Network) Layers() []int {
	return append([]int(nil), net.layers...)
}

// Weights returns copies of the weight matrices; weights[i] maps layer i to layer i+1.
func (net *Network) Weights() []*mat.Dense {
	return copyAll(net.weights)
}

func (net *Network) Biases() []*mat.Dense {
	return copyAll(net.biases)
}

// History returns the loss recorded so far: the baseline of each Train call followed by
// one value per epoch.
func (net *Network) History() []float64 {
	return append([]float64(nil), net.history...)
}

func (net *Network) State() State {
	return net.state
}

// TrainingTime is the duration of the last completed Train call.
func (net *Network) TrainingTime() time.Duration {
	return net.trainingEnd.Sub(net.trainingStart)
}
