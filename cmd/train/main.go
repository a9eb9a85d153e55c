// sgdnet-train: single-process trainer for the dense sigmoid network
//
// Usage:
//
//	sgdnet-train --train=data/mnist_train.csv --test=data/mnist_test.csv --epochs=4 --lr=0.046
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"sgdnet/m"
	"sgdnet/metrics"
	"sgdnet/utils"
)

var (
	configFile   = flag.String("config", "", "YAML config file, flags override its values")
	architecture = flag.String("arch", "784,60,60,10", "Layer sizes, input first")
	epochs       = flag.Int("epochs", 4, "Number of training epochs")
	learningRate = flag.Float64("lr", 0.046, "Learning rate")
	seed         = flag.Uint64("seed", 1, "Random seed")
	trainPath    = flag.String("train", "", "Training CSV (label,pixels...); synthetic data when empty")
	testPath     = flag.String("test", "", "Test CSV used for accuracy")
	limit        = flag.Int("limit", 0, "Use only the first N training lines (0 = all)")
	samples      = flag.Int("samples", 200, "Number of synthetic samples")
	historyFile  = flag.String("history", "", "Output loss history file (JSON)")
	metricsAddr  = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	verbose      = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if !*verbose {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	utils.Verbose = *verbose

	config, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log.Info().
		Ints("arch", config.Architecture).
		Float64("lr", config.LearningRate).
		Int("epochs", config.Epochs).
		Uint64("seed", config.Seed).
		Str("train", config.TrainPath).
		Msg("configuration")

	stats := &utils.TimingStats{}
	totalStart := time.Now()

	start := time.Now()
	lines, err := loadLines(config)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load training data")
	}
	stats.DataLoadingTime = time.Since(start)
	log.Info().Int("lines", len(lines)).Dur("took", stats.DataLoadingTime).Msg("loaded training data")

	observers := m.Observers{stats}
	if config.MetricsAddr != "" {
		training := metrics.NewTraining("train")
		if err := training.Register(prometheus.DefaultRegisterer); err != nil {
			log.Fatal().Err(err).Msg("could not register metrics")
		}
		observers = append(observers, training)
		go serveMetrics(config.MetricsAddr)
	}

	start = time.Now()
	net, err := m.New(config.Architecture, m.WithSeed(config.Seed), m.WithObserver(observers))
	if err != nil {
		log.Fatal().Err(err).Msg("could not build network")
	}
	stats.ModelInitTime = time.Since(start)

	if err := net.Train(lines, config.LearningRate, config.Epochs); err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}
	stats.TrainingTime = net.TrainingTime()

	history := &utils.History{
		Architecture: net.Layers(),
		LearningRate: config.LearningRate,
		Epochs:       config.Epochs,
		Loss:         net.History(),
	}

	start = time.Now()
	evalLines := lines
	if config.TestPath != "" {
		evalLines, err = readMNIST(config.TestPath, config.Architecture)
		if err != nil {
			log.Fatal().Err(err).Msg("could not load test data")
		}
	}
	accuracy, err := net.Accuracy(evalLines)
	if err != nil {
		log.Fatal().Err(err).Msg("could not evaluate network")
	}
	stats.EvaluationTime = time.Since(start)
	history.Accuracy = &accuracy
	log.Info().
		Float64("accuracy", accuracy*100).
		Bool("held_out", config.TestPath != "").
		Msg("evaluated network")

	stats.TotalTime = time.Since(totalStart)
	utils.PrintTimingStats(stats, config.Epochs*len(lines))

	if config.HistoryPath != "" {
		if err := utils.SaveHistory(config.HistoryPath, history); err != nil {
			log.Fatal().Err(err).Str("file", config.HistoryPath).Msg("could not save history")
		}
		log.Info().Str("file", config.HistoryPath).Msg("saved loss history")
	}
}

func loadConfig() (utils.Config, error) {
	config := utils.DefaultConfig()
	if *configFile != "" {
		var err error
		if config, err = utils.LoadConfig(*configFile); err != nil {
			return config, err
		}
	}

	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "arch":
			var arch []int
			if arch, err = utils.ParseArchitecture(*architecture); err == nil {
				config.Architecture = arch
			}
		case "epochs":
			config.Epochs = *epochs
		case "lr":
			config.LearningRate = *learningRate
		case "seed":
			config.Seed = *seed
		case "train":
			config.TrainPath = *trainPath
		case "test":
			config.TestPath = *testPath
		case "limit":
			config.Limit = *limit
		case "history":
			config.HistoryPath = *historyFile
		case "metrics-addr":
			config.MetricsAddr = *metricsAddr
		}
	})
	if err != nil {
		return config, fmt.Errorf("parsing architecture: %w", err)
	}
	return config, utils.ValidateConfig(&config)
}

func loadLines(config utils.Config) (m.Lines, error) {
	var lines m.Lines
	if config.TrainPath == "" {
		lines = generateData(config.Architecture, *samples, config.Seed)
	} else {
		var err error
		if lines, err = readMNIST(config.TrainPath, config.Architecture); err != nil {
			return nil, err
		}
	}
	if config.Limit > 0 {
		lines = m.LineSplitter(config.Limit, 0, lines)
	}
	if len(lines) == 0 {
		return nil, errors.New("no training lines")
	}
	return lines, nil
}

func readMNIST(filename string, arch []int) (m.Lines, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := m.GetLinesMNIST(f, arch[0], arch[len(arch)-1])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return lines, nil
}

// generateData draws inputs in [0,1) and labels each line with the input block that
// has the largest sum, so the task is learnable.
func generateData(arch []int, n int, seed uint64) m.Lines {
	inputDim, outputDim := arch[0], arch[len(arch)-1]
	rnd := rand.New(rand.NewSource(seed))
	lines := make(m.Lines, n)
	for i := range lines {
		inputs := make([]float64, inputDim)
		sums := make([]float64, outputDim)
		for j := range inputs {
			inputs[j] = rnd.Float64()
			sums[j*outputDim/inputDim] += inputs[j]
		}
		best := 0
		for k := range sums {
			if sums[k] > sums[best] {
				best = k
			}
		}
		targets := make([]float64, outputDim)
		targets[best] = 1
		lines[i] = m.Line{Inputs: inputs, Targets: targets}
	}
	return lines
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics server stopped")
	}
}
