// sgdnet-pca: principal component summary of an MNIST-style CSV
//
// Usage:
//
//	sgdnet-pca --data=data/mnist_train.csv --k=10
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sgdnet/m"
	"sgdnet/pca"
)

var (
	dataPath  = flag.String("data", "", "CSV file (label,pixels...)")
	inputNum  = flag.Int("inputs", 784, "Pixels per line")
	outputNum = flag.Int("classes", 10, "Number of labels")
	k         = flag.Int("k", 10, "Number of components to keep")
	limit     = flag.Int("limit", 0, "Use only the first N lines (0 = all)")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if *dataPath == "" {
		log.Fatal().Msg("--data is required")
	}

	f, err := os.Open(*dataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open data")
	}
	lines, err := m.GetLinesMNIST(f, *inputNum, *outputNum)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Str("file", *dataPath).Msg("could not read data")
	}
	if *limit > 0 {
		lines = m.LineSplitter(*limit, 0, lines)
	}

	x, err := pca.FromRows(lines.Features())
	if err != nil {
		log.Fatal().Err(err).Msg("could not build data matrix")
	}
	start := time.Now()
	res, err := pca.Fit(x, *k)
	if err != nil {
		log.Fatal().Err(err).Msg("pca failed")
	}
	log.Info().Int("lines", len(lines)).Dur("took", time.Since(start)).Msg("fitted components")

	cum := res.Cumulative()
	fmt.Printf("%-10s %-14s %-10s %-10s\n", "component", "variance", "ratio", "cumulative")
	for i := range res.Ratio {
		fmt.Printf("%-10d %-14.6f %-10.4f %-10.4f\n", i+1, res.Variance[i], res.Ratio[i], cum[i])
	}
}
