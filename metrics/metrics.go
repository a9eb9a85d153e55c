package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Training exports the progress of a network's Train calls.
type Training struct {
	Loss     prometheus.Gauge
	Epochs   prometheus.Counter
	Examples prometheus.Counter
}

func NewTraining(name string) *Training {
	labels := prometheus.Labels{"network": name}
	return &Training{
		Loss: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "sgdnet",
			Name:        "dataset_loss",
			Help:        "Mean squared error over the training set after the last epoch.",
			ConstLabels: labels,
		}),
		Epochs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "sgdnet",
			Name:        "epochs_total",
			Help:        "Completed training epochs.",
			ConstLabels: labels,
		}),
		Examples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "sgdnet",
			Name:        "examples_total",
			Help:        "Single-example gradient steps applied.",
			ConstLabels: labels,
		}),
	}
}

// Register adds every collector to reg.
func (t *Training) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{t.Loss, t.Epochs, t.Examples} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveEpoch records the loss of epoch. Epoch 0 is the baseline and applies no steps.
func (t *Training) ObserveEpoch(epoch int, loss float64, examples int) {
	t.Loss.Set(loss)
	if epoch == 0 {
		return
	}
	t.Epochs.Inc()
	t.Examples.Add(float64(examples))
}
