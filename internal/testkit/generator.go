package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"gostoch/adapters/stats/markov"
	"gostoch/domain/sample"
)

// GeneratorConfig configures the synthetic data generators
type GeneratorConfig struct {
	Rows  int     `json:"rows"`
	Noise float64 `json:"noise"`
	Seed  int64   `json:"seed"`
}

// DefaultConfig returns sensible defaults for synthetic data generation
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows:  200,
		Noise: 0.25,
		Seed:  42,
	}
}

// Generator produces deterministic synthetic samples and panels for tests
// and demos.
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a seeded generator
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// CorrelatedPair generates two numeric variables where y tracks x up to the
// configured noise level.
func (g *Generator) CorrelatedPair() (sample.Sample, error) {
	xs := make([]string, g.config.Rows)
	ys := make([]string, g.config.Rows)
	for i := range xs {
		x := g.rng.NormFloat64()
		y := x + g.config.Noise*g.rng.NormFloat64()
		xs[i] = formatNumeric(x)
		ys[i] = formatNumeric(y)
	}
	return sample.New([]sample.RandomVariable{
		{Key: "x", Name: "x", Values: xs, Type: sample.Numerical},
		{Key: "y", Name: "y", Values: ys, Type: sample.Numerical},
	})
}

// IndependentPair generates two numeric variables drawn independently.
func (g *Generator) IndependentPair() (sample.Sample, error) {
	xs := make([]string, g.config.Rows)
	ys := make([]string, g.config.Rows)
	for i := range xs {
		xs[i] = formatNumeric(g.rng.NormFloat64())
		ys[i] = formatNumeric(g.rng.NormFloat64())
	}
	return sample.New([]sample.RandomVariable{
		{Key: "x", Name: "x", Values: xs, Type: sample.Numerical},
		{Key: "y", Name: "y", Values: ys, Type: sample.Numerical},
	})
}

// CategoricalPair generates a nominal variable and a numeric variable whose
// mean shifts by category. Useful for conditional distribution and Cramer's V
// fixtures.
func (g *Generator) CategoricalPair(categories []string) (sample.Sample, error) {
	if len(categories) == 0 {
		categories = []string{"low", "mid", "high"}
	}
	cs := make([]string, g.config.Rows)
	ys := make([]string, g.config.Rows)
	for i := range cs {
		idx := g.rng.Intn(len(categories))
		cs[i] = categories[idx]
		ys[i] = formatNumeric(float64(idx) + g.config.Noise*g.rng.NormFloat64())
	}
	return sample.New([]sample.RandomVariable{
		{Key: "group", Name: "group", Values: cs, Type: sample.Nominal},
		{Key: "response", Name: "response", Values: ys, Type: sample.Numerical},
	})
}

// HomogeneousPanel generates a panel of state sequences driven by a single
// transition matrix, so every per-step TPM estimates the same process.
func (g *Generator) HomogeneousPanel(states []string, tpm map[string]map[string]float64, steps, instances int) (markov.Panel, error) {
	if steps < 2 {
		return markov.Panel{}, fmt.Errorf("panel needs at least 2 steps, got %d", steps)
	}
	labels := make([]string, steps)
	for t := range labels {
		labels[t] = fmt.Sprintf("t%d", t+1)
	}
	rows := make([][]string, instances)
	for i := range rows {
		seq := make([]string, steps)
		seq[0] = states[g.rng.Intn(len(states))]
		for t := 1; t < steps; t++ {
			seq[t] = g.nextState(states, tpm, seq[t-1])
		}
		rows[i] = seq
	}
	return markov.NewPanel(labels, rows)
}

func (g *Generator) nextState(states []string, tpm map[string]map[string]float64, from string) string {
	row, ok := tpm[from]
	if !ok {
		return states[g.rng.Intn(len(states))]
	}
	u := g.rng.Float64()
	acc := 0.0
	for _, to := range states {
		acc += row[to]
		if u < acc {
			return to
		}
	}
	return states[len(states)-1]
}

func formatNumeric(v float64) string {
	// Bucket to one decimal so the empirical support stays small enough for
	// PMF-based metrics.
	return fmt.Sprintf("%.1f", math.Round(v*10)/10)
}
