package markov

import (
	"strconv"

	"github.com/montanaflynn/stats"

	domstats "gostoch/domain/stats"
)

// stationarity computes each time step's cross-sectional sample mean and
// (n−1)-denominator sample variance. Steps whose states are not
// numeric-coercible report absent values rather than failing the run.
func stationarity(p Panel) []domstats.StepStats {
	out := make([]domstats.StepStats, 0, p.Steps())
	for t := 0; t < p.Steps(); t++ {
		step := domstats.StepStats{Time: p.TimeLabels[t]}

		values, ok := numericCrossSection(p.CrossSection(t))
		if ok {
			if mean, err := stats.Mean(values); err == nil {
				step.Mean = &mean
			}
			if len(values) > 1 {
				if variance, err := stats.SampleVariance(values); err == nil {
					step.Variance = &variance
				}
			}
		}
		out = append(out, step)
	}
	return out
}

func numericCrossSection(states []string) ([]float64, bool) {
	out := make([]float64, len(states))
	for i, s := range states {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}
