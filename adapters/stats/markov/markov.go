package markov

import (
	"math"

	"gostoch/domain/core"
	"gostoch/domain/dist"
	"gostoch/domain/stats"
)

// maxChainEnumeration caps the size of the full state-space × step-count
// cartesian product enumerated for the chain-rule approximation. Beyond the
// cap the approximation is built over observed sequences only.
const maxChainEnumeration = 1 << 20

// Analyzer runs the Markov-chain diagnostics pipeline over a panel: per-step
// TPMs, homogeneity, representative TPM, Markovian fit and weak
// stationarity.
type Analyzer struct {
	policy stats.Policy
}

// NewAnalyzer creates an analyzer under the given policy.
func NewAnalyzer(policy stats.Policy) *Analyzer {
	return &Analyzer{policy: policy}
}

// Analyze produces the complete time-series report. Insufficient history
// yields empty TPMs and degenerate (zero) fit distances, never an error.
func (a *Analyzer) Analyze(p Panel) (*stats.TimeSeriesReport, error) {
	if p.Size() == 0 || p.Steps() == 0 {
		return nil, core.ErrEmptyDataset
	}

	states := p.States()
	report := &stats.TimeSeriesReport{
		ID:         core.ReportID(core.NewID()),
		CreatedAt:  core.Now(),
		Policy:     a.policy,
		Instances:  p.Size(),
		TimeSteps:  p.Steps(),
		TimeLabels: p.TimeLabels,
		States:     states,
	}

	report.StepTPMs = a.stepTPMs(p)
	a.homogeneity(report)
	a.representative(report)
	a.markovianFit(p, report, states)
	report.Stationarity = stationarity(p)

	return report, nil
}

// stepTPMs estimates the first-order TPM for every transition step t-1 → t.
// A step with no observed history returns an empty TPM.
func (a *Analyzer) stepTPMs(p Panel) []stats.TPM {
	if p.Steps() < 2 {
		return nil
	}
	tpms := make([]stats.TPM, 0, p.Steps()-1)
	for t := 1; t < p.Steps(); t++ {
		tpms = append(tpms, estimateTPM(p, t))
	}
	return tpms
}

// estimateTPM groups instances by their state at t-1 and counts transitions
// to their state at t, normalizing per from-state.
func estimateTPM(p Panel, t int) stats.TPM {
	tpm := stats.NewTPM()
	if t < 1 || t >= p.Steps() {
		return tpm
	}

	counts := make(map[string]map[string]float64)
	totals := make(map[string]float64)
	for _, inst := range p.Instances {
		from, to := inst[t-1], inst[t]
		if counts[from] == nil {
			counts[from] = make(map[string]float64)
		}
		counts[from][to]++
		totals[from]++
	}

	for from, row := range counts {
		normalized := make(map[string]float64, len(row))
		for to, c := range row {
			normalized[to] = c / totals[from]
		}
		tpm.Rows[from] = normalized
	}
	return tpm
}

// tpmPMF casts a TPM as a single 2-ary PMF over (from, to), zero-filled for
// unobserved transitions and normalized by the observed from-state count.
// This one conversion backs both the pairwise Hellinger tests and the GJS
// test, so the two homogeneity criteria always see the same distribution.
func tpmPMF(t stats.TPM) dist.PMF {
	pmf := dist.NewPMF(2)
	for from, row := range t.Rows {
		for to, p := range row {
			pmf.P[dist.Tuple{from, to}.Key()] = p
		}
	}
	return pmf.Normalized()
}

// homogeneity computes all pairwise Hellinger distances between step TPMs
// plus one GJS distance over all of them, and applies the fixed heuristic
// decision rule.
func (a *Analyzer) homogeneity(report *stats.TimeSeriesReport) {
	n := len(report.StepTPMs)
	if n == 0 {
		report.IsHomogeneous = true
		return
	}

	pmfs := make([]dist.PMF, n)
	for i, tpm := range report.StepTPMs {
		pmfs[i] = tpmPMF(tpm)
	}

	homogeneous := true
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			h := dist.Hellinger(pmfs[i], pmfs[j])
			report.PairwiseDistances = append(report.PairwiseDistances,
				stats.StepDistance{StepI: i, StepJ: j, Hellinger: h})
			if h > a.policy.HomogeneityHellingerMax {
				homogeneous = false
			}
		}
	}

	report.GJSDistance = dist.JSDistance(pmfs...)
	if report.GJSDistance > a.policy.HomogeneityGJSMax {
		homogeneous = false
	}
	report.IsHomogeneous = homogeneous
}

// representative selects the first step's TPM when the process looks
// homogeneous, otherwise averages the per-step TPMs entrywise with uniform
// weight. Missing rows contribute zero to the average; averaged rows are
// renormalized to restore the row-sum invariant.
func (a *Analyzer) representative(report *stats.TimeSeriesReport) {
	if len(report.StepTPMs) == 0 {
		report.RepresentativeTPM = stats.NewTPM()
		return
	}
	if report.IsHomogeneous {
		report.RepresentativeTPM = report.StepTPMs[0]
		return
	}

	report.Averaged = true
	sum := make(map[string]map[string]float64)
	for _, tpm := range report.StepTPMs {
		for from, row := range tpm.Rows {
			if sum[from] == nil {
				sum[from] = make(map[string]float64)
			}
			for to, p := range row {
				sum[from][to] += p
			}
		}
	}

	avg := stats.NewTPM()
	for from, row := range sum {
		total := 0.0
		for _, p := range row {
			total += p
		}
		if total <= dist.ProbEpsilon {
			continue
		}
		// Dividing by the row total folds the uniform step-average and the
		// row renormalization into one step.
		normalized := make(map[string]float64, len(row))
		for to, p := range row {
			normalized[to] = p / total
		}
		avg.Rows[from] = normalized
	}
	report.RepresentativeTPM = avg
}

// markovianFit compares the observed full-history joint distribution
// against the chain-rule approximation P(X₁)·∏P(Xₜ|Xₜ₋₁) built from the
// initial-state marginal and the representative TPM.
func (a *Analyzer) markovianFit(p Panel, report *stats.TimeSeriesReport, states []string) {
	steps := p.Steps()
	if steps < 2 || report.RepresentativeTPM.IsEmpty() {
		return
	}

	// True joint over observed instance sequences.
	truth := dist.NewPMF(steps)
	for _, inst := range p.Instances {
		truth.P[dist.Tuple(inst).Key()]++
	}
	inv := 1.0 / float64(p.Size())
	for k := range truth.P {
		truth.P[k] *= inv
	}

	initial := initialMarginal(p)

	// Enumerate the full cartesian product of the state space across all
	// steps when tractable, otherwise fall back to observed sequences.
	approx := dist.NewPMF(steps)
	if enumerationSize(len(states), steps) <= maxChainEnumeration {
		seq := make(dist.Tuple, steps)
		enumerateSequences(states, seq, 0, func(t dist.Tuple) {
			if prob := chainRuleProb(t, initial, report.RepresentativeTPM); prob > 0 {
				key := make(dist.Tuple, len(t))
				copy(key, t)
				approx.P[key.Key()] = prob
			}
		})
	} else {
		for k := range truth.P {
			if prob := chainRuleProb(k.Tuple(), initial, report.RepresentativeTPM); prob > 0 {
				approx.P[k] = prob
			}
		}
	}

	// Renormalize when numerical drift exceeds the tolerance.
	if s := approx.Sum(); math.Abs(s-1) > a.policy.ChainRuleDriftTolerance {
		approx = approx.Normalized()
	}

	report.MarkovHellinger = dist.Hellinger(truth, approx)
	report.MarkovJSDistance = dist.JSDistance(truth, approx)
}

// initialMarginal estimates P(X₁) from the first cross-section.
func initialMarginal(p Panel) map[string]float64 {
	out := make(map[string]float64)
	for _, state := range p.CrossSection(0) {
		out[state]++
	}
	inv := 1.0 / float64(p.Size())
	for s := range out {
		out[s] *= inv
	}
	return out
}

// chainRuleProb evaluates P(X₁)·∏P(Xₜ|Xₜ₋₁) for one sequence.
func chainRuleProb(seq dist.Tuple, initial map[string]float64, tpm stats.TPM) float64 {
	prob := initial[seq.At(0)]
	for t := 1; t < len(seq) && prob > 0; t++ {
		prob *= tpm.Prob(seq.At(t-1), seq.At(t))
	}
	return prob
}

func enumerationSize(states, steps int) int {
	size := 1
	for i := 0; i < steps; i++ {
		size *= states
		if size > maxChainEnumeration {
			return size
		}
	}
	return size
}

func enumerateSequences(states []string, seq dist.Tuple, pos int, emit func(dist.Tuple)) {
	if pos == len(seq) {
		emit(seq)
		return
	}
	for _, s := range states {
		seq[pos] = s
		enumerateSequences(states, seq, pos+1, emit)
	}
}
