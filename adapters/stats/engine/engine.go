package engine

import (
	"gostoch/adapters/stats/measures"
	"gostoch/domain/core"
	"gostoch/domain/dist"
	"gostoch/domain/sample"
	"gostoch/domain/stats"
	"gostoch/domain/theory"
)

// StatsEngine composes the estimators, measures and model evaluator into a
// full cross-sectional report. One Analyze call is one deterministic pass
// over an immutable sample snapshot; nothing is cached between runs.
type StatsEngine struct {
	policy   stats.Policy
	measures *measures.MeasureEngine
}

// NewStatsEngine creates an engine under the given metric policy.
func NewStatsEngine(policy stats.Policy) *StatsEngine {
	return &StatsEngine{
		policy:   policy,
		measures: measures.NewMeasureEngine(policy),
	}
}

// Analyze produces the complete report: per-variable metrics, all pairwise
// metrics, both-direction conditional distributions, and per-model fits.
// Models that fail validation appear as error-only fit records; everything
// else proceeds unaffected.
func (e *StatsEngine) Analyze(s sample.Sample, models []*theory.TheoreticalModel) (*stats.Report, error) {
	if s.Size() == 0 {
		return nil, core.ErrEmptyDataset
	}

	joint := s.Joint()

	// Validate models once; invalid ones are excluded from comparisons but
	// still produce a fit record through Evaluate.
	fits := make([]stats.ModelFitResult, 0, len(models))
	type validModel struct {
		model *theory.TheoreticalModel
		pmf   dist.PMF
	}
	valid := make([]validModel, 0, len(models))
	for _, m := range models {
		fit := theory.Evaluate(m, s, joint)
		fits = append(fits, fit)
		if fit.Error == "" {
			valid = append(valid, validModel{model: m, pmf: m.PMF()})
		}
	}

	report := &stats.Report{
		ID:          core.ReportID(core.NewID()),
		CreatedAt:   core.Now(),
		SampleSize:  s.Size(),
		Fingerprint: s.Fingerprint(),
		Policy:      e.policy,
		ModelFits:   fits,
	}

	for i, v := range s.Variables {
		vr := stats.VariableReport{
			Key:          v.Key,
			Name:         v.Name,
			Type:         v.Type,
			Distribution: dist.ToDistribution(dist.Marginal(joint, []int{i}), v.Ordering()),
		}
		vr.Empirical = e.variableMetrics(v, vr.Distribution)

		for _, vm := range valid {
			marginal := dist.Marginal(vm.pmf, []int{i})
			d := dist.ToDistribution(marginal, v.Ordering())
			if vr.Theoretical == nil {
				vr.Theoretical = make(map[core.ModelID]stats.VariableMetrics)
			}
			vr.Theoretical[vm.model.ID] = e.variableMetrics(v, d)
		}
		report.Variables = append(report.Variables, vr)
	}

	for i := 0; i < s.Arity(); i++ {
		for j := i + 1; j < s.Arity(); j++ {
			x, y := s.Variables[i], s.Variables[j]
			pairKey := core.PairKey(x.Key, y.Key)

			pr := stats.PairwiseResult{
				PairKey:   pairKey,
				X:         x.Key,
				Y:         y.Key,
				Empirical: e.measures.Compute(x, y),
			}
			for _, vm := range valid {
				if pr.ByModel == nil {
					pr.ByModel = make(map[core.ModelID]stats.PairwiseMetrics)
				}
				pairPMF := dist.Marginal(vm.pmf, []int{i, j})
				pr.ByModel[vm.model.ID] = e.measures.ComputeFromPMF(pairPMF, x, y)
			}
			report.Pairwise = append(report.Pairwise, pr)

			report.Conditionals = append(report.Conditionals,
				e.conditional(pairKey, x, y),
				e.conditional(pairKey, y, x),
			)
		}
	}

	return report, nil
}

// conditional computes the distributions of target given each value of the
// conditioning variable.
func (e *StatsEngine) conditional(pairKey string, target, given sample.RandomVariable) stats.ConditionalResult {
	joint := dist.EmpiricalJoint([][]string{target.Values, given.Values})
	marginalGiven := dist.Marginal(joint, []int{1})
	conditionals := dist.Conditional(joint, marginalGiven, 0, 1)

	distributions := make(map[string]dist.Distribution, len(conditionals))
	ordering := target.Ordering()
	for value, pmf := range conditionals {
		distributions[value] = dist.ToDistribution(pmf, ordering)
	}

	return stats.ConditionalResult{
		PairKey:       pairKey,
		Target:        target.Key,
		Given:         given.Key,
		Distributions: distributions,
	}
}

// variableMetrics derives single-variable metrics from a sorted
// distribution, honoring the variable's capabilities and the mode-tie
// policy.
func (e *StatsEngine) variableMetrics(v sample.RandomVariable, d dist.Distribution) stats.VariableMetrics {
	var m stats.VariableMetrics

	if v.IsNumeric() {
		if mean, ok := d.Mean(); ok {
			m.Mean = &mean
		}
		if variance, ok := d.Variance(); ok {
			m.Variance = &variance
		}
	}

	modes := d.Mode()
	if e.policy.ModeTie == stats.ModeTieNone && len(modes) == len(d) && len(d) > 1 {
		modes = nil
	}
	m.Mode = modes

	if median, ok := d.Median(); ok {
		m.Median = &median
	}
	return m
}
