package theory

import (
	"strconv"
	"strings"

	"gostoch/domain/dist"
	"gostoch/domain/sample"
	"gostoch/domain/stats"
)

// Evaluate validates one model against the sample and, when valid, computes
// its goodness-of-fit against the empirical joint PMF. An invalid model
// yields a fit record carrying only the validation error.
func Evaluate(m *TheoreticalModel, s sample.Sample, empirical dist.PMF) stats.ModelFitResult {
	result := stats.ModelFitResult{ModelID: m.ID, Name: m.Name}

	if err := m.Validate(s); err != nil {
		result.Error = err.Error()
		return result
	}

	modelPMF := m.PMF()

	h := dist.Hellinger(empirical, modelPMF)
	js := dist.JSDistance(empirical, modelPMF)
	result.Hellinger = &h
	result.JSDistance = &js

	// MSE mode selection: any categorical variable alongside a numerical one
	// routes to the conditional path.
	if s.HasNumeric() {
		if s.HasCategorical() {
			conditional, cumulative, ok := conditionalMSE(m, s, modelPMF)
			if ok {
				result.ConditionalMSE = conditional
				result.CumulativeMSE = &cumulative
			}
		} else {
			mse := unconditionalMSE(m, s, modelPMF)
			result.MSE = &mse
		}
	}

	return result
}

// unconditionalMSE computes bias² + model variance against the empirical
// mean, averaged over the numeric variables.
func unconditionalMSE(m *TheoreticalModel, s sample.Sample, modelPMF dist.PMF) float64 {
	total := 0.0
	count := 0
	for i, v := range s.Variables {
		if !v.IsNumeric() {
			continue
		}
		empMean, ok := v.EmpiricalDistribution().Mean()
		if !ok {
			continue
		}
		marginal := dist.Marginal(modelPMF, []int{i})
		modelDist := dist.ToDistribution(marginal, v.Ordering())
		modelMean, okMean := modelDist.Mean()
		modelVar, okVar := modelDist.Variance()
		if !okMean || !okVar {
			continue
		}
		bias := modelMean - empMean
		total += bias*bias + modelVar
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// conditionalMSE computes, per categorical condition value, the mean squared
// deviation of observed target values from the model's conditional mean,
// plus a probability-weighted cumulative roll-up. The target is the first
// numerical variable; the condition is the joint tuple of all categorical
// variables.
func conditionalMSE(m *TheoreticalModel, s sample.Sample, modelPMF dist.PMF) (map[string]float64, float64, bool) {
	targetIdx := -1
	var catIdx []int
	for i, v := range s.Variables {
		switch {
		case v.IsNumeric() && targetIdx < 0:
			targetIdx = i
		case v.IsCategorical():
			catIdx = append(catIdx, i)
		}
	}
	if targetIdx < 0 || len(catIdx) == 0 {
		return nil, 0, false
	}

	target := s.Variables[targetIdx]
	targetVals, ok := target.NumericValues()
	if !ok {
		return nil, 0, false
	}

	// Group sample rows by their categorical condition tuple, keyed by the
	// escaped tuple key so condition values containing the display separator
	// can never collapse two conditions into one bucket.
	n := s.Size()
	rowsByCondition := make(map[dist.Key][]int)
	for row := 0; row < n; row++ {
		cond := make(dist.Tuple, len(catIdx))
		for j, ci := range catIdx {
			cond[j] = s.Variables[ci].Values[row]
		}
		key := cond.Key()
		rowsByCondition[key] = append(rowsByCondition[key], row)
	}

	perCondition := make(map[string]float64, len(rowsByCondition))
	cumulative := 0.0
	for key, rows := range rowsByCondition {
		cond := key.Tuple()
		modelMean, okMean := modelConditionalMean(modelPMF, targetIdx, catIdx, cond)
		if !okMean {
			continue
		}
		mse := 0.0
		for _, row := range rows {
			diff := targetVals[row] - modelMean
			mse += diff * diff
		}
		mse /= float64(len(rows))
		perCondition[conditionLabel(cond)] = mse
		cumulative += mse * float64(len(rows)) / float64(n)
	}
	if len(perCondition) == 0 {
		return nil, 0, false
	}
	return perCondition, cumulative, true
}

// conditionLabel renders a condition tuple for the report map. Values that
// contain the comma separator (or a quote) are quoted so distinct conditions
// always render to distinct labels.
func conditionLabel(cond dist.Tuple) string {
	parts := make([]string, len(cond))
	for i, v := range cond {
		if strings.ContainsAny(v, ",\"") {
			v = strconv.Quote(v)
		}
		parts[i] = v
	}
	return strings.Join(parts, ",")
}

// modelConditionalMean computes the model's expected target value given the
// condition tuple over the categorical positions. ok is false when the slice
// carries no mass or a target state fails numeric coercion.
func modelConditionalMean(modelPMF dist.PMF, targetIdx int, catIdx []int, cond dist.Tuple) (float64, bool) {
	mass := 0.0
	weighted := 0.0
	for k, p := range modelPMF.P {
		t := k.Tuple()
		if len(t) != modelPMF.Arity {
			continue
		}
		match := true
		for j, ci := range catIdx {
			if t.At(ci) != cond[j] {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		v, err := strconv.ParseFloat(t.At(targetIdx), 64)
		if err != nil {
			return 0, false
		}
		mass += p
		weighted += p * v
	}
	if mass <= dist.ProbEpsilon {
		return 0, false
	}
	return weighted / mass, true
}
