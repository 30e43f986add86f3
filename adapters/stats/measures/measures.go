package measures

import (
	"gostoch/domain/dist"
	"gostoch/domain/sample"
	"gostoch/domain/stats"
)

// DependenceMeasure is one pairwise dependence metric. All measures are
// symmetric in their two inputs and pure functions of the columns (or PMFs)
// they receive.
type DependenceMeasure interface {
	Name() string
	Description() string
	// Applicable reports whether the measure is defined for the pair's
	// variable types, per the capability table.
	Applicable(x, y sample.RandomVariable) bool
	// Compute returns the measure value. ok is false when the input is
	// degenerate under the engine policy (e.g. zero variance under the
	// undefined Pearson policy).
	Compute(x, y sample.RandomVariable) (value float64, ok bool)
}

// MeasureEngine runs the four dependence measures over a variable pair and
// assembles the typed pairwise metrics record.
type MeasureEngine struct {
	policy  stats.Policy
	pearson *PearsonMeasure
	mi      *MutualInformationMeasure
	dcor    *DistanceCorrelationMeasure
	cramer  *CramersVMeasure
}

// NewMeasureEngine creates an engine under the given metric policy.
func NewMeasureEngine(policy stats.Policy) *MeasureEngine {
	return &MeasureEngine{
		policy:  policy,
		pearson: NewPearsonMeasure(policy),
		mi:      NewMutualInformationMeasure(),
		dcor:    NewDistanceCorrelationMeasure(),
		cramer:  NewCramersVMeasure(),
	}
}

// Measures lists the engine's measures in report order.
func (e *MeasureEngine) Measures() []DependenceMeasure {
	return []DependenceMeasure{e.pearson, e.mi, e.dcor, e.cramer}
}

// Compute runs every applicable measure on the empirical columns.
func (e *MeasureEngine) Compute(x, y sample.RandomVariable) stats.PairwiseMetrics {
	var m stats.PairwiseMetrics
	if e.pearson.Applicable(x, y) {
		if v, ok := e.pearson.Compute(x, y); ok {
			m.Pearson = &v
		}
	}
	if e.mi.Applicable(x, y) {
		if v, ok := e.mi.Compute(x, y); ok {
			m.MutualInformation = &v
		}
	}
	if e.dcor.Applicable(x, y) {
		if v, ok := e.dcor.Compute(x, y); ok {
			m.DistanceCorrelation = &v
		}
	}
	if e.cramer.Applicable(x, y) {
		if v, ok := e.cramer.Compute(x, y); ok {
			m.CramersV = &v
		}
	}
	return m
}

// ComputeFromPMF runs the measures' population forms on a theoretical pair
// distribution: a 2-ary joint PMF over the pair (x, y). Used for per-model
// pairwise metrics.
func (e *MeasureEngine) ComputeFromPMF(joint dist.PMF, x, y sample.RandomVariable) stats.PairwiseMetrics {
	var m stats.PairwiseMetrics
	if e.pearson.Applicable(x, y) {
		if v, ok := PearsonFromPMF(joint, e.policy); ok {
			m.Pearson = &v
		}
	}
	if v, ok := MutualInformationFromPMF(joint); ok {
		m.MutualInformation = &v
	}
	if v, ok := DistanceCorrelationFromPMF(joint, x.IsNumeric(), y.IsNumeric()); ok {
		m.DistanceCorrelation = &v
	}
	if e.cramer.Applicable(x, y) {
		if v, ok := CramersVFromPMF(joint); ok {
			m.CramersV = &v
		}
	}
	return m
}

// pairJoint builds the empirical 2-ary joint PMF for a pair of columns.
func pairJoint(x, y sample.RandomVariable) dist.PMF {
	return dist.EmpiricalJoint([][]string{x.Values, y.Values})
}
