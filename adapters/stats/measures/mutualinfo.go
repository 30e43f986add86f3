package measures

import (
	"math"

	"gostoch/domain/dist"
	"gostoch/domain/sample"
)

// MutualInformationMeasure computes I(X;Y) in bits from the empirical joint
// and marginal PMFs. Applies to any pair of variable types. Terms with
// near-zero probability are skipped so the sum never produces -Inf.
type MutualInformationMeasure struct{}

// NewMutualInformationMeasure creates the measure.
func NewMutualInformationMeasure() *MutualInformationMeasure {
	return &MutualInformationMeasure{}
}

func (m *MutualInformationMeasure) Name() string { return "mutual_information" }

func (m *MutualInformationMeasure) Description() string {
	return "Shared information in bits; detects non-linear dependence that correlation misses"
}

func (m *MutualInformationMeasure) Applicable(x, y sample.RandomVariable) bool {
	return true
}

func (m *MutualInformationMeasure) Compute(x, y sample.RandomVariable) (float64, bool) {
	if len(x.Values) != len(y.Values) || len(x.Values) == 0 {
		return 0, false
	}
	return MutualInformationFromPMF(pairJoint(x, y))
}

// MutualInformationFromPMF computes I(X;Y) over the support of a 2-ary joint
// PMF: Σ p(x,y)·log₂(p(x,y)/(p(x)p(y))).
func MutualInformationFromPMF(joint dist.PMF) (float64, bool) {
	if joint.Arity != 2 || joint.Len() == 0 {
		return 0, false
	}

	px := dist.Marginal(joint, []int{0})
	py := dist.Marginal(joint, []int{1})

	mi := 0.0
	for k, pxy := range joint.P {
		if pxy <= dist.ProbEpsilon {
			continue
		}
		t := k.Tuple()
		if len(t) != 2 {
			continue
		}
		pxv := px.Prob(dist.Tuple{t.At(0)})
		pyv := py.Prob(dist.Tuple{t.At(1)})
		if pxv <= dist.ProbEpsilon || pyv <= dist.ProbEpsilon {
			continue
		}
		mi += pxy * math.Log2(pxy/(pxv*pyv))
	}

	// Independence can produce a tiny negative sum through rounding.
	if mi < 0 {
		mi = 0
	}
	return mi, true
}
