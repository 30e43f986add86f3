package measures

import (
	"strconv"

	"github.com/montanaflynn/stats"
	gostat "gonum.org/v1/gonum/stat"

	"gostoch/domain/dist"
	"gostoch/domain/sample"
	domstats "gostoch/domain/stats"
)

// PearsonMeasure is the standard product-moment correlation. Defined only
// for numeric×numeric pairs. Zero variance on either side makes the value
// undefined; the policy decides whether that surfaces as absent or as 0.
type PearsonMeasure struct {
	policy domstats.Policy
}

// NewPearsonMeasure creates the measure under the given policy.
func NewPearsonMeasure(policy domstats.Policy) *PearsonMeasure {
	return &PearsonMeasure{policy: policy}
}

func (m *PearsonMeasure) Name() string { return "pearson" }

func (m *PearsonMeasure) Description() string {
	return "Linear association via covariance normalized by both standard deviations"
}

func (m *PearsonMeasure) Applicable(x, y sample.RandomVariable) bool {
	return x.IsNumeric() && y.IsNumeric()
}

func (m *PearsonMeasure) Compute(x, y sample.RandomVariable) (float64, bool) {
	xv, okX := x.NumericValues()
	yv, okY := y.NumericValues()
	if !okX || !okY || len(xv) != len(yv) || len(xv) == 0 {
		return 0, false
	}

	varX, _ := stats.PopulationVariance(xv)
	varY, _ := stats.PopulationVariance(yv)
	if varX <= dist.ProbEpsilon || varY <= dist.ProbEpsilon {
		if m.policy.PearsonZeroVariance == domstats.PearsonZero {
			return 0, true
		}
		return 0, false
	}

	return gostat.Correlation(xv, yv, nil), true
}

// PearsonFromPMF computes the population correlation implied by a 2-ary
// joint PMF with numeric-coercible states.
func PearsonFromPMF(joint dist.PMF, policy domstats.Policy) (float64, bool) {
	var ex, ey, exx, eyy, exy float64
	for k, p := range joint.P {
		t := k.Tuple()
		if len(t) != 2 {
			continue
		}
		xv, errX := strconv.ParseFloat(t.At(0), 64)
		yv, errY := strconv.ParseFloat(t.At(1), 64)
		if errX != nil || errY != nil {
			return 0, false
		}
		ex += p * xv
		ey += p * yv
		exx += p * xv * xv
		eyy += p * yv * yv
		exy += p * xv * yv
	}

	varX := exx - ex*ex
	varY := eyy - ey*ey
	if varX <= dist.ProbEpsilon || varY <= dist.ProbEpsilon {
		if policy.PearsonZeroVariance == domstats.PearsonZero {
			return 0, true
		}
		return 0, false
	}
	cov := exy - ex*ey
	return cov / sqrtProduct(varX, varY), true
}
