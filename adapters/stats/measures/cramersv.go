package measures

import (
	"math"

	"gostoch/domain/dist"
	"gostoch/domain/sample"
)

// CramersVMeasure is the chi-square-based association measure for two
// categorical variables: √(χ² / (n·min(r−1, k−1))).
type CramersVMeasure struct{}

// NewCramersVMeasure creates the measure.
func NewCramersVMeasure() *CramersVMeasure {
	return &CramersVMeasure{}
}

func (m *CramersVMeasure) Name() string { return "cramers_v" }

func (m *CramersVMeasure) Description() string {
	return "Chi-square association over the contingency table of two categorical variables"
}

func (m *CramersVMeasure) Applicable(x, y sample.RandomVariable) bool {
	return x.IsCategorical() && y.IsCategorical()
}

func (m *CramersVMeasure) Compute(x, y sample.RandomVariable) (float64, bool) {
	if len(x.Values) != len(y.Values) || len(x.Values) == 0 {
		return 0, false
	}
	return CramersVFromPMF(pairJoint(x, y))
}

// CramersVFromPMF computes Cramér's V from a 2-ary joint PMF. Because V is
// scale-free in the counts, the probability form χ²/n = Σ(p_ij − p_i·p_j)²
// / (p_i·p_j) works for both empirical and theoretical inputs. Returns 0
// when either variable has fewer than 2 distinct levels.
func CramersVFromPMF(joint dist.PMF) (float64, bool) {
	if joint.Arity != 2 || joint.Len() == 0 {
		return 0, false
	}

	px := dist.Marginal(joint, []int{0})
	py := dist.Marginal(joint, []int{1})
	rows := px.Len()
	cols := py.Len()
	if rows < 2 || cols < 2 {
		return 0, true
	}

	chiOverN := 0.0
	for _, kx := range px.Support() {
		for _, ky := range py.Support() {
			expected := px.P[kx] * py.P[ky]
			if expected <= dist.ProbEpsilon {
				continue
			}
			observed := joint.P[dist.Tuple{kx.Tuple().At(0), ky.Tuple().At(0)}.Key()]
			diff := observed - expected
			chiOverN += diff * diff / expected
		}
	}

	minDim := float64(rows - 1)
	if c := float64(cols - 1); c < minDim {
		minDim = c
	}
	return math.Sqrt(chiOverN / minDim), true
}
