package measures

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"gostoch/domain/dist"
	"gostoch/domain/sample"
)

// DistanceCorrelationMeasure detects linear and non-linear association via
// double-centered pairwise-distance matrices. Numeric variables use absolute
// difference; categorical variables use 0/1 mismatch. O(n²) in the sample
// size.
type DistanceCorrelationMeasure struct{}

// NewDistanceCorrelationMeasure creates the measure.
func NewDistanceCorrelationMeasure() *DistanceCorrelationMeasure {
	return &DistanceCorrelationMeasure{}
}

func (m *DistanceCorrelationMeasure) Name() string { return "distance_correlation" }

func (m *DistanceCorrelationMeasure) Description() string {
	return "Association via double-centered distance matrices; zero only under independence"
}

func (m *DistanceCorrelationMeasure) Applicable(x, y sample.RandomVariable) bool {
	return true
}

func (m *DistanceCorrelationMeasure) Compute(x, y sample.RandomVariable) (float64, bool) {
	n := len(x.Values)
	if n == 0 || n != len(y.Values) {
		return 0, false
	}

	a := centeredDistances(x)
	b := centeredDistances(y)

	var dCov, dVarX, dVarY float64
	nn := float64(n * n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			av := a.At(i, j)
			bv := b.At(i, j)
			dCov += av * bv
			dVarX += av * av
			dVarY += bv * bv
		}
	}
	dCov /= nn
	dVarX /= nn
	dVarY /= nn

	return dcorFromMoments(dCov, dVarX, dVarY)
}

// centeredDistances builds the double-centered distance matrix for one
// variable: each entry minus its row mean and column mean, plus the grand
// mean.
func centeredDistances(v sample.RandomVariable) *mat.Dense {
	n := len(v.Values)
	d := mat.NewDense(n, n, nil)

	var numeric []float64
	if v.IsNumeric() {
		if parsed, ok := v.NumericValues(); ok {
			numeric = parsed
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var dij float64
			if numeric != nil {
				dij = math.Abs(numeric[i] - numeric[j])
			} else {
				dij = categoricalDistance(v.Values[i], v.Values[j])
			}
			d.Set(i, j, dij)
			d.Set(j, i, dij)
		}
	}

	rowMeans := make([]float64, n)
	colMeans := make([]float64, n)
	grand := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			val := d.At(i, j)
			rowMeans[i] += val
			colMeans[j] += val
			grand += val
		}
	}
	fn := float64(n)
	for i := range rowMeans {
		rowMeans[i] /= fn
		colMeans[i] /= fn
	}
	grand /= fn * fn

	centered := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			centered.Set(i, j, d.At(i, j)-rowMeans[i]-colMeans[j]+grand)
		}
	}
	return centered
}

func categoricalDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	return 1
}

// DistanceCorrelationFromPMF computes the population distance correlation
// implied by a 2-ary joint PMF. Triple sums over the support; intended for
// the small state spaces of theoretical models.
func DistanceCorrelationFromPMF(joint dist.PMF, xNumeric, yNumeric bool) (float64, bool) {
	if joint.Arity != 2 || joint.Len() == 0 {
		return 0, false
	}

	support := joint.Support()
	k := len(support)
	probs := make([]float64, k)
	xs := make([]string, k)
	ys := make([]string, k)
	for i, key := range support {
		t := key.Tuple()
		if len(t) != 2 {
			return 0, false
		}
		probs[i] = joint.P[key]
		xs[i] = t.At(0)
		ys[i] = t.At(1)
	}

	dx := outcomeDistances(xs, xNumeric)
	dy := outcomeDistances(ys, yNumeric)
	if dx == nil || dy == nil {
		return 0, false
	}

	// Population distance covariance:
	// dCov² = E[dX·dY] + E[dX]E[dY] − 2·E''[dX dY] over independent copies.
	var t1x, t1y, t1xy float64
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			pij := probs[i] * probs[j]
			t1x += pij * dx[i][j]
			t1y += pij * dy[i][j]
			t1xy += pij * dx[i][j] * dy[i][j]
		}
	}
	var t3 float64
	for i := 0; i < k; i++ {
		var ex, ey float64
		for j := 0; j < k; j++ {
			ex += probs[j] * dx[i][j]
			ey += probs[j] * dy[i][j]
		}
		t3 += probs[i] * ex * ey
	}

	dCov := t1xy + t1x*t1y - 2*t3

	var vxx, vyy float64
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			pij := probs[i] * probs[j]
			vxx += pij * dx[i][j] * dx[i][j]
			vyy += pij * dy[i][j] * dy[i][j]
		}
	}
	var t3x, t3y float64
	for i := 0; i < k; i++ {
		var ex, ey float64
		for j := 0; j < k; j++ {
			ex += probs[j] * dx[i][j]
			ey += probs[j] * dy[i][j]
		}
		t3x += probs[i] * ex * ex
		t3y += probs[i] * ey * ey
	}
	dVarX := vxx + t1x*t1x - 2*t3x
	dVarY := vyy + t1y*t1y - 2*t3y

	return dcorFromMoments(dCov, dVarX, dVarY)
}

// outcomeDistances builds the pairwise distance table over distinct support
// values. Returns nil when a numeric variable's state fails coercion.
func outcomeDistances(values []string, numeric bool) [][]float64 {
	k := len(values)
	parsed := make([]float64, k)
	if numeric {
		for i, s := range values {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil
			}
			parsed[i] = f
		}
	}

	d := make([][]float64, k)
	for i := range d {
		d[i] = make([]float64, k)
		for j := 0; j < k; j++ {
			if numeric {
				d[i][j] = math.Abs(parsed[i] - parsed[j])
			} else {
				d[i][j] = categoricalDistance(values[i], values[j])
			}
		}
	}
	return d
}

// dcorFromMoments finishes the computation shared by the sample and
// population forms: 0 when either distance variance vanishes, the ratio
// clamped to >= 0 before the square root otherwise.
func dcorFromMoments(dCov, dVarX, dVarY float64) (float64, bool) {
	if dVarX <= dist.ProbEpsilon || dVarY <= dist.ProbEpsilon {
		return 0, true
	}
	ratio := dCov / sqrtProduct(dVarX, dVarY)
	if ratio < 0 {
		ratio = 0
	}
	return math.Sqrt(ratio), true
}

func sqrtProduct(a, b float64) float64 {
	return math.Sqrt(a) * math.Sqrt(b)
}
