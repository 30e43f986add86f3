package dist

import (
	"sort"
	"strconv"
)

// ModeTolerance is how close to the maximum probability a value must be to
// count as a mode.
const ModeTolerance = 1e-9

// Entry is one row of a sorted cumulative distribution.
type Entry struct {
	Value       string  `json:"value"`
	Probability float64 `json:"probability"`
	Cumulative  float64 `json:"cumulative"`
}

// Distribution is a PMF sorted under a variable's ordering with running
// cumulative probability. For a normalized input the last entry's cumulative
// is 1 within SumTolerance.
type Distribution []Entry

// ValueOrdering is a strict less-than over a variable's string-encoded
// values.
type ValueOrdering func(a, b string) bool

// Lexicographic orders values as plain strings. Used for nominal variables
// and as the deterministic tie-break everywhere else.
func Lexicographic(a, b string) bool {
	return a < b
}

// NumericAscending orders values by their numeric coercion. Values that fail
// to parse sort after all numeric values, lexicographically among themselves.
func NumericAscending(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// DeclaredOrder orders values by an explicit total order. Values missing
// from the declaration sort after all declared values, lexicographically.
func DeclaredOrder(order []string) ValueOrdering {
	rank := make(map[string]int, len(order))
	for i, v := range order {
		rank[v] = i
	}
	return func(a, b string) bool {
		ra, okA := rank[a]
		rb, okB := rank[b]
		switch {
		case okA && okB:
			return ra < rb
		case okA:
			return true
		case okB:
			return false
		default:
			return a < b
		}
	}
}

// ToDistribution sorts a 1-ary PMF under the given ordering and accumulates
// running probability.
func ToDistribution(p PMF, less ValueOrdering) Distribution {
	values := make([]string, 0, len(p.P))
	for k := range p.P {
		values = append(values, k.Tuple().At(0))
	}
	sort.Slice(values, func(i, j int) bool { return less(values[i], values[j]) })

	d := make(Distribution, 0, len(values))
	cum := 0.0
	for _, v := range values {
		prob := p.Prob(Tuple{v})
		cum += prob
		d = append(d, Entry{Value: v, Probability: prob, Cumulative: cum})
	}
	return d
}

// TotalMass re-sums the probabilities, reproducing the source PMF's mass.
func (d Distribution) TotalMass() float64 {
	total := 0.0
	for _, e := range d {
		total += e.Probability
	}
	return total
}

// Mean returns the probability-weighted mean over numeric-coercible values.
// ok is false when any value fails numeric coercion.
func (d Distribution) Mean() (mean float64, ok bool) {
	for _, e := range d {
		v, err := strconv.ParseFloat(e.Value, 64)
		if err != nil {
			return 0, false
		}
		mean += e.Probability * v
	}
	return mean, true
}

// Variance returns the probability-weighted second central moment. ok is
// false when any value fails numeric coercion.
func (d Distribution) Variance() (variance float64, ok bool) {
	mean, ok := d.Mean()
	if !ok {
		return 0, false
	}
	for _, e := range d {
		v, _ := strconv.ParseFloat(e.Value, 64)
		diff := v - mean
		variance += e.Probability * diff * diff
	}
	return variance, true
}

// Mode returns every value within ModeTolerance of the maximum probability,
// in the distribution's own order. The caller applies the tie policy.
func (d Distribution) Mode() []string {
	if len(d) == 0 {
		return nil
	}
	max := 0.0
	for _, e := range d {
		if e.Probability > max {
			max = e.Probability
		}
	}
	var modes []string
	for _, e := range d {
		if e.Probability >= max-ModeTolerance {
			modes = append(modes, e.Value)
		}
	}
	return modes
}

// Median returns the first value whose cumulative probability reaches 0.5,
// falling back to the last value when rounding prevents reaching 0.5. ok is
// false for an empty distribution.
func (d Distribution) Median() (value string, ok bool) {
	if len(d) == 0 {
		return "", false
	}
	for _, e := range d {
		if e.Cumulative >= 0.5 {
			return e.Value, true
		}
	}
	return d[len(d)-1].Value, true
}
