package dist

import (
	"sort"
)

// ProbEpsilon is the threshold below which a probability is treated as zero
// (skipped in logs and divisions rather than producing -Inf or NaN).
const ProbEpsilon = 1e-9

// SumTolerance is how far a PMF's total mass may drift from 1 before it is
// considered unnormalized.
const SumTolerance = 1e-5

// PMF is a probability mass function over joint outcomes of a fixed arity.
// Empirical data, marginals, conditionals and parsed theoretical models all
// use this one representation.
type PMF struct {
	Arity int
	P     map[Key]float64
}

// NewPMF creates an empty PMF of the given arity.
func NewPMF(arity int) PMF {
	return PMF{Arity: arity, P: make(map[Key]float64)}
}

// Prob returns the probability of the given outcome, 0 if unseen.
func (p PMF) Prob(t Tuple) float64 {
	return p.P[t.Key()]
}

// Add accumulates mass onto an outcome.
func (p PMF) Add(t Tuple, mass float64) {
	p.P[t.Key()] += mass
}

// Sum returns the total probability mass.
func (p PMF) Sum() float64 {
	total := 0.0
	for _, v := range p.P {
		total += v
	}
	return total
}

// Len returns the number of outcomes with recorded mass.
func (p PMF) Len() int {
	return len(p.P)
}

// IsNormalized reports whether the total mass is 1 within SumTolerance.
func (p PMF) IsNormalized() bool {
	s := p.Sum()
	return s > 1-SumTolerance && s < 1+SumTolerance
}

// Normalized returns a copy with mass rescaled to sum to 1. A zero-mass PMF
// is returned unchanged rather than divided by zero.
func (p PMF) Normalized() PMF {
	total := p.Sum()
	out := NewPMF(p.Arity)
	if total <= ProbEpsilon {
		for k, v := range p.P {
			out.P[k] = v
		}
		return out
	}
	for k, v := range p.P {
		out.P[k] = v / total
	}
	return out
}

// Support returns the outcome keys in sorted order for deterministic
// iteration.
func (p PMF) Support() []Key {
	keys := make([]Key, 0, len(p.P))
	for k := range p.P {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// UnionSupport returns the sorted union of outcome keys across PMFs.
func UnionSupport(ps ...PMF) []Key {
	seen := make(map[Key]struct{})
	for _, p := range ps {
		for k := range p.P {
			seen[k] = struct{}{}
		}
	}
	keys := make([]Key, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Equal reports whether two PMFs agree on their full union support within
// ProbEpsilon.
func (p PMF) Equal(q PMF) bool {
	for _, k := range UnionSupport(p, q) {
		d := p.P[k] - q.P[k]
		if d > ProbEpsilon || d < -ProbEpsilon {
			return false
		}
	}
	return true
}
