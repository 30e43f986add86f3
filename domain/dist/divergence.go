package dist

import (
	"math"
)

// Hellinger computes the Hellinger distance between two PMFs over the union
// of their supports, with missing outcomes treated as probability 0. The
// result is clamped to [0,1].
func Hellinger(p, q PMF) float64 {
	sum := 0.0
	for _, k := range UnionSupport(p, q) {
		d := math.Sqrt(p.P[k]) - math.Sqrt(q.P[k])
		sum += d * d
	}
	h := math.Sqrt(sum) / math.Sqrt2
	if h > 1 {
		return 1
	}
	if h < 0 {
		return 0
	}
	return h
}

// ShannonEntropy computes the entropy of a PMF in bits. Outcomes at or below
// ProbEpsilon contribute nothing instead of producing -Inf.
func ShannonEntropy(p PMF) float64 {
	h := 0.0
	for _, prob := range p.P {
		if prob <= ProbEpsilon {
			continue
		}
		h -= prob * math.Log2(prob)
	}
	return h
}

// GeneralizedJS computes the generalized Jensen-Shannon divergence of the
// given PMFs in bits: the entropy of their uniform mixture minus the mean of
// their entropies, clamped to >= 0 for floating-point safety. With two
// distributions this reduces to standard JS divergence.
func GeneralizedJS(ps ...PMF) float64 {
	if len(ps) == 0 {
		return 0
	}

	arity := ps[0].Arity
	mixture := NewPMF(arity)
	w := 1.0 / float64(len(ps))
	meanEntropy := 0.0
	for _, p := range ps {
		for k, prob := range p.P {
			mixture.P[k] += w * prob
		}
		meanEntropy += w * ShannonEntropy(p)
	}

	gjs := ShannonEntropy(mixture) - meanEntropy
	if gjs < 0 {
		return 0
	}
	return gjs
}

// JSDistance is the square root of GeneralizedJS, a proper distance. This is
// the form reported in fit results.
func JSDistance(ps ...PMF) float64 {
	return math.Sqrt(GeneralizedJS(ps...))
}
