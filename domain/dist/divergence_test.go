package dist

import (
	"math"
	"testing"
)

func TestHellingerIdentical(t *testing.T) {
	p := pmfOf(map[string]float64{"a": 0.3, "b": 0.7})
	if got := Hellinger(p, p); got != 0 {
		t.Fatalf("Hellinger(p,p) = %v, want 0", got)
	}
}

func TestHellingerDisjoint(t *testing.T) {
	p := pmfOf(map[string]float64{"a": 1})
	q := pmfOf(map[string]float64{"b": 1})
	if got := Hellinger(p, q); math.Abs(got-1) > 1e-12 {
		t.Fatalf("Hellinger of disjoint supports = %v, want 1", got)
	}
}

func TestHellingerSymmetric(t *testing.T) {
	p := pmfOf(map[string]float64{"a": 0.2, "b": 0.8})
	q := pmfOf(map[string]float64{"a": 0.6, "b": 0.3, "c": 0.1})
	if Hellinger(p, q) != Hellinger(q, p) {
		t.Fatal("Hellinger is not symmetric")
	}
}

func TestShannonEntropyUniform(t *testing.T) {
	p := pmfOf(map[string]float64{"a": 0.25, "b": 0.25, "c": 0.25, "d": 0.25})
	if got := ShannonEntropy(p); math.Abs(got-2) > 1e-12 {
		t.Fatalf("entropy of uniform over 4 = %v bits, want 2", got)
	}
}

func TestShannonEntropyDegenerate(t *testing.T) {
	p := pmfOf(map[string]float64{"a": 1})
	if got := ShannonEntropy(p); got != 0 {
		t.Fatalf("entropy of point mass = %v, want 0", got)
	}
}

func TestGeneralizedJSIdentical(t *testing.T) {
	p := pmfOf(map[string]float64{"a": 0.5, "b": 0.5})
	if got := GeneralizedJS(p, p, p); got > 1e-12 {
		t.Fatalf("GJS of identical distributions = %v, want 0", got)
	}
}

func TestGeneralizedJSDisjointPair(t *testing.T) {
	p := pmfOf(map[string]float64{"a": 1})
	q := pmfOf(map[string]float64{"b": 1})
	// JS divergence of disjoint distributions is 1 bit.
	if got := GeneralizedJS(p, q); math.Abs(got-1) > 1e-12 {
		t.Fatalf("GJS of disjoint pair = %v, want 1", got)
	}
	if got := JSDistance(p, q); math.Abs(got-1) > 1e-12 {
		t.Fatalf("JS distance of disjoint pair = %v, want 1", got)
	}
}

func TestGeneralizedJSEmpty(t *testing.T) {
	if got := GeneralizedJS(); got != 0 {
		t.Fatalf("GJS of no distributions = %v, want 0", got)
	}
}
