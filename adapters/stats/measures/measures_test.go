package measures

import (
	"math"
	"testing"

	"gostoch/domain/dist"
	"gostoch/domain/sample"
	domstats "gostoch/domain/stats"
)

func TestPearsonPerfectLinear(t *testing.T) {
	x := sample.RandomVariable{Key: "x", Values: []string{"1", "2", "3", "4"}, Type: sample.Numerical}
	y := sample.RandomVariable{Key: "y", Values: []string{"2", "4", "6", "8"}, Type: sample.Numerical}

	m := NewPearsonMeasure(domstats.DefaultPolicy())
	got, ok := m.Compute(x, y)
	if !ok || math.Abs(got-1) > 1e-9 {
		t.Fatalf("Pearson = %v (ok=%v), want 1", got, ok)
	}

	neg := sample.RandomVariable{Key: "z", Values: []string{"8", "6", "4", "2"}, Type: sample.Numerical}
	got, ok = m.Compute(x, neg)
	if !ok || math.Abs(got+1) > 1e-9 {
		t.Fatalf("Pearson = %v (ok=%v), want -1", got, ok)
	}
}

func TestPearsonZeroVariancePolicies(t *testing.T) {
	x := sample.RandomVariable{Key: "x", Values: []string{"5", "5", "5"}, Type: sample.Numerical}
	y := sample.RandomVariable{Key: "y", Values: []string{"1", "2", "3"}, Type: sample.Numerical}

	undefined := NewPearsonMeasure(domstats.DefaultPolicy())
	if _, ok := undefined.Compute(x, y); ok {
		t.Fatal("zero variance should be undefined under the default policy")
	}

	policy := domstats.DefaultPolicy()
	policy.PearsonZeroVariance = domstats.PearsonZero
	zero := NewPearsonMeasure(policy)
	got, ok := zero.Compute(x, y)
	if !ok || got != 0 {
		t.Fatalf("Pearson = %v (ok=%v), want 0 under the zero policy", got, ok)
	}
}

func TestPearsonNotApplicableToCategorical(t *testing.T) {
	x := sample.RandomVariable{Key: "x", Values: []string{"1", "2"}, Type: sample.Numerical}
	c := sample.RandomVariable{Key: "c", Values: []string{"a", "b"}, Type: sample.Nominal}

	m := NewPearsonMeasure(domstats.DefaultPolicy())
	if m.Applicable(x, c) || m.Applicable(c, c) {
		t.Fatal("Pearson should require two numeric variables")
	}
}

func TestMutualInformationDeterministicPair(t *testing.T) {
	// Y is a function of X with two equally likely values, so I(X;Y) is
	// exactly 1 bit.
	x := sample.RandomVariable{Key: "x", Values: []string{"a", "a", "b", "b"}, Type: sample.Nominal}
	y := sample.RandomVariable{Key: "y", Values: []string{"u", "u", "v", "v"}, Type: sample.Nominal}

	m := NewMutualInformationMeasure()
	got, ok := m.Compute(x, y)
	if !ok || math.Abs(got-1) > 1e-9 {
		t.Fatalf("MI = %v (ok=%v), want 1 bit", got, ok)
	}
}

func TestMutualInformationIndependence(t *testing.T) {
	// All four joint outcomes equally likely: marginals are uniform and the
	// variables are independent.
	x := sample.RandomVariable{Key: "x", Values: []string{"a", "a", "b", "b"}, Type: sample.Nominal}
	y := sample.RandomVariable{Key: "y", Values: []string{"u", "v", "u", "v"}, Type: sample.Nominal}

	m := NewMutualInformationMeasure()
	got, ok := m.Compute(x, y)
	if !ok || got > 1e-9 {
		t.Fatalf("MI = %v (ok=%v), want 0 under independence", got, ok)
	}
}

func TestDistanceCorrelationPerfectDependence(t *testing.T) {
	x := sample.RandomVariable{Key: "x", Values: []string{"1", "2", "3", "4"}, Type: sample.Numerical}
	y := sample.RandomVariable{Key: "y", Values: []string{"2", "4", "6", "8"}, Type: sample.Numerical}

	m := NewDistanceCorrelationMeasure()
	got, ok := m.Compute(x, y)
	if !ok || math.Abs(got-1) > 1e-9 {
		t.Fatalf("dCor = %v (ok=%v), want 1", got, ok)
	}
}

func TestDistanceCorrelationConstantVariable(t *testing.T) {
	x := sample.RandomVariable{Key: "x", Values: []string{"7", "7", "7"}, Type: sample.Numerical}
	y := sample.RandomVariable{Key: "y", Values: []string{"1", "2", "3"}, Type: sample.Numerical}

	m := NewDistanceCorrelationMeasure()
	got, ok := m.Compute(x, y)
	if !ok || got != 0 {
		t.Fatalf("dCor = %v (ok=%v), want 0 for a constant variable", got, ok)
	}
}

func TestDistanceCorrelationMixedTypes(t *testing.T) {
	// dCor accepts categorical variables through the 0/1 mismatch distance.
	x := sample.RandomVariable{Key: "x", Values: []string{"1", "1", "2", "2"}, Type: sample.Numerical}
	c := sample.RandomVariable{Key: "c", Values: []string{"a", "a", "b", "b"}, Type: sample.Nominal}

	m := NewDistanceCorrelationMeasure()
	if !m.Applicable(x, c) {
		t.Fatal("dCor should apply to mixed pairs")
	}
	got, ok := m.Compute(x, c)
	if !ok || math.Abs(got-1) > 1e-9 {
		t.Fatalf("dCor = %v (ok=%v), want 1 for perfectly aligned pair", got, ok)
	}
}

func TestCramersVPerfectAssociation(t *testing.T) {
	x := sample.RandomVariable{Key: "x", Values: []string{"a", "a", "b", "b"}, Type: sample.Nominal}
	y := sample.RandomVariable{Key: "y", Values: []string{"u", "u", "v", "v"}, Type: sample.Nominal}

	m := NewCramersVMeasure()
	got, ok := m.Compute(x, y)
	if !ok || math.Abs(got-1) > 1e-9 {
		t.Fatalf("V = %v (ok=%v), want 1", got, ok)
	}
}

func TestCramersVSingleLevel(t *testing.T) {
	x := sample.RandomVariable{Key: "x", Values: []string{"a", "a", "a"}, Type: sample.Nominal}
	y := sample.RandomVariable{Key: "y", Values: []string{"u", "v", "u"}, Type: sample.Nominal}

	m := NewCramersVMeasure()
	got, ok := m.Compute(x, y)
	if !ok || got != 0 {
		t.Fatalf("V = %v (ok=%v), want 0 with fewer than 2 levels", got, ok)
	}
}

func TestMeasureEngineAssemblesRecord(t *testing.T) {
	policy := domstats.DefaultPolicy()
	engine := NewMeasureEngine(policy)

	x := sample.RandomVariable{Key: "x", Values: []string{"1", "2", "3", "4"}, Type: sample.Numerical}
	y := sample.RandomVariable{Key: "y", Values: []string{"2", "4", "6", "8"}, Type: sample.Numerical}

	m := engine.Compute(x, y)
	if m.Pearson == nil || m.MutualInformation == nil || m.DistanceCorrelation == nil {
		t.Fatalf("numeric pair missing metrics: %+v", m)
	}
	if m.CramersV != nil {
		t.Fatal("numeric pair should carry no Cramer's V")
	}

	c1 := sample.RandomVariable{Key: "c1", Values: []string{"a", "a", "b", "b"}, Type: sample.Nominal}
	c2 := sample.RandomVariable{Key: "c2", Values: []string{"u", "v", "u", "v"}, Type: sample.Nominal}
	m = engine.Compute(c1, c2)
	if m.Pearson != nil {
		t.Fatal("categorical pair should carry no Pearson")
	}
	if m.CramersV == nil || m.MutualInformation == nil || m.DistanceCorrelation == nil {
		t.Fatalf("categorical pair missing metrics: %+v", m)
	}
}

func TestComputeFromPMFIndependentProduct(t *testing.T) {
	joint := dist.NewPMF(2)
	for _, xv := range []string{"0", "1"} {
		for _, yv := range []string{"0", "1"} {
			joint.Add(dist.Tuple{xv, yv}, 0.25)
		}
	}

	x := sample.RandomVariable{Key: "x", Type: sample.Numerical}
	y := sample.RandomVariable{Key: "y", Type: sample.Numerical}

	engine := NewMeasureEngine(domstats.DefaultPolicy())
	m := engine.ComputeFromPMF(joint, x, y)

	if m.Pearson == nil || math.Abs(*m.Pearson) > 1e-9 {
		t.Fatalf("Pearson = %v, want 0 under independence", m.Pearson)
	}
	if m.MutualInformation == nil || *m.MutualInformation > 1e-9 {
		t.Fatalf("MI = %v, want 0 under independence", m.MutualInformation)
	}
	if m.DistanceCorrelation == nil || *m.DistanceCorrelation > 1e-6 {
		t.Fatalf("dCor = %v, want 0 under independence", m.DistanceCorrelation)
	}
}

func TestPearsonFromPMFPerfectCovariation(t *testing.T) {
	joint := dist.NewPMF(2)
	joint.Add(dist.Tuple{"0", "0"}, 0.5)
	joint.Add(dist.Tuple{"1", "1"}, 0.5)

	got, ok := PearsonFromPMF(joint, domstats.DefaultPolicy())
	if !ok || math.Abs(got-1) > 1e-9 {
		t.Fatalf("Pearson = %v (ok=%v), want 1", got, ok)
	}

	dcor, ok := DistanceCorrelationFromPMF(joint, true, true)
	if !ok || math.Abs(dcor-1) > 1e-9 {
		t.Fatalf("dCor = %v (ok=%v), want 1", dcor, ok)
	}
}
