package sample

import (
	"errors"
	"testing"

	"gostoch/domain/core"
	"gostoch/domain/dist"
)

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, core.ErrEmptyDataset) {
		t.Fatalf("empty variable set: got %v, want ErrEmptyDataset", err)
	}
	_, err := New([]RandomVariable{{Key: "x", Name: "x", Type: Numerical}})
	if !errors.Is(err, core.ErrEmptyDataset) {
		t.Fatalf("zero observations: got %v, want ErrEmptyDataset", err)
	}
}

func TestNewRejectsUnequalLengths(t *testing.T) {
	_, err := New([]RandomVariable{
		{Key: "x", Name: "x", Values: []string{"1", "2"}, Type: Numerical},
		{Key: "y", Name: "y", Values: []string{"1"}, Type: Numerical},
	})
	if !errors.Is(err, core.ErrUnequalLengths) {
		t.Fatalf("got %v, want ErrUnequalLengths", err)
	}
}

func TestNewRejectsOrdinalGaps(t *testing.T) {
	_, err := New([]RandomVariable{
		{Key: "g", Name: "g", Values: []string{"low", "high"}, Type: Ordinal, Order: []string{"low", "mid"}},
	})
	if !errors.Is(err, core.ErrOrdinalCoverage) {
		t.Fatalf("got %v, want ErrOrdinalCoverage", err)
	}
}

func TestCapabilityTable(t *testing.T) {
	cases := []struct {
		varType     VarType
		numeric     bool
		categorical bool
		ordering    bool
	}{
		{Numerical, true, false, false},
		{Nominal, false, true, false},
		{Ordinal, false, true, true},
	}
	for _, tc := range cases {
		c := CapabilityOf(tc.varType)
		if c.Numeric != tc.numeric || c.Categorical != tc.categorical || c.DeclaredOrdering != tc.ordering {
			t.Fatalf("capability of %s = %+v", tc.varType, c)
		}
	}
	// Unknown types degrade to nominal handling.
	if c := CapabilityOf(VarType("mystery")); !c.Categorical || c.Numeric {
		t.Fatalf("unknown type capability = %+v, want nominal", c)
	}
}

func TestVariableOrderings(t *testing.T) {
	num := RandomVariable{Key: "n", Type: Numerical}
	if !num.Ordering()("2", "10") {
		t.Fatal("numeric variable should order 2 before 10")
	}

	nom := RandomVariable{Key: "c", Type: Nominal}
	if !nom.Ordering()("10", "2") {
		t.Fatal("nominal variable should order lexicographically")
	}

	ord := RandomVariable{Key: "g", Type: Ordinal, Order: []string{"low", "mid", "high"}}
	if !ord.Ordering()("mid", "high") {
		t.Fatal("ordinal variable should follow its declared order")
	}
}

func TestEmpiricalDistribution(t *testing.T) {
	v := RandomVariable{Key: "x", Name: "x", Values: []string{"a", "a", "a", "b"}, Type: Nominal}
	d := v.EmpiricalDistribution()

	if len(d) != 2 || d[0].Value != "a" || d[0].Probability != 0.75 {
		t.Fatalf("unexpected distribution: %+v", d)
	}
	if modes := d.Mode(); len(modes) != 1 || modes[0] != "a" {
		t.Fatalf("modes = %v, want [a]", modes)
	}
}

func TestSampleAccessors(t *testing.T) {
	s, err := New([]RandomVariable{
		{Key: "x", Name: "X", Values: []string{"1", "2"}, Type: Numerical},
		{Key: "c", Name: "C", Values: []string{"a", "b"}, Type: Nominal},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Size() != 2 || s.Arity() != 2 {
		t.Fatalf("size=%d arity=%d", s.Size(), s.Arity())
	}
	if !s.HasNumeric() || !s.HasCategorical() {
		t.Fatal("expected both numeric and categorical variables")
	}

	_, idx, ok := s.ByKey("c")
	if !ok || idx != 1 {
		t.Fatalf("ByKey(c) = (%d, %v)", idx, ok)
	}

	joint := s.Joint()
	if got := joint.Prob(dist.Tuple{"1", "a"}); got != 0.5 {
		t.Fatalf("P(1,a) = %v, want 0.5", got)
	}

	if s.Fingerprint() == "" {
		t.Fatal("fingerprint should not be empty")
	}
}
