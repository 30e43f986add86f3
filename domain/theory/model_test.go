package theory

import (
	"errors"
	"strings"
	"testing"

	"gostoch/domain/core"
	"gostoch/domain/dist"
	"gostoch/domain/sample"
)

func coinModel(heads, tails float64) *TheoreticalModel {
	m := NewModel("coin", []VariableStates{{Key: "flip", States: []string{"h", "t"}}})
	m.AddOutcome(dist.Tuple{"h"}, heads)
	m.AddOutcome(dist.Tuple{"t"}, tails)
	return m
}

func coinSample(t *testing.T) sample.Sample {
	t.Helper()
	s, err := sample.New([]sample.RandomVariable{
		{Key: "flip", Name: "flip", Values: []string{"h", "h", "t", "t"}, Type: sample.Nominal},
	})
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	return s
}

func TestValidateAcceptsFairCoin(t *testing.T) {
	if err := coinModel(0.5, 0.5).Validate(coinSample(t)); err != nil {
		t.Fatalf("fair coin rejected: %v", err)
	}
}

func TestValidateRejectsShortMass(t *testing.T) {
	err := coinModel(0.5, 0.4).Validate(coinSample(t))
	if !errors.Is(err, core.ErrModelProbability) {
		t.Fatalf("got %v, want ErrModelProbability", err)
	}
}

func TestValidateRejectsMissingOutcome(t *testing.T) {
	m := NewModel("partial", []VariableStates{{Key: "flip", States: []string{"h", "t"}}})
	m.AddOutcome(dist.Tuple{"h"}, 1)

	err := m.Validate(coinSample(t))
	if !errors.Is(err, core.ErrModelIncomplete) {
		t.Fatalf("got %v, want ErrModelIncomplete", err)
	}
}

func TestValidateRejectsArityMismatch(t *testing.T) {
	m := NewModel("wide", []VariableStates{
		{Key: "flip", States: []string{"h", "t"}},
		{Key: "extra", States: []string{"x"}},
	})
	err := m.Validate(coinSample(t))
	if !errors.Is(err, core.ErrModelArity) {
		t.Fatalf("got %v, want ErrModelArity", err)
	}
}

func TestValidateRejectsOrderMismatch(t *testing.T) {
	m := NewModel("misnamed", []VariableStates{{Key: "toss", States: []string{"h", "t"}}})
	err := m.Validate(coinSample(t))
	if !errors.Is(err, core.ErrModelOrder) {
		t.Fatalf("got %v, want ErrModelOrder", err)
	}
}

func TestAddOutcomeAccumulates(t *testing.T) {
	m := NewModel("split", []VariableStates{{Key: "flip", States: []string{"h", "t"}}})
	m.AddOutcome(dist.Tuple{"h"}, 0.25)
	m.AddOutcome(dist.Tuple{"h"}, 0.25)
	m.AddOutcome(dist.Tuple{"t"}, 0.5)

	if err := m.Validate(coinSample(t)); err != nil {
		t.Fatalf("accumulated outcomes rejected: %v", err)
	}
}

func TestCartesianEnumeration(t *testing.T) {
	out := Cartesian([][]string{{"a", "b"}, {"1", "2", "3"}})
	if len(out) != 6 {
		t.Fatalf("got %d outcomes, want 6", len(out))
	}
	if !out[0].Equal(dist.Tuple{"a", "1"}) || !out[5].Equal(dist.Tuple{"b", "3"}) {
		t.Fatalf("unexpected enumeration order: %v", out)
	}
	if Cartesian([][]string{{"a"}, {}}) != nil {
		t.Fatal("empty state space should enumerate nothing")
	}
}

func TestEvaluateInvalidModelCarriesErrorOnly(t *testing.T) {
	s := coinSample(t)
	res := Evaluate(coinModel(0.5, 0.4), s, s.Joint())

	if res.Error == "" {
		t.Fatal("invalid model should carry a validation error")
	}
	if res.Hellinger != nil || res.JSDistance != nil || res.MSE != nil {
		t.Fatalf("invalid model should carry no metrics: %+v", res)
	}
}

func TestEvaluatePerfectFit(t *testing.T) {
	s := coinSample(t)
	res := Evaluate(coinModel(0.5, 0.5), s, s.Joint())

	if res.Error != "" {
		t.Fatalf("unexpected validation error: %s", res.Error)
	}
	if res.Hellinger == nil || *res.Hellinger > 1e-9 {
		t.Fatalf("Hellinger = %v, want ~0", res.Hellinger)
	}
	if res.JSDistance == nil || *res.JSDistance > 1e-6 {
		t.Fatalf("JS distance = %v, want ~0", res.JSDistance)
	}
	// All-categorical data carries no MSE.
	if res.MSE != nil || res.CumulativeMSE != nil {
		t.Fatalf("categorical-only data should carry no MSE: %+v", res)
	}
}

func TestEvaluateUnconditionalMSE(t *testing.T) {
	s, err := sample.New([]sample.RandomVariable{
		{Key: "die", Name: "die", Values: []string{"1", "2", "1", "2"}, Type: sample.Numerical},
	})
	if err != nil {
		t.Fatalf("sample: %v", err)
	}

	m := NewModel("uniform", []VariableStates{{Key: "die", States: []string{"1", "2"}}})
	m.AddOutcome(dist.Tuple{"1"}, 0.5)
	m.AddOutcome(dist.Tuple{"2"}, 0.5)

	res := Evaluate(m, s, s.Joint())
	if res.MSE == nil {
		t.Fatal("numeric-only data should carry an unconditional MSE")
	}
	// Model mean matches the empirical mean (1.5), so MSE is the model
	// variance 0.25.
	if got := *res.MSE; got < 0.25-1e-9 || got > 0.25+1e-9 {
		t.Fatalf("MSE = %v, want 0.25", got)
	}
}

func TestEvaluateConditionalMSE(t *testing.T) {
	s, err := sample.New([]sample.RandomVariable{
		{Key: "value", Name: "value", Values: []string{"0", "0", "1", "1"}, Type: sample.Numerical},
		{Key: "group", Name: "group", Values: []string{"a", "a", "b", "b"}, Type: sample.Nominal},
	})
	if err != nil {
		t.Fatalf("sample: %v", err)
	}

	m := NewModel("exact", []VariableStates{
		{Key: "value", States: []string{"0", "1"}},
		{Key: "group", States: []string{"a", "b"}},
	})
	m.AddOutcome(dist.Tuple{"0", "a"}, 0.5)
	m.AddOutcome(dist.Tuple{"0", "b"}, 0)
	m.AddOutcome(dist.Tuple{"1", "a"}, 0)
	m.AddOutcome(dist.Tuple{"1", "b"}, 0.5)

	res := Evaluate(m, s, s.Joint())
	if res.ConditionalMSE == nil || res.CumulativeMSE == nil {
		t.Fatalf("mixed data should carry conditional MSE: %+v", res)
	}
	for label, mse := range res.ConditionalMSE {
		if mse > 1e-9 {
			t.Fatalf("condition %q: MSE = %v, want 0 for the exact model", label, mse)
		}
		if strings.Contains(label, "|") {
			t.Fatalf("condition label %q leaked an internal separator", label)
		}
	}
	if *res.CumulativeMSE > 1e-9 {
		t.Fatalf("cumulative MSE = %v, want 0", *res.CumulativeMSE)
	}
}

// Condition values may legitimately contain commas. The tuples ("a,b","c")
// and ("a","b,c") render to the same comma join, so grouping must use the
// escaped tuple key to keep them in separate buckets.
func TestEvaluateConditionalMSECommaValues(t *testing.T) {
	s, err := sample.New([]sample.RandomVariable{
		{Key: "value", Name: "value", Values: []string{"1", "1", "5", "5"}, Type: sample.Numerical},
		{Key: "first", Name: "first", Values: []string{"a,b", "a,b", "a", "a"}, Type: sample.Nominal},
		{Key: "second", Name: "second", Values: []string{"c", "c", "b,c", "b,c"}, Type: sample.Nominal},
	})
	if err != nil {
		t.Fatalf("sample: %v", err)
	}

	m := NewModel("exact", []VariableStates{
		{Key: "value", States: []string{"1", "5"}},
		{Key: "first", States: []string{"a,b", "a"}},
		{Key: "second", States: []string{"c", "b,c"}},
	})
	for _, outcome := range m.Outcomes() {
		m.AddOutcome(outcome, 0)
	}
	m.AddOutcome(dist.Tuple{"1", "a,b", "c"}, 0.5)
	m.AddOutcome(dist.Tuple{"5", "a", "b,c"}, 0.5)

	res := Evaluate(m, s, s.Joint())
	if res.Error != "" {
		t.Fatalf("unexpected validation error: %s", res.Error)
	}
	if len(res.ConditionalMSE) != 2 {
		t.Fatalf("got %d condition buckets, want 2: %v", len(res.ConditionalMSE), res.ConditionalMSE)
	}
	for label, mse := range res.ConditionalMSE {
		if mse > 1e-9 {
			t.Fatalf("condition %q: MSE = %v, want 0 for the exact model", label, mse)
		}
	}
	if *res.CumulativeMSE > 1e-9 {
		t.Fatalf("cumulative MSE = %v, want 0", *res.CumulativeMSE)
	}
}
