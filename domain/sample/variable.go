package sample

import (
	"sort"
	"strconv"

	"gostoch/domain/core"
	"gostoch/domain/dist"
)

// VarType is the closed set of variable types. The type drives sort order,
// metric applicability and distribution math through the capability table.
type VarType string

const (
	Numerical VarType = "numerical"
	Nominal   VarType = "nominal"
	Ordinal   VarType = "ordinal"
)

// Capability describes what a variable type supports. Every type switch in
// the engine goes through this table instead of scattering type checks.
type Capability struct {
	// Numeric means values coerce to float64: moments, Pearson and numeric
	// distances apply.
	Numeric bool
	// Categorical means the variable participates in contingency-table
	// measures (Cramér's V) and conditional-MSE conditioning.
	Categorical bool
	// DeclaredOrdering means the variable carries its own explicit total
	// order over values.
	DeclaredOrdering bool
}

var capabilities = map[VarType]Capability{
	Numerical: {Numeric: true},
	Nominal:   {Categorical: true},
	Ordinal:   {Categorical: true, DeclaredOrdering: true},
}

// CapabilityOf returns the capability row for a type. Unknown types behave as
// nominal.
func CapabilityOf(t VarType) Capability {
	if c, ok := capabilities[t]; ok {
		return c
	}
	return capabilities[Nominal]
}

// RandomVariable is one observed variable: identity, display name, ordered
// string-encoded observations, a type tag and, for ordinals, the declared
// value order.
type RandomVariable struct {
	Key    core.VariableKey `json:"key"`
	Name   string           `json:"name"`
	Values []string         `json:"values"`
	Type   VarType          `json:"type"`
	Order  []string         `json:"order,omitempty"` // Ordinal only
}

// Capability returns the variable's capability row.
func (v RandomVariable) Capability() Capability {
	return CapabilityOf(v.Type)
}

// IsNumeric reports whether moments and numeric measures apply.
func (v RandomVariable) IsNumeric() bool {
	return v.Capability().Numeric
}

// IsCategorical reports whether contingency-table measures apply.
func (v RandomVariable) IsCategorical() bool {
	return v.Capability().Categorical
}

// Ordering returns the type-specific value ordering: numeric ascending for
// numerical, the declared order for ordinal, lexicographic otherwise.
func (v RandomVariable) Ordering() dist.ValueOrdering {
	switch {
	case v.Capability().Numeric:
		return dist.NumericAscending
	case v.Capability().DeclaredOrdering:
		return dist.DeclaredOrder(v.Order)
	default:
		return dist.Lexicographic
	}
}

// Distinct returns the distinct observed values sorted under the variable's
// ordering.
func (v RandomVariable) Distinct() []string {
	seen := make(map[string]struct{}, len(v.Values))
	var out []string
	for _, val := range v.Values {
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	less := v.Ordering()
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// NumericValues coerces the observations to float64. ok is false when any
// value fails to parse.
func (v RandomVariable) NumericValues() ([]float64, bool) {
	out := make([]float64, len(v.Values))
	for i, s := range v.Values {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// ValidateOrder checks the ordinal invariant: the declared order must cover
// every observed value. Non-ordinal variables always pass.
func (v RandomVariable) ValidateOrder() error {
	if !v.Capability().DeclaredOrdering {
		return nil
	}
	declared := make(map[string]struct{}, len(v.Order))
	for _, o := range v.Order {
		declared[o] = struct{}{}
	}
	for _, val := range v.Values {
		if _, ok := declared[val]; !ok {
			return core.NewValidationError(string(v.Key),
				"ordinal order does not cover observed value "+strconv.Quote(val))
		}
	}
	return nil
}

// EmpiricalPMF builds the variable's own 1-ary empirical PMF.
func (v RandomVariable) EmpiricalPMF() dist.PMF {
	return dist.EmpiricalJoint([][]string{v.Values})
}

// EmpiricalDistribution builds the sorted cumulative distribution under the
// variable's ordering.
func (v RandomVariable) EmpiricalDistribution() dist.Distribution {
	return dist.ToDistribution(v.EmpiricalPMF(), v.Ordering())
}
