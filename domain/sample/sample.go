package sample

import (
	"fmt"

	"gostoch/domain/core"
	"gostoch/domain/dist"
)

// Sample is an immutable snapshot of observed variables. All variables share
// the same observation count; validation happens once at construction and
// every downstream computation trusts it.
type Sample struct {
	Variables []RandomVariable
}

// New validates and assembles a sample. It fails on an empty variable set,
// zero observations, unequal lengths, or an ordinal order that does not
// cover its observed values.
func New(vars []RandomVariable) (Sample, error) {
	if len(vars) == 0 {
		return Sample{}, core.ErrEmptyDataset
	}
	n := len(vars[0].Values)
	if n == 0 {
		return Sample{}, core.ErrEmptyDataset
	}
	for _, v := range vars {
		if len(v.Values) != n {
			return Sample{}, fmt.Errorf("%w: %s has %d observations, expected %d",
				core.ErrUnequalLengths, v.Key, len(v.Values), n)
		}
		if err := v.ValidateOrder(); err != nil {
			return Sample{}, fmt.Errorf("%w: %v", core.ErrOrdinalCoverage, err)
		}
	}
	return Sample{Variables: vars}, nil
}

// Size returns the shared observation count.
func (s Sample) Size() int {
	if len(s.Variables) == 0 {
		return 0
	}
	return len(s.Variables[0].Values)
}

// Arity returns the number of variables.
func (s Sample) Arity() int {
	return len(s.Variables)
}

// Columns returns the raw observation columns in variable order.
func (s Sample) Columns() [][]string {
	cols := make([][]string, len(s.Variables))
	for i, v := range s.Variables {
		cols[i] = v.Values
	}
	return cols
}

// Names returns the display names in variable order.
func (s Sample) Names() []string {
	names := make([]string, len(s.Variables))
	for i, v := range s.Variables {
		names[i] = v.Name
	}
	return names
}

// Keys returns the variable keys in variable order.
func (s Sample) Keys() []core.VariableKey {
	keys := make([]core.VariableKey, len(s.Variables))
	for i, v := range s.Variables {
		keys[i] = v.Key
	}
	return keys
}

// ByKey finds a variable and its index position.
func (s Sample) ByKey(key core.VariableKey) (RandomVariable, int, bool) {
	for i, v := range s.Variables {
		if v.Key == key {
			return v, i, true
		}
	}
	return RandomVariable{}, -1, false
}

// HasNumeric reports whether any variable is numeric.
func (s Sample) HasNumeric() bool {
	for _, v := range s.Variables {
		if v.IsNumeric() {
			return true
		}
	}
	return false
}

// HasCategorical reports whether any variable is categorical.
func (s Sample) HasCategorical() bool {
	for _, v := range s.Variables {
		if v.IsCategorical() {
			return true
		}
	}
	return false
}

// Joint builds the empirical joint PMF over all variables.
func (s Sample) Joint() dist.PMF {
	return dist.EmpiricalJoint(s.Columns())
}

// Fingerprint hashes the sample for report traceability.
func (s Sample) Fingerprint() core.Hash {
	names := make([]string, len(s.Variables))
	columns := make(map[string][]string, len(s.Variables))
	for i, v := range s.Variables {
		names[i] = string(v.Key)
		columns[string(v.Key)] = v.Values
	}
	return core.SampleFingerprint(names, columns)
}
