package theory

import (
	"fmt"

	"gostoch/domain/core"
	"gostoch/domain/dist"
	"gostoch/domain/sample"
)

// VariableStates declares one variable's state space inside a model, in the
// same position the variable occupies in the data.
type VariableStates struct {
	Key    core.VariableKey `json:"key"`
	States []string         `json:"states"`
}

// TheoreticalModel is a user-declared joint distribution: per-variable state
// spaces plus a joint-probability table keyed by the cartesian product of
// the state spaces.
type TheoreticalModel struct {
	ID        core.ModelID         `json:"id"`
	Name      string               `json:"name"`
	Variables []VariableStates     `json:"variables"`
	Table     map[dist.Key]float64 `json:"table"`
}

// NewModel creates an empty model with a fresh ID.
func NewModel(name string, variables []VariableStates) *TheoreticalModel {
	return &TheoreticalModel{
		ID:        core.ModelID(core.NewID()),
		Name:      name,
		Variables: variables,
		Table:     make(map[dist.Key]float64),
	}
}

// AddOutcome accumulates probability onto one joint outcome. Duplicate
// outcome rows accumulate rather than overwrite.
func (m *TheoreticalModel) AddOutcome(values dist.Tuple, prob float64) {
	m.Table[values.Key()] += prob
}

// Outcomes enumerates the cartesian product of the declared state spaces in
// declaration order.
func (m *TheoreticalModel) Outcomes() []dist.Tuple {
	spaces := make([][]string, len(m.Variables))
	for i, v := range m.Variables {
		spaces[i] = v.States
	}
	return Cartesian(spaces)
}

// Validate checks the model against the data's variable order. Violations
// are soft failures: the caller records the error on the model's fit result
// and the run proceeds without this model.
func (m *TheoreticalModel) Validate(s sample.Sample) error {
	if len(m.Variables) != s.Arity() {
		return fmt.Errorf("%w: model has %d variables, data has %d",
			core.ErrModelArity, len(m.Variables), s.Arity())
	}
	for i, v := range m.Variables {
		if v.Key != s.Variables[i].Key {
			return fmt.Errorf("%w: position %d is %s in the model but %s in the data",
				core.ErrModelOrder, i+1, v.Key, s.Variables[i].Key)
		}
		if len(v.States) == 0 {
			return fmt.Errorf("%w: variable %s declares no states",
				core.ErrModelIncomplete, v.Key)
		}
	}

	total := 0.0
	for _, outcome := range m.Outcomes() {
		p, ok := m.Table[outcome.Key()]
		if !ok {
			return fmt.Errorf("%w: no probability for outcome %s",
				core.ErrModelIncomplete, outcome.Key().String())
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: outcome %s has probability %g outside [0,1]",
				core.ErrModelProbability, outcome.Key().String(), p)
		}
		total += p
	}
	if total < 1-dist.SumTolerance || total > 1+dist.SumTolerance {
		return fmt.Errorf("%w: total is %g", core.ErrModelProbability, total)
	}
	return nil
}

// PMF converts the validated model's table into a joint PMF.
func (m *TheoreticalModel) PMF() dist.PMF {
	pmf := dist.NewPMF(len(m.Variables))
	for k, p := range m.Table {
		pmf.P[k] = p
	}
	return pmf
}

// Cartesian enumerates the cartesian product of the given value spaces in
// lexicographic position order.
func Cartesian(spaces [][]string) []dist.Tuple {
	if len(spaces) == 0 {
		return nil
	}
	size := 1
	for _, s := range spaces {
		size *= len(s)
		if size == 0 {
			return nil
		}
	}

	out := make([]dist.Tuple, 0, size)
	idx := make([]int, len(spaces))
	for {
		t := make(dist.Tuple, len(spaces))
		for i, j := range idx {
			t[i] = spaces[i][j]
		}
		out = append(out, t)

		pos := len(idx) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(spaces[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return out
		}
	}
}
