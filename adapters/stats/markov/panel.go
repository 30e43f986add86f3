package markov

import (
	"fmt"
	"sort"

	"gostoch/domain/core"
)

// Panel is a numInstances × numTimeSteps grid of categorical states plus the
// time labels. Instances[i][t] is instance i's state at step t.
type Panel struct {
	TimeLabels []string   `json:"time_labels"`
	Instances  [][]string `json:"instances"`
}

// NewPanel validates and assembles a panel: at least one instance, at least
// one time step, and every instance observed at every step.
func NewPanel(timeLabels []string, instances [][]string) (Panel, error) {
	if len(instances) == 0 || len(timeLabels) == 0 {
		return Panel{}, core.ErrEmptyDataset
	}
	for i, inst := range instances {
		if len(inst) != len(timeLabels) {
			return Panel{}, fmt.Errorf("%w: instance %d has %d states, expected %d",
				core.ErrUnequalLengths, i+1, len(inst), len(timeLabels))
		}
	}
	return Panel{TimeLabels: timeLabels, Instances: instances}, nil
}

// Steps returns the number of time steps.
func (p Panel) Steps() int {
	return len(p.TimeLabels)
}

// Size returns the number of instances.
func (p Panel) Size() int {
	return len(p.Instances)
}

// States returns the sorted distinct states observed anywhere in the panel.
func (p Panel) States() []string {
	seen := make(map[string]struct{})
	for _, inst := range p.Instances {
		for _, s := range inst {
			seen[s] = struct{}{}
		}
	}
	states := make([]string, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// CrossSection returns every instance's state at one time step.
func (p Panel) CrossSection(t int) []string {
	out := make([]string, len(p.Instances))
	for i, inst := range p.Instances {
		out[i] = inst[t]
	}
	return out
}
