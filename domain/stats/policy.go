package stats

// The metric policies in this file exist because several defensible
// definitions circulate for the same metric (mode ties, zero-variance
// correlation, homogeneity cutoffs). The engine takes one explicit Policy
// instead of hard-coding a choice per call site.

// ModeTiePolicy controls how a fully tied (uniform) distribution reports its
// mode.
type ModeTiePolicy string

const (
	// ModeTieAll reports every tied value as a mode.
	ModeTieAll ModeTiePolicy = "all"
	// ModeTieNone reports no mode when every value ties (no unique mode).
	ModeTieNone ModeTiePolicy = "none"
)

// PearsonZeroVariancePolicy controls the result when either standard
// deviation is zero.
type PearsonZeroVariancePolicy string

const (
	// PearsonUndefined surfaces an explicitly absent value.
	PearsonUndefined PearsonZeroVariancePolicy = "undefined"
	// PearsonZero reports 0.
	PearsonZero PearsonZeroVariancePolicy = "zero"
)

// Policy is the tunable metric-policy table passed into the engines.
type Policy struct {
	ModeTie             ModeTiePolicy             `json:"mode_tie"`
	PearsonZeroVariance PearsonZeroVariancePolicy `json:"pearson_zero_variance"`

	// Homogeneity decision thresholds for the time-series pipeline. These
	// are heuristic cutoffs, not calibrated tests.
	HomogeneityHellingerMax float64 `json:"homogeneity_hellinger_max"`
	HomogeneityGJSMax       float64 `json:"homogeneity_gjs_max"`

	// ChainRuleDriftTolerance is how far the chain-rule approximation's mass
	// may drift from 1 before it is renormalized.
	ChainRuleDriftTolerance float64 `json:"chain_rule_drift_tolerance"`
}

// DefaultPolicy returns the adopted defaults: report all tied modes, surface
// zero-variance Pearson as undefined, homogeneity cutoff 0.5 on both
// Hellinger and GJS distance.
func DefaultPolicy() Policy {
	return Policy{
		ModeTie:                 ModeTieAll,
		PearsonZeroVariance:     PearsonUndefined,
		HomogeneityHellingerMax: 0.5,
		HomogeneityGJSMax:       0.5,
		ChainRuleDriftTolerance: 1e-5,
	}
}
