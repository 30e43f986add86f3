package stats

import (
	"sort"

	"gostoch/domain/core"
	"gostoch/domain/dist"
	"gostoch/domain/sample"
)

// ============================================================================
// CROSS-SECTIONAL REPORT RECORDS
// ============================================================================
// All records here are stateless value objects created fresh per analysis
// run and never mutated after construction.

// VariableMetrics holds single-variable summary metrics. Pointer fields are
// nil when the metric is undefined for the variable's type (moments on
// non-numeric data).
type VariableMetrics struct {
	Mean     *float64 `json:"mean,omitempty"`
	Variance *float64 `json:"variance,omitempty"`
	Mode     []string `json:"mode"`
	Median   *string  `json:"median,omitempty"`
}

// VariableReport is the per-variable section of a report: the sorted
// empirical distribution plus empirical metrics, and theoretical metrics per
// valid model.
type VariableReport struct {
	Key          core.VariableKey                 `json:"key"`
	Name         string                           `json:"name"`
	Type         sample.VarType                   `json:"type"`
	Distribution dist.Distribution                `json:"distribution"`
	Empirical    VariableMetrics                  `json:"empirical"`
	Theoretical  map[core.ModelID]VariableMetrics `json:"theoretical,omitempty"`
}

// PairwiseMetrics holds the four dependence measures for one variable pair.
// Every field is nil when the measure does not apply to the pair's types, or
// (Pearson under the undefined policy) when degenerate input makes it
// undefined.
type PairwiseMetrics struct {
	Pearson             *float64 `json:"pearson,omitempty"`
	MutualInformation   *float64 `json:"mutual_information,omitempty"`
	DistanceCorrelation *float64 `json:"distance_correlation,omitempty"`
	CramersV            *float64 `json:"cramers_v,omitempty"`
}

// PairwiseResult holds empirical and per-model dependence measures for one
// unordered variable pair, keyed direction-independently.
type PairwiseResult struct {
	PairKey   string                           `json:"pair_key"`
	X         core.VariableKey                 `json:"x"`
	Y         core.VariableKey                 `json:"y"`
	Empirical PairwiseMetrics                  `json:"empirical"`
	ByModel   map[core.ModelID]PairwiseMetrics `json:"by_model,omitempty"`
}

// ConditionalResult holds the conditional distributions of Target given each
// observed value of Given. Both directions of a pair appear as separate
// records under the same pair key.
type ConditionalResult struct {
	PairKey       string                       `json:"pair_key"`
	Target        core.VariableKey             `json:"target"`
	Given         core.VariableKey             `json:"given"`
	Distributions map[string]dist.Distribution `json:"distributions"`
}

// ModelFitResult holds goodness-of-fit metrics for one theoretical model, or
// only a validation error for a model that failed validation. Invalid models
// are excluded from comparisons but still appear in the report.
type ModelFitResult struct {
	ModelID core.ModelID `json:"model_id"`
	Name    string       `json:"name"`
	Error   string       `json:"error,omitempty"`

	Hellinger  *float64 `json:"hellinger,omitempty"`
	JSDistance *float64 `json:"js_distance,omitempty"`

	// MSE is the unconditional path, used when every variable is numeric.
	MSE *float64 `json:"mse,omitempty"`
	// ConditionalMSE and CumulativeMSE are the conditional path, selected
	// when the data mixes numerical and categorical variables.
	ConditionalMSE map[string]float64 `json:"conditional_mse,omitempty"`
	CumulativeMSE  *float64           `json:"cumulative_mse,omitempty"`
}

// Report is the complete cross-sectional analysis output.
type Report struct {
	ID           core.ReportID       `json:"id"`
	CreatedAt    core.Timestamp      `json:"created_at"`
	SampleSize   int                 `json:"sample_size"`
	Fingerprint  core.Hash           `json:"fingerprint"`
	Policy       Policy              `json:"policy"`
	Variables    []VariableReport    `json:"variables"`
	Pairwise     []PairwiseResult    `json:"pairwise"`
	Conditionals []ConditionalResult `json:"conditionals"`
	ModelFits    []ModelFitResult    `json:"model_fits"`
}

// ============================================================================
// TIME-SERIES RECORDS
// ============================================================================

// TPM is a first-order transition probability matrix: per from-state, a
// normalized distribution over next states. A TPM estimated from a step with
// no observed history is empty.
type TPM struct {
	Rows map[string]map[string]float64 `json:"rows"`
}

// NewTPM creates an empty TPM.
func NewTPM() TPM {
	return TPM{Rows: make(map[string]map[string]float64)}
}

// IsEmpty reports whether no transitions were observed.
func (t TPM) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Prob returns the transition probability from → to, 0 when unobserved.
func (t TPM) Prob(from, to string) float64 {
	return t.Rows[from][to]
}

// FromStates returns the observed from-states in sorted order.
func (t TPM) FromStates() []string {
	states := make([]string, 0, len(t.Rows))
	for s := range t.Rows {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// StepStats is one time step's cross-sectional mean and variance for the
// weak-stationarity check. Nil fields mean the step's states were not
// numeric-coercible.
type StepStats struct {
	Time     string   `json:"time"`
	Mean     *float64 `json:"mean,omitempty"`
	Variance *float64 `json:"variance,omitempty"`
}

// StepDistance is the Hellinger distance between the TPMs of two transition
// steps.
type StepDistance struct {
	StepI     int     `json:"step_i"`
	StepJ     int     `json:"step_j"`
	Hellinger float64 `json:"hellinger"`
}

// TimeSeriesReport is the complete Markov-chain diagnostics output.
type TimeSeriesReport struct {
	ID          core.ReportID  `json:"id"`
	CreatedAt   core.Timestamp `json:"created_at"`
	Policy      Policy         `json:"policy"`
	Instances   int            `json:"instances"`
	TimeSteps   int            `json:"time_steps"`
	TimeLabels  []string       `json:"time_labels"`
	States      []string       `json:"states"`

	// StepTPMs[t] is the TPM for the transition from step t to step t+1.
	StepTPMs []TPM `json:"step_tpms"`

	// Homogeneity diagnostics.
	PairwiseDistances []StepDistance `json:"pairwise_distances"`
	GJSDistance       float64        `json:"gjs_distance"`
	IsHomogeneous     bool           `json:"is_homogeneous"`

	// RepresentativeTPM is the first step's TPM when homogeneous, otherwise
	// the entrywise time-average.
	RepresentativeTPM TPM  `json:"representative_tpm"`
	Averaged          bool `json:"averaged"`

	// Markovian fit of the chain-rule approximation against the observed
	// full-history joint distribution.
	MarkovHellinger  float64 `json:"markov_hellinger"`
	MarkovJSDistance float64 `json:"markov_js_distance"`

	Stationarity []StepStats `json:"stationarity"`
}
