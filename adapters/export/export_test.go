package export

import (
	"strings"
	"testing"

	"gostoch/domain/core"
	"gostoch/domain/dist"
	"gostoch/domain/stats"
)

func fptr(v float64) *float64 { return &v }

func sampleReport() *stats.Report {
	median := "1"
	return &stats.Report{
		ID:         core.ReportID("r1"),
		SampleSize: 4,
		Variables: []stats.VariableReport{
			{
				Key:  "score",
				Name: "score",
				Type: "numerical",
				Distribution: dist.Distribution{
					{Value: "1", Probability: 0.5, Cumulative: 0.5},
					{Value: "2", Probability: 0.5, Cumulative: 1},
				},
				Empirical: stats.VariableMetrics{
					Mean:     fptr(1.5),
					Variance: fptr(0.25),
					Mode:     []string{"1", "2"},
					Median:   &median,
				},
			},
			{
				Key:  "group",
				Name: "group",
				Type: "nominal",
				Distribution: dist.Distribution{
					{Value: "a", Probability: 1, Cumulative: 1},
				},
				Empirical: stats.VariableMetrics{Mode: []string{"a"}},
			},
		},
		Pairwise: []stats.PairwiseResult{
			{
				PairKey: "group|score",
				X:       "score",
				Y:       "group",
				Empirical: stats.PairwiseMetrics{
					MutualInformation:   fptr(1),
					DistanceCorrelation: fptr(1),
				},
			},
		},
		ModelFits: []stats.ModelFitResult{
			{ModelID: "m1", Name: "fair", Hellinger: fptr(0), JSDistance: fptr(0)},
			{ModelID: "m2", Name: "broken", Error: "joint probabilities sum to 0.9"},
		},
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleReport())

	for _, want := range []string{
		"# Dependence Report r1",
		"Sample size: 4",
		"| score | numerical | 1.5000 | 0.2500 | 1, 2 | 1 |",
		`| group\|score |`,
		"| fair | 0.0000 | 0.0000 |",
		"joint probabilities sum to 0.9",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	// Undefined metrics render as n/a, never as empty cells.
	if !strings.Contains(md, "| group | nominal | n/a | n/a |") {
		t.Fatalf("nominal row should carry n/a moments:\n%s", md)
	}
	// The canonical pair separator must not open a phantom table column.
	if strings.Contains(md, "| group|score |") {
		t.Fatalf("pair key separator left unescaped:\n%s", md)
	}
}

func TestRenderTimeSeriesMarkdown(t *testing.T) {
	report := &stats.TimeSeriesReport{
		ID:               core.ReportID("ts1"),
		Instances:        2,
		TimeSteps:        3,
		States:           []string{"a", "b"},
		IsHomogeneous:    true,
		GJSDistance:      0.0123,
		MarkovHellinger:  0.05,
		MarkovJSDistance: 0.04,
		Stationarity: []stats.StepStats{
			{Time: "t0", Mean: fptr(1), Variance: fptr(0)},
			{Time: "t1"},
		},
	}

	md := RenderTimeSeriesMarkdown(report)
	for _, want := range []string{
		"# Markov Diagnostics ts1",
		"Instances: 2, time steps: 3, states: a, b",
		"Homogeneous: true (GJS distance 0.0123)",
		"| t0 | 1.0000 | 0.0000 |",
		"| t1 | n/a | n/a |",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestToHTML(t *testing.T) {
	out := string(ToHTML(RenderMarkdown(sampleReport())))
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<table>") {
		t.Fatalf("expected heading and table elements:\n%s", out)
	}
	if !strings.Contains(out, "Dependence Report r1") {
		t.Fatalf("expected report title:\n%s", out)
	}
}

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	if err := WriteCSV(&b, sampleReport()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"variable,type,mean,variance,mode,median,value,probability,cumulative",
		"score,numerical,1.5,0.25,1;2,1,1,0.5,0.5",
		"score,numerical,1.5,0.25,1;2,1,2,0.5,1",
		"pair,x,y,pearson,mutual_information,distance_correlation,cramers_v",
		"group|score,score,group,,1,1,",
		"model,error,hellinger,js_distance,mse,cumulative_mse",
		"broken,joint probabilities sum to 0.9,,,,",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("csv missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var b strings.Builder
	if err := WriteJSON(&b, sampleReport()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		`"sample_size": 4`,
		`"pair_key": "group|score"`,
		`"mutual_information": 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("json missing %q:\n%s", want, out)
		}
	}
	// Undefined metrics are omitted rather than emitted as nulls.
	if strings.Contains(out, `"pearson"`) {
		t.Fatalf("nil pearson should be omitted:\n%s", out)
	}
}
