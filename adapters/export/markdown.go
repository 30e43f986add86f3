package export

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gostoch/domain/stats"
)

// RenderMarkdown produces a human-readable summary of a report as markdown
// tables.
func RenderMarkdown(report *stats.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dependence Report %s\n\n", report.ID)
	fmt.Fprintf(&b, "Sample size: %d\n\n", report.SampleSize)

	b.WriteString("## Variables\n\n")
	b.WriteString("| Variable | Type | Mean | Variance | Mode | Median |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, v := range report.Variables {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			mdCell(string(v.Key)), v.Type,
			mdOptional(v.Empirical.Mean),
			mdOptional(v.Empirical.Variance),
			mdCell(strings.Join(v.Empirical.Mode, ", ")),
			mdCell(mdOptionalString(v.Empirical.Median)),
		)
	}

	b.WriteString("\n## Pairwise Dependence\n\n")
	b.WriteString("| Pair | Pearson | Mutual Info (bits) | Distance Corr | Cramér's V |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, p := range report.Pairwise {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			mdCell(p.PairKey),
			mdOptional(p.Empirical.Pearson),
			mdOptional(p.Empirical.MutualInformation),
			mdOptional(p.Empirical.DistanceCorrelation),
			mdOptional(p.Empirical.CramersV),
		)
	}

	if len(report.ModelFits) > 0 {
		b.WriteString("\n## Model Fits\n\n")
		b.WriteString("| Model | Hellinger | JS Distance | MSE | Cumulative MSE | Error |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, m := range report.ModelFits {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				mdCell(m.Name),
				mdOptional(m.Hellinger),
				mdOptional(m.JSDistance),
				mdOptional(m.MSE),
				mdOptional(m.CumulativeMSE),
				mdCell(m.Error),
			)
		}
	}

	return b.String()
}

// RenderTimeSeriesMarkdown summarizes the Markov diagnostics.
func RenderTimeSeriesMarkdown(report *stats.TimeSeriesReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Markov Diagnostics %s\n\n", report.ID)
	fmt.Fprintf(&b, "Instances: %d, time steps: %d, states: %s\n\n",
		report.Instances, report.TimeSteps, strings.Join(report.States, ", "))
	fmt.Fprintf(&b, "Homogeneous: %v (GJS distance %.4f)\n\n", report.IsHomogeneous, report.GJSDistance)
	fmt.Fprintf(&b, "Markovian fit: Hellinger %.4f, JS distance %.4f\n\n",
		report.MarkovHellinger, report.MarkovJSDistance)

	b.WriteString("## Weak Stationarity\n\n")
	b.WriteString("| Time | Mean | Variance |\n")
	b.WriteString("|---|---|---|\n")
	for _, s := range report.Stationarity {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", mdCell(s.Time), mdOptional(s.Mean), mdOptional(s.Variance))
	}

	return b.String()
}

// ToHTML renders a markdown summary as a standalone HTML fragment.
func ToHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

// mdCell escapes the table-cell delimiter in values that come from user
// data, so a pair key like "group|score" stays one cell.
func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func mdOptional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *v)
}

func mdOptionalString(v *string) string {
	if v == nil {
		return "n/a"
	}
	return *v
}
