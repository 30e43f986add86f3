package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"gostoch/domain/stats"
)

// WriteCSV flattens a report into three sections: single-variable metrics
// with their PMFs, pairwise metrics, and model-fit metrics. Sections are
// separated by a blank row.
func WriteCSV(w io.Writer, report *stats.Report) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeVariableSection(cw, report); err != nil {
		return err
	}
	if err := cw.Write(nil); err != nil {
		return err
	}
	if err := writePairwiseSection(cw, report); err != nil {
		return err
	}
	if err := cw.Write(nil); err != nil {
		return err
	}
	if err := writeModelSection(cw, report); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func writeVariableSection(cw *csv.Writer, report *stats.Report) error {
	if err := cw.Write([]string{"variable", "type", "mean", "variance", "mode", "median", "value", "probability", "cumulative"}); err != nil {
		return err
	}
	for _, v := range report.Variables {
		base := []string{
			string(v.Key),
			string(v.Type),
			formatOptional(v.Empirical.Mean),
			formatOptional(v.Empirical.Variance),
			strings.Join(v.Empirical.Mode, ";"),
			formatOptionalString(v.Empirical.Median),
		}
		for _, e := range v.Distribution {
			row := append(append([]string{}, base...),
				e.Value,
				fmt.Sprintf("%g", e.Probability),
				fmt.Sprintf("%g", e.Cumulative),
			)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePairwiseSection(cw *csv.Writer, report *stats.Report) error {
	if err := cw.Write([]string{"pair", "x", "y", "pearson", "mutual_information", "distance_correlation", "cramers_v"}); err != nil {
		return err
	}
	for _, p := range report.Pairwise {
		row := []string{
			p.PairKey,
			string(p.X),
			string(p.Y),
			formatOptional(p.Empirical.Pearson),
			formatOptional(p.Empirical.MutualInformation),
			formatOptional(p.Empirical.DistanceCorrelation),
			formatOptional(p.Empirical.CramersV),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeModelSection(cw *csv.Writer, report *stats.Report) error {
	if err := cw.Write([]string{"model", "error", "hellinger", "js_distance", "mse", "cumulative_mse"}); err != nil {
		return err
	}
	for _, m := range report.ModelFits {
		row := []string{
			m.Name,
			m.Error,
			formatOptional(m.Hellinger),
			formatOptional(m.JSDistance),
			formatOptional(m.MSE),
			formatOptional(m.CumulativeMSE),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}

func formatOptionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
