package export

import (
	"encoding/json"
	"io"

	"gostoch/domain/stats"
)

// WriteJSON serializes a cross-sectional report. Distribution sections are
// ordered slices, so PMFs serialize as ordered key/value pairs rather than
// map-order noise.
func WriteJSON(w io.Writer, report *stats.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteTimeSeriesJSON serializes a time-series diagnostics report.
func WriteTimeSeriesJSON(w io.Writer, report *stats.TimeSeriesReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
