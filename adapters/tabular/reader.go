package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gostoch/domain/core"
	"gostoch/domain/sample"
)

// Options controls how raw columns become typed variables. Types default to
// Numerical when every cell coerces to a number and Nominal otherwise; both
// can be overridden per column, and ordinal columns carry their declared
// value order.
type Options struct {
	Types  map[string]sample.VarType
	Orders map[string][]string
}

// ParseSample reads a cross-sectional CSV: a header row of variable names
// followed by one row per observation. Malformed input is a hard failure
// naming the offending row (data rows indexed from 1).
func ParseSample(r io.Reader, opts Options) (sample.Sample, error) {
	rows, err := readAll(r)
	if err != nil {
		return sample.Sample{}, err
	}
	return ParseRows(rows, opts)
}

// ParseRows builds a validated sample from pre-split rows, the first being
// the header.
func ParseRows(rows [][]string, opts Options) (sample.Sample, error) {
	if len(rows) == 0 {
		return sample.Sample{}, core.ErrMissingHeader
	}

	header := rows[0]
	if len(header) == 0 {
		return sample.Sample{}, core.ErrMissingHeader
	}
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return sample.Sample{}, core.NewValidationError("header",
				fmt.Sprintf("column %d has no name", i+1))
		}
		if _, dup := seen[name]; dup {
			return sample.Sample{}, core.NewValidationError("header",
				fmt.Sprintf("duplicate variable name %q", name))
		}
		seen[name] = struct{}{}
		header[i] = name
	}

	data := rows[1:]
	if len(data) == 0 {
		return sample.Sample{}, core.ErrEmptyDataset
	}

	columns := make([][]string, len(header))
	for rowIdx, row := range data {
		if len(row) != len(header) {
			return sample.Sample{}, core.NewRowError(core.ErrRaggedRow, rowIdx+1,
				fmt.Sprintf("has %d cells, expected %d", len(row), len(header)))
		}
		for colIdx, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				return sample.Sample{}, core.NewCellError(core.ErrBlankCell, rowIdx+1, colIdx+1)
			}
			columns[colIdx] = append(columns[colIdx], cell)
		}
	}

	vars := make([]sample.RandomVariable, len(header))
	for i, name := range header {
		vars[i] = sample.RandomVariable{
			Key:    core.VariableKey(name),
			Name:   name,
			Values: columns[i],
			Type:   inferType(name, columns[i], opts),
			Order:  opts.Orders[name],
		}
	}
	return sample.New(vars)
}

// inferType applies the declared override when present, otherwise calls a
// column numerical when every cell coerces and nominal otherwise.
func inferType(name string, values []string, opts Options) sample.VarType {
	if t, ok := opts.Types[name]; ok {
		return t
	}
	for _, v := range values {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return sample.Nominal
		}
	}
	return sample.Numerical
}

// readAll reads CSV rows without enforcing uniform field counts; width
// validation happens against the header so the error can name the row.
func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV input: %w", err)
	}
	return rows, nil
}
