package tabular

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gostoch/adapters/stats/markov"
	"gostoch/domain/core"
)

// ParsePanel reads a time-series CSV with header Time,Instance1..InstanceK
// (case-insensitive, sequential numbering enforced). Each data row is one
// time label followed by one categorical state per instance.
func ParsePanel(r io.Reader) (markov.Panel, error) {
	rows, err := readAll(r)
	if err != nil {
		return markov.Panel{}, err
	}
	return ParsePanelRows(rows)
}

// ParsePanelRows builds a validated panel from pre-split rows.
func ParsePanelRows(rows [][]string) (markov.Panel, error) {
	if len(rows) == 0 {
		return markov.Panel{}, core.ErrMissingHeader
	}

	header := rows[0]
	if err := validatePanelHeader(header); err != nil {
		return markov.Panel{}, err
	}
	instances := len(header) - 1

	data := rows[1:]
	if len(data) == 0 {
		return markov.Panel{}, core.ErrEmptyDataset
	}

	timeLabels := make([]string, 0, len(data))
	// states[i][t] is instance i's state at step t.
	states := make([][]string, instances)
	for rowIdx, row := range data {
		if len(row) != len(header) {
			return markov.Panel{}, core.NewRowError(core.ErrRaggedRow, rowIdx+1,
				fmt.Sprintf("has %d cells, expected %d", len(row), len(header)))
		}
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				return markov.Panel{}, core.NewCellError(core.ErrBlankCell, rowIdx+1, colIdx+1)
			}
		}
		timeLabels = append(timeLabels, strings.TrimSpace(row[0]))
		for i := 0; i < instances; i++ {
			states[i] = append(states[i], strings.TrimSpace(row[i+1]))
		}
	}

	return markov.NewPanel(timeLabels, states)
}

// validatePanelHeader enforces Time,Instance1..InstanceK with sequential
// numbering, case-insensitively.
func validatePanelHeader(header []string) error {
	if len(header) < 2 {
		return fmt.Errorf("%w: need Time plus at least one instance column", core.ErrBadPanelHeader)
	}
	if !strings.EqualFold(strings.TrimSpace(header[0]), "time") {
		return fmt.Errorf("%w: first column is %q", core.ErrBadPanelHeader, header[0])
	}
	for i, col := range header[1:] {
		name := strings.ToLower(strings.TrimSpace(col))
		if !strings.HasPrefix(name, "instance") {
			return fmt.Errorf("%w: column %d is %q", core.ErrBadPanelHeader, i+2, col)
		}
		num, err := strconv.Atoi(strings.TrimPrefix(name, "instance"))
		if err != nil || num != i+1 {
			return fmt.Errorf("%w: expected Instance%d at column %d, got %q",
				core.ErrBadPanelHeader, i+1, i+2, col)
		}
	}
	return nil
}
