package tabular

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gostoch/domain/core"
	"gostoch/domain/dist"
	"gostoch/domain/theory"
)

// ParseModel reads a theoretical joint-distribution table: a header
// Var1,...,VarN,Probability followed by one row per joint outcome. The
// variable name order must equal the data's order, enforced later by model
// validation. Duplicate outcome rows accumulate probability rather than
// overwrite. State spaces are collected from the rows in first-appearance
// order per column.
func ParseModel(name string, r io.Reader) (*theory.TheoreticalModel, error) {
	rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return ParseModelRows(name, rows)
}

// ParseModelRows builds a model from pre-split rows.
func ParseModelRows(name string, rows [][]string) (*theory.TheoreticalModel, error) {
	if len(rows) == 0 {
		return nil, core.ErrMissingHeader
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, core.NewValidationError("model header",
			"need at least one variable column plus Probability")
	}
	last := strings.TrimSpace(header[len(header)-1])
	if !strings.EqualFold(last, "probability") {
		return nil, core.NewValidationError("model header",
			fmt.Sprintf("last column must be Probability, got %q", last))
	}
	varNames := header[:len(header)-1]
	arity := len(varNames)

	variables := make([]theory.VariableStates, arity)
	seen := make([]map[string]struct{}, arity)
	for i, n := range varNames {
		variables[i] = theory.VariableStates{Key: core.VariableKey(strings.TrimSpace(n))}
		seen[i] = make(map[string]struct{})
	}

	model := theory.NewModel(name, variables)
	data := rows[1:]
	if len(data) == 0 {
		return nil, core.ErrEmptyDataset
	}

	for rowIdx, row := range data {
		if len(row) != arity+1 {
			return nil, core.NewRowError(core.ErrRaggedRow, rowIdx+1,
				fmt.Sprintf("has %d cells, expected %d", len(row), arity+1))
		}
		outcome := make(dist.Tuple, arity)
		for i := 0; i < arity; i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				return nil, core.NewCellError(core.ErrBlankCell, rowIdx+1, i+1)
			}
			outcome[i] = cell
			if _, ok := seen[i][cell]; !ok {
				seen[i][cell] = struct{}{}
				model.Variables[i].States = append(model.Variables[i].States, cell)
			}
		}

		probCell := strings.TrimSpace(row[arity])
		prob, err := strconv.ParseFloat(probCell, 64)
		if err != nil {
			return nil, core.NewRowError(core.ErrBadNumberCell, rowIdx+1,
				fmt.Sprintf("probability %q is not a number", probCell))
		}
		model.AddOutcome(outcome, prob)
	}

	return model, nil
}
