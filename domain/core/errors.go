package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrReportNotFound   = fmt.Errorf("%w: report", ErrNotFound)
	ErrVariableNotFound = fmt.Errorf("%w: variable", ErrNotFound)

	// Hard input failures: these abort the whole run
	ErrEmptyDataset    = errors.New("dataset is empty")
	ErrMissingHeader   = errors.New("missing header row")
	ErrRaggedRow       = errors.New("row length does not match header")
	ErrBlankCell       = errors.New("blank cell in dataset")
	ErrBadNumberCell   = errors.New("cell is not a number")
	ErrBadPanelHeader  = errors.New("time-series header must be Time,Instance1..InstanceK")
	ErrUnequalLengths  = errors.New("variables have unequal observation counts")
	ErrOrdinalCoverage = errors.New("ordinal order does not cover observed values")

	// Soft model-validation failures: isolated to one ModelFitResult
	ErrModelArity       = errors.New("model arity does not match data")
	ErrModelOrder       = errors.New("model variable order does not match data")
	ErrModelProbability = errors.New("model probabilities do not sum to 1")
	ErrModelIncomplete  = errors.New("model joint table is incomplete")
)

// Error constructors with context

// NewRowError names the offending row, indexed from 1 as users see it.
func NewRowError(sentinel error, row int, detail string) error {
	return fmt.Errorf("%w: row %d: %s", sentinel, row, detail)
}

// NewCellError names the offending row and column.
func NewCellError(sentinel error, row, col int) error {
	return fmt.Errorf("%w: row %d, column %d", sentinel, row, col)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers

// IsHardInputError reports whether err aborts the entire run.
func IsHardInputError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrMissingHeader) ||
		errors.Is(err, ErrRaggedRow) ||
		errors.Is(err, ErrBlankCell) ||
		errors.Is(err, ErrBadNumberCell) ||
		errors.Is(err, ErrBadPanelHeader) ||
		errors.Is(err, ErrUnequalLengths) ||
		errors.Is(err, ErrOrdinalCoverage)
}

// IsModelError reports whether err is a soft per-model validation failure.
func IsModelError(err error) bool {
	return errors.Is(err, ErrModelArity) ||
		errors.Is(err, ErrModelOrder) ||
		errors.Is(err, ErrModelProbability) ||
		errors.Is(err, ErrModelIncomplete)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
