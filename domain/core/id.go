package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// VariableKey identifies a random variable within one analysis.
	VariableKey ID
	// ModelID identifies a user-declared theoretical model.
	ModelID ID
	// ReportID identifies a completed analysis report.
	ReportID ID
	// RunID identifies one analysis run (cross-sectional or time-series).
	RunID ID
)

// String conversions for domain IDs
func (id VariableKey) String() string { return ID(id).String() }
func (id ModelID) String() string     { return ID(id).String() }
func (id ReportID) String() string    { return ID(id).String() }
func (id RunID) String() string       { return ID(id).String() }

// ParseVariableKey parses a string into VariableKey
func ParseVariableKey(s string) (VariableKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("variable key cannot be empty")
	}
	return VariableKey(s), nil
}

// ParseModelID parses a string into ModelID
func ParseModelID(s string) (ModelID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("model ID cannot be empty")
	}
	return ModelID(s), nil
}

// ParseReportID parses a string into ReportID
func ParseReportID(s string) (ReportID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("report ID cannot be empty")
	}
	return ReportID(s), nil
}

// PairKey is the canonical, direction-independent key for a variable pair.
// The two keys are sorted lexicographically so (X,Y) and (Y,X) collapse to
// the same key.
func PairKey(a, b VariableKey) string {
	if string(b) < string(a) {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}
