package api

import (
	"gostoch/domain/sample"
)

// ModelPayload is one theoretical model submitted for goodness-of-fit
// evaluation: a name plus table rows in the model CSV layout (Var1..VarN,
// Probability header, one outcome per row).
type ModelPayload struct {
	Name string     `json:"name" binding:"required"`
	Rows [][]string `json:"rows" binding:"required"`
}

// AnalyzeRequest is the JSON body for a cross-sectional run. Rows carry the
// dataset in CSV layout including the header row. Types and Orders override
// the inferred variable types.
type AnalyzeRequest struct {
	Rows   [][]string                `json:"rows" binding:"required"`
	Types  map[string]sample.VarType `json:"types,omitempty"`
	Orders map[string][]string       `json:"orders,omitempty"`
	Models []ModelPayload            `json:"models,omitempty"`
}

// TimeSeriesRequest is the JSON body for a time-series run. Rows carry the
// panel in CSV layout: Time,Instance1..InstanceK header plus one row per
// time step.
type TimeSeriesRequest struct {
	Rows [][]string `json:"rows" binding:"required"`
}

// BatchRequest runs a cross-sectional and a time-series analysis in one
// call.
type BatchRequest struct {
	CrossSection *AnalyzeRequest    `json:"cross_section,omitempty"`
	TimeSeries   *TimeSeriesRequest `json:"time_series,omitempty"`
}

// BatchResponse bundles the two reports of a batch run.
type BatchResponse struct {
	CrossSection interface{} `json:"cross_section,omitempty"`
	TimeSeries   interface{} `json:"time_series,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}
