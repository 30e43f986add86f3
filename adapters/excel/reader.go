package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"gostoch/adapters/stats/markov"
	"gostoch/adapters/tabular"
	"gostoch/domain/sample"
)

// DataReader reads the tabular input layouts from Excel or CSV files. Excel
// files are read from Sheet1; both formats feed the same row validation.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for the given path, picking the format from
// the extension.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadSample reads a cross-sectional dataset.
func (r *DataReader) ReadSample(opts tabular.Options) (sample.Sample, error) {
	rows, err := r.rows()
	if err != nil {
		return sample.Sample{}, err
	}
	return tabular.ParseRows(rows, opts)
}

// ReadPanel reads a time-series panel.
func (r *DataReader) ReadPanel() (markov.Panel, error) {
	rows, err := r.rows()
	if err != nil {
		return markov.Panel{}, err
	}
	return tabular.ParsePanelRows(rows)
}

func (r *DataReader) rows() ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	if r.fileType == "csv" {
		f, err := os.Open(r.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()

		cr := csv.NewReader(f)
		cr.FieldsPerRecord = -1
		cr.TrimLeadingSpace = true
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %w", err)
		}
		return rows, nil
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	return rows, nil
}
