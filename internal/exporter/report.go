package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"arcli/pkg/contracts/domain"
)

// Report file names, relative to the reports directory.
const (
	ShapeReportCSV    = "shape_report.csv"
	ShapeReportFile   = "shape_report.json"
	MismatchesCSV     = "mismatches.csv"
	MismatchesJSON    = "mismatches.json"
	ValueDiffsCSV     = "value_diffs.csv"
	ValueDiffsJSON    = "value_diffs.json"
	SummaryReportFile = "summary.json"
)

var mismatchHeaders = []string{
	"Mismatch Type", "Customer Name", "Transaction#", "Type",
	"Age", "Balance Due", "Interest Amount",
}

var valueDiffHeaders = []string{
	"Customer Name", "Transaction#", "Column",
	"Processed Value", "Expected Value", "Difference",
}

// ReportWriter serializes reconciliation reports into a directory, flat
// records as CSV plus JSON and nested reports as JSON.
type ReportWriter struct {
	logger *slog.Logger
	csv    *CSVWriter
}

// NewReportWriter creates a report writer.
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{
		logger: logger,
		csv:    NewCSVWriter(logger),
	}
}

var shapeHeaders = []string{
	"Processed Rows", "Expected Rows", "Row Difference",
	"Columns Match", "Extra Customers", "Missing Customers",
}

// WriteShapeReport writes the structural comparison, the full nested report
// as JSON plus a one-line CSV of the headline figures.
func (w *ReportWriter) WriteShapeReport(report domain.ShapeReport, dir string) error {
	row := []string{
		strconv.Itoa(report.Rows.ProcessedRows),
		strconv.Itoa(report.Rows.ExpectedRows),
		strconv.Itoa(report.Rows.Difference),
		strconv.FormatBool(report.Columns.ColumnsMatch),
		strconv.Itoa(len(report.Customers.ExtraInProcessed)),
		strconv.Itoa(len(report.Customers.MissingInProcessed)),
	}
	if err := w.csv.WriteSimpleCSV(filepath.Join(dir, ShapeReportCSV), shapeHeaders, [][]string{row}); err != nil {
		return err
	}
	return w.writeJSON(filepath.Join(dir, ShapeReportFile), report)
}

// WriteMismatches writes key mismatch records as CSV and JSON.
func (w *ReportWriter) WriteMismatches(records []domain.MismatchRecord, dir string) error {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{
			rec.MismatchType, rec.CustomerName, rec.TransactionID, rec.Type,
			rec.Age, rec.BalanceDue, rec.InterestAmount,
		}
	}
	if err := w.csv.WriteSimpleCSV(filepath.Join(dir, MismatchesCSV), mismatchHeaders, rows); err != nil {
		return err
	}
	return w.writeJSON(filepath.Join(dir, MismatchesJSON), records)
}

// WriteValueDiffs writes value drift records as CSV and JSON.
func (w *ReportWriter) WriteValueDiffs(diffs []domain.ValueDiff, dir string) error {
	rows := make([][]string, len(diffs))
	for i, d := range diffs {
		rows[i] = []string{
			d.CustomerName, d.TransactionID, d.Column,
			d.ProcessedValue, d.ExpectedValue, d.Difference,
		}
	}
	if err := w.csv.WriteSimpleCSV(filepath.Join(dir, ValueDiffsCSV), valueDiffHeaders, rows); err != nil {
		return err
	}
	return w.writeJSON(filepath.Join(dir, ValueDiffsJSON), diffs)
}

// WriteSummary writes the run summary as JSON.
func (w *ReportWriter) WriteSummary(report domain.SummaryReport, dir string) error {
	return w.writeJSON(filepath.Join(dir, SummaryReportFile), report)
}

func (w *ReportWriter) writeJSON(path string, v interface{}) error {
	w.logger.Info("Writing JSON report", slog.String("file_path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
