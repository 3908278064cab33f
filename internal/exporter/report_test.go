package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcli/pkg/contracts/domain"
)

func TestReportWriter_WriteMismatches(t *testing.T) {
	dir := t.TempDir()
	w := NewReportWriter(nil)

	records := []domain.MismatchRecord{
		{
			MismatchType:   domain.MismatchMissingInProcessed,
			CustomerName:   "Customer X",
			TransactionID:  "Tx#9",
			Type:           domain.NotAvailable,
			Age:            "260",
			BalanceDue:     "10000",
			InterestAmount: domain.NotAvailable,
		},
	}
	require.NoError(t, w.WriteMismatches(records, dir))

	csvData, err := os.ReadFile(filepath.Join(dir, MismatchesCSV))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData[3:])), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Mismatch Type,Customer Name,Transaction#,Type,Age,Balance Due,Interest Amount", lines[0])
	assert.Equal(t, "Missing in Processed,Customer X,Tx#9,N/A,260,10000,N/A", lines[1])

	jsonData, err := os.ReadFile(filepath.Join(dir, MismatchesJSON))
	require.NoError(t, err)
	var decoded []domain.MismatchRecord
	require.NoError(t, json.Unmarshal(jsonData, &decoded))
	assert.Equal(t, records, decoded)
}

func TestReportWriter_WriteValueDiffs(t *testing.T) {
	dir := t.TempDir()
	w := NewReportWriter(nil)

	diffs := []domain.ValueDiff{
		{
			CustomerName:   "Acme",
			TransactionID:  "TX-1",
			Column:         "interest amount",
			ProcessedValue: "100",
			ExpectedValue:  "100.02",
			Difference:     "-0.02",
		},
	}
	require.NoError(t, w.WriteValueDiffs(diffs, dir))

	csvData, err := os.ReadFile(filepath.Join(dir, ValueDiffsCSV))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData[3:])), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Acme,TX-1,interest amount,100,100.02,-0.02", lines[1])

	jsonData, err := os.ReadFile(filepath.Join(dir, ValueDiffsJSON))
	require.NoError(t, err)
	var decoded []domain.ValueDiff
	require.NoError(t, json.Unmarshal(jsonData, &decoded))
	assert.Equal(t, diffs, decoded)
}

func TestReportWriter_WriteShapeAndSummary(t *testing.T) {
	dir := t.TempDir()
	w := NewReportWriter(nil)

	shape := domain.ShapeReport{
		Rows: domain.RowComparison{ProcessedRows: 2, ExpectedRows: 1, Difference: 1},
		Columns: domain.ColumnComparison{
			ProcessedColumns: []string{"A"},
			ExpectedColumns:  []string{"A"},
			ColumnsMatch:     true,
		},
	}
	require.NoError(t, w.WriteShapeReport(shape, dir))

	csvData, err := os.ReadFile(filepath.Join(dir, ShapeReportCSV))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData[3:])), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2,1,1,true,0,0", lines[1])

	summary := domain.SummaryReport{
		RunID:         "run-1",
		ProcessedRows: 2,
		ExpectedRows:  1,
		RowDifference: 1,
		ColumnsMatch:  true,
	}
	require.NoError(t, w.WriteSummary(summary, dir))

	var gotShape domain.ShapeReport
	data, err := os.ReadFile(filepath.Join(dir, ShapeReportFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &gotShape))
	assert.Equal(t, shape, gotShape)

	var gotSummary domain.SummaryReport
	data, err = os.ReadFile(filepath.Join(dir, SummaryReportFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &gotSummary))
	assert.Equal(t, summary, gotSummary)
}

func TestReportWriter_EmptyRecordsStillWriteFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewReportWriter(nil)

	require.NoError(t, w.WriteMismatches(nil, dir))
	require.NoError(t, w.WriteValueDiffs(nil, dir))

	for _, name := range []string{MismatchesCSV, MismatchesJSON, ValueDiffsCSV, ValueDiffsJSON} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
