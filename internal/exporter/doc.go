// Package exporter reads and writes the tabular artifacts of a run.
//
// Workbooks (.xlsx) are the input and primary output format. CSVWriter adds
// UTF-8 BOM-prefixed CSV output so the files open cleanly in Excel.
// ReportWriter serializes reconciliation reports as CSV and JSON.
package exporter
