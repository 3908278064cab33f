// Package dataprocessing implements the overdue-invoice transformation
// pipeline: it filters raw ledger rows to overdue items, cleans currency and
// age fields with parse-or-missing semantics, derives the interest columns,
// and projects the result onto the fixed output schema.
//
// The pipeline is pure: it never mutates its input table, performs no I/O,
// and the only fatal condition is a missing required column. Every other
// anomaly degrades to a missing value and processing continues.
package dataprocessing
