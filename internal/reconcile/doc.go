// Package reconcile compares a processed overdue-interest table against an
// externally supplied expected table. It offers three independent read-only
// views: a structural shape comparison, a composite-key presence diff, and a
// per-column value comparison with numeric tolerance.
//
// Ordinary data mismatches are results, not errors; the only error condition
// is a key column missing from one of the tables.
package reconcile
