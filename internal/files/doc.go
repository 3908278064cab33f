// Package files provides input workbook discovery. Discovery finds the xlsx
// files of a ledger drop directory in deterministic name order, ignoring the
// lock files Excel leaves next to open workbooks.
package files
