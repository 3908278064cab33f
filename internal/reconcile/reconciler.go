package reconcile

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"arcli/internal/config"
	apperrors "arcli/internal/errors"
	"arcli/internal/infrastructure"
	"arcli/pkg/contracts/domain"
)

// Options configures a Reconciler.
type Options struct {
	// KeyColumns build the composite row key, joined with the separator
	// from the config package.
	KeyColumns []string

	// CompareColumns are checked for value drift on matched keys.
	CompareColumns []string

	// Tolerance is the absolute numeric difference below which two values
	// count as equal.
	Tolerance decimal.Decimal

	// MaxMatchedKeys caps how many matched keys the value comparison
	// evaluates, in processed-table order. Zero means unbounded.
	MaxMatchedKeys int
}

// DefaultOptions returns the standard reconciliation options.
func DefaultOptions() Options {
	return Options{
		KeyColumns:     append([]string(nil), config.DefaultKeyColumns...),
		CompareColumns: append([]string(nil), config.DefaultCompareColumns...),
		Tolerance:      decimal.NewFromFloat(0.01),
	}
}

// OptionsFromConfig builds reconciliation options from configuration.
func OptionsFromConfig(cfg config.ReconcileConfig) Options {
	return Options{
		KeyColumns:     append([]string(nil), cfg.KeyColumns...),
		CompareColumns: append([]string(nil), cfg.CompareColumns...),
		Tolerance:      decimal.NewFromFloat(cfg.Tolerance),
		MaxMatchedKeys: cfg.MaxMatchedKeys,
	}
}

// Reconciler compares processed tables against expected tables. It never
// mutates its inputs and is safe for concurrent use.
type Reconciler struct {
	logger *slog.Logger
	opts   Options
}

// NewReconciler creates a reconciler with the given options. Zero-valued
// option fields fall back to the defaults.
func NewReconciler(logger *slog.Logger, opts Options) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultOptions()
	if len(opts.KeyColumns) == 0 {
		opts.KeyColumns = defaults.KeyColumns
	}
	if len(opts.CompareColumns) == 0 {
		opts.CompareColumns = defaults.CompareColumns
	}
	if opts.Tolerance.IsZero() {
		opts.Tolerance = defaults.Tolerance
	}
	return &Reconciler{
		logger: logger,
		opts:   opts,
	}
}

// CompareShape compares the two tables structurally: row counts, column
// sets, and the customer-name sets. It never fails; the customer comparison
// is skipped when either table lacks a Customer Name column.
func (r *Reconciler) CompareShape(ctx context.Context, processed, expected domain.Table) domain.ShapeReport {
	report := domain.ShapeReport{
		Rows: domain.RowComparison{
			ProcessedRows: processed.RowCount(),
			ExpectedRows:  expected.RowCount(),
			Difference:    processed.RowCount() - expected.RowCount(),
		},
	}

	procSet := processed.ColumnSet()
	expSet := expected.ColumnSet()

	report.Columns = domain.ColumnComparison{
		ProcessedColumns:   append([]string(nil), processed.Columns...),
		ExpectedColumns:    append([]string(nil), expected.Columns...),
		ExtraInProcessed:   setDifference(procSet, expSet),
		MissingInProcessed: setDifference(expSet, procSet),
	}
	report.Columns.ColumnsMatch = len(report.Columns.ExtraInProcessed) == 0 &&
		len(report.Columns.MissingInProcessed) == 0

	if processed.HasColumn(config.ColCustomerName) && expected.HasColumn(config.ColCustomerName) {
		procCustomers := customerSet(processed)
		expCustomers := customerSet(expected)
		report.Customers = domain.CustomerSetDiff{
			Computed:           true,
			ExtraInProcessed:   setDifference(procCustomers, expCustomers),
			MissingInProcessed: setDifference(expCustomers, procCustomers),
		}
	}

	r.logger.InfoContext(ctx, "shape comparison complete",
		slog.Int("row_difference", report.Rows.Difference),
		slog.Bool("columns_match", report.Columns.ColumnsMatch))

	return report
}

// DetailedMismatches reports composite keys present on only one side. Keys
// matched in both tables are never reported here; value drift is the value
// comparison's job. An empty result is the success state.
func (r *Reconciler) DetailedMismatches(ctx context.Context, processed, expected domain.Table) ([]domain.MismatchRecord, error) {
	if err := r.checkKeyColumns(processed, expected); err != nil {
		return nil, err
	}

	procKeys := r.keySet(processed)
	expKeys := r.keySet(expected)

	var records []domain.MismatchRecord

	for _, row := range processed.Rows {
		if _, ok := expKeys[r.compositeKey(row)]; !ok {
			records = append(records, r.mismatchRecord(domain.MismatchExtraInProcessed, row))
		}
	}
	for _, row := range expected.Rows {
		if _, ok := procKeys[r.compositeKey(row)]; !ok {
			records = append(records, r.mismatchRecord(domain.MismatchMissingInProcessed, row))
		}
	}

	r.logger.InfoContext(ctx, "key mismatch scan complete",
		slog.Int("mismatches", len(records)))

	return records, nil
}

// ValueComparison compares the configured columns for every composite key
// present in both tables, in processed-table order. Numeric pairs mismatch
// when their absolute difference exceeds the tolerance; other pairs mismatch
// on exact string inequality. Pairs with a missing side are skipped. An
// empty result is the success state.
func (r *Reconciler) ValueComparison(ctx context.Context, processed, expected domain.Table) ([]domain.ValueDiff, error) {
	if err := r.checkKeyColumns(processed, expected); err != nil {
		return nil, err
	}

	// First occurrence wins on duplicate keys, on both sides.
	expIndex := make(map[string]domain.Row, expected.RowCount())
	for _, row := range expected.Rows {
		key := r.compositeKey(row)
		if _, ok := expIndex[key]; !ok {
			expIndex[key] = row
		}
	}

	var diffs []domain.ValueDiff
	matched := 0
	seen := make(map[string]struct{}, processed.RowCount())

	for _, procRow := range processed.Rows {
		key := r.compositeKey(procRow)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		expRow, ok := expIndex[key]
		if !ok {
			continue
		}

		matched++
		if r.opts.MaxMatchedKeys > 0 && matched > r.opts.MaxMatchedKeys {
			r.logger.WarnContext(ctx, "matched key cap reached, remaining keys skipped",
				slog.Int("max_matched_keys", r.opts.MaxMatchedKeys))
			break
		}

		for _, col := range r.opts.CompareColumns {
			if !processed.HasColumn(col) || !expected.HasColumn(col) {
				continue
			}
			if diff, mismatch := compareValues(procRow.Get(col), expRow.Get(col), r.opts.Tolerance); mismatch {
				diffs = append(diffs, domain.ValueDiff{
					CustomerName:   fieldOrNA(procRow, config.ColCustomerName),
					TransactionID:  fieldOrNA(procRow, config.ColTransaction),
					Column:         col,
					ProcessedValue: procRow.Get(col).String(),
					ExpectedValue:  expRow.Get(col).String(),
					Difference:     diff,
				})
			}
		}
	}

	r.logger.InfoContext(ctx, "value comparison complete",
		slog.Int("matched_keys", matched),
		slog.Int("value_mismatches", len(diffs)))

	return diffs, nil
}

// Summary condenses a full comparison into headline figures, including the
// total interest on each side when the column is present.
func (r *Reconciler) Summary(ctx context.Context, processed, expected domain.Table) domain.SummaryReport {
	shape := r.CompareShape(ctx, processed, expected)

	report := domain.SummaryReport{
		RunID:            infrastructure.GetRunID(ctx),
		ProcessedRows:    shape.Rows.ProcessedRows,
		ExpectedRows:     shape.Rows.ExpectedRows,
		RowDifference:    shape.Rows.Difference,
		ColumnsMatch:     shape.Columns.ColumnsMatch,
		ExtraCustomers:   len(shape.Customers.ExtraInProcessed),
		MissingCustomers: len(shape.Customers.MissingInProcessed),
	}

	if total, ok := totalInterest(processed); ok {
		report.ProcessedTotalInterest = total.String()
	}
	if total, ok := totalInterest(expected); ok {
		report.ExpectedTotalInterest = total.String()
	}

	return report
}

// checkKeyColumns verifies every key column exists in both tables.
func (r *Reconciler) checkKeyColumns(processed, expected domain.Table) error {
	for _, col := range r.opts.KeyColumns {
		if !processed.HasColumn(col) || !expected.HasColumn(col) {
			return apperrors.NewKeyColumnError(col)
		}
	}
	return nil
}

// compositeKey joins the key-column values of a row.
func (r *Reconciler) compositeKey(row domain.Row) string {
	parts := make([]string, len(r.opts.KeyColumns))
	for i, col := range r.opts.KeyColumns {
		parts[i] = row.Get(col).String()
	}
	return strings.Join(parts, config.KeySeparator)
}

// keySet collects the composite keys of a table.
func (r *Reconciler) keySet(table domain.Table) map[string]struct{} {
	keys := make(map[string]struct{}, table.RowCount())
	for _, row := range table.Rows {
		keys[r.compositeKey(row)] = struct{}{}
	}
	return keys
}

// mismatchRecord builds a mismatch record from a source row. Absent fields
// carry the not-available marker.
func (r *Reconciler) mismatchRecord(mismatchType string, row domain.Row) domain.MismatchRecord {
	return domain.MismatchRecord{
		MismatchType:   mismatchType,
		CustomerName:   fieldOrNA(row, config.ColCustomerName),
		TransactionID:  fieldOrNA(row, config.ColTransaction),
		Type:           fieldOrNA(row, config.ColType),
		Age:            fieldOrNA(row, config.ColAge),
		BalanceDue:     fieldOrNA(row, config.ColBalanceDue),
		InterestAmount: fieldOrNA(row, config.ColInterestAmount),
	}
}

// compareValues decides whether two matched cells differ. It returns the
// rendered difference and whether a mismatch should be reported.
func compareValues(proc, exp domain.Cell, tolerance decimal.Decimal) (string, bool) {
	if proc.IsMissing() || exp.IsMissing() {
		return "", false
	}

	procNum, procOK := proc.Decimal()
	expNum, expOK := exp.Decimal()
	if procOK && expOK {
		diff := procNum.Sub(expNum)
		if diff.Abs().GreaterThan(tolerance) {
			return diff.Round(4).String(), true
		}
		return "", false
	}

	if proc.String() != exp.String() {
		return domain.NotAvailable, true
	}
	return "", false
}

// fieldOrNA renders a row field, or the not-available marker when the field
// is absent or missing.
func fieldOrNA(row domain.Row, col string) string {
	c := row.Get(col)
	if c.IsMissing() {
		return domain.NotAvailable
	}
	return c.String()
}

// customerSet collects the distinct customer names of a table.
func customerSet(table domain.Table) map[string]struct{} {
	set := make(map[string]struct{}, table.RowCount())
	for _, row := range table.Rows {
		c := row.Get(config.ColCustomerName)
		if !c.IsMissing() {
			set[c.String()] = struct{}{}
		}
	}
	return set
}

// setDifference returns the members of a that are not in b, sorted.
func setDifference(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// totalInterest sums the interest amount column when present.
func totalInterest(table domain.Table) (decimal.Decimal, bool) {
	if !table.HasColumn(config.ColInterestAmount) {
		return decimal.Decimal{}, false
	}
	total := decimal.Zero
	for _, row := range table.Rows {
		if v, ok := row.Get(config.ColInterestAmount).Decimal(); ok {
			total = total.Add(v)
		}
	}
	return total, true
}
