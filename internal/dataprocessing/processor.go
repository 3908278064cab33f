package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"arcli/internal/config"
	"arcli/internal/validation"
	"arcli/pkg/contracts/domain"
)

// interestScale is the number of decimal places interest amounts are rounded
// to. Rounding is half away from zero.
const interestScale = 4

var hundred = decimal.NewFromInt(100)

// Processor transforms a raw ledger table into the processed overdue-interest
// table. A Processor is safe for concurrent use; each Transform call works on
// its own copies.
type Processor struct {
	logger *slog.Logger
	cfg    config.InterestConfig
}

// NewProcessor creates a processor for the given interest configuration.
func NewProcessor(logger *slog.Logger, cfg config.InterestConfig) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger: logger,
		cfg:    cfg,
	}
}

// Transform runs the full transformation pipeline over the raw table and
// returns a new processed table. The input is never mutated. The only error
// condition is a missing required input column; cell-level parse failures
// degrade to missing values.
func (p *Processor) Transform(ctx context.Context, raw domain.Table) (domain.Table, error) {
	if err := validation.RequireColumns(raw, config.RequiredInputColumns); err != nil {
		return domain.Table{}, err
	}

	p.logger.InfoContext(ctx, "starting transformation",
		slog.Int("raw_rows", raw.RowCount()),
		slog.Int("due_days_threshold", p.cfg.DueDaysThreshold),
		slog.String("working_days_policy", p.cfg.WorkingDaysPolicy))

	// Keep only rows whose Status is exactly "Overdue".
	var rows []domain.Row
	for _, r := range raw.Rows {
		status := r.Get(config.ColStatus)
		if status.Kind == domain.CellText && status.Text == config.StatusOverdue {
			rows = append(rows, r.Clone())
		}
	}

	columns := dropExcludedColumns(raw.Columns)

	parseFailures := p.cleanRows(ctx, rows)

	rows = p.applyOpeningBalanceAge(rows)
	rows = p.filterByAge(rows)

	// Stable sort keeps the relative order of rows sharing a customer name.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Get(config.ColCustomerName).String() < rows[j].Get(config.ColCustomerName).String()
	})

	p.deriveInterestColumns(rows)

	processed := domain.Table{Columns: columns, Rows: rows}.Project(config.FinalColumns)

	p.logger.InfoContext(ctx, "transformation complete",
		slog.Int("processed_rows", processed.RowCount()),
		slog.Int("parse_failures", parseFailures))

	return processed, nil
}

// dropExcludedColumns removes the sales-person columns when present.
func dropExcludedColumns(columns []string) []string {
	excluded := make(map[string]struct{}, len(config.ColumnsToDrop))
	for _, c := range config.ColumnsToDrop {
		excluded[c] = struct{}{}
	}

	kept := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, drop := excluded[c]; !drop {
			kept = append(kept, c)
		}
	}
	return kept
}

// cleanRows cleans the currency and age fields in place and returns the
// number of cells that failed to parse. Balance Due falls back to zero,
// Amount and Age stay missing.
func (p *Processor) cleanRows(ctx context.Context, rows []domain.Row) int {
	failures := 0
	for i, r := range rows {
		balance := CleanCurrency(r.Get(config.ColBalanceDue))
		if balance.IsMissing() {
			if !r.Get(config.ColBalanceDue).IsMissing() {
				failures++
				p.logger.DebugContext(ctx, "unparsable balance due",
					slog.Int("row", i),
					slog.String("value", r.Get(config.ColBalanceDue).String()))
			}
			balance = domain.NumberCell(decimal.Zero)
		}
		r[config.ColBalanceDue] = balance

		amount := CleanCurrency(r.Get(config.ColAmount))
		if amount.IsMissing() && !r.Get(config.ColAmount).IsMissing() {
			failures++
		}
		r[config.ColAmount] = amount

		age := CleanAge(r.Get(config.ColAge))
		if age.IsMissing() && !r.Get(config.ColAge).IsMissing() {
			failures++
			p.logger.DebugContext(ctx, "unparsable age",
				slog.Int("row", i),
				slog.String("value", r.Get(config.ColAge).String()))
		}
		r[config.ColAge] = age
	}

	if failures > 0 {
		p.logger.WarnContext(ctx, "some cells failed to parse and were treated as missing",
			slog.Int("cell_count", failures))
	}
	return failures
}

// applyOpeningBalanceAge forces the configured age onto opening-balance
// rows, overwriting any cleaned value.
func (p *Processor) applyOpeningBalanceAge(rows []domain.Row) []domain.Row {
	obAge := domain.NumberCellFromInt(p.cfg.OpeningBalanceAge)
	for _, r := range rows {
		typ := r.Get(config.ColType)
		if typ.Kind == domain.CellText && typ.Text == config.TypeOpeningBalance {
			r[config.ColAge] = obAge
		}
	}
	return rows
}

// filterByAge keeps rows whose age exceeds the due-days threshold. Rows with
// a missing age are dropped; missing compares as false to any threshold.
func (p *Processor) filterByAge(rows []domain.Row) []domain.Row {
	threshold := decimal.NewFromInt(int64(p.cfg.DueDaysThreshold))

	kept := rows[:0]
	for _, r := range rows {
		age, ok := r.Get(config.ColAge).Decimal()
		if ok && age.GreaterThan(threshold) {
			kept = append(kept, r)
		}
	}
	return kept
}

// deriveInterestColumns adds the six derived columns to every row. Rows
// reaching this point always carry a numeric age and balance.
func (p *Processor) deriveInterestColumns(rows []domain.Row) {
	threshold := decimal.NewFromInt(int64(p.cfg.DueDaysThreshold))
	fixedWorkingDays := decimal.NewFromInt(int64(p.cfg.InterestWorkingDays))
	rate := decimal.NewFromFloat(p.cfg.PerDayInterestRate)

	for _, r := range rows {
		age, _ := r.Get(config.ColAge).Decimal()

		workingDays := fixedWorkingDays
		if p.cfg.WorkingDaysPolicy == config.PolicyDynamic {
			workingDays = age.Sub(threshold)
		}

		previous := age.Sub(threshold).Sub(workingDays)
		if previous.IsNegative() {
			previous = decimal.Zero
		}

		workingInterestPct := workingDays.Mul(rate)

		balance, _ := r.Get(config.ColBalanceDue).Decimal()
		interest := balance.Mul(workingInterestPct).Div(hundred).Round(interestScale)

		r[config.ColDueDays] = domain.NumberCell(threshold)
		r[config.ColPreviousInterest] = domain.NumberCell(previous)
		r[config.ColInterestWorking] = domain.NumberCell(workingDays)
		r[config.ColPerDayInterest] = domain.NumberCell(rate)
		r[config.ColWorkingInterestPct] = domain.NumberCell(workingInterestPct)
		r[config.ColInterestAmount] = domain.NumberCell(interest)
	}
}
