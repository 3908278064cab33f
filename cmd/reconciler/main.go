// Command reconciler compares a processed overdue-interest workbook against
// an externally supplied expected workbook and writes the comparison reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"arcli/internal/config"
	"arcli/internal/exporter"
	"arcli/internal/infrastructure"
	"arcli/internal/reconcile"
	"arcli/internal/validation"
	"arcli/pkg/contracts"
	"arcli/pkg/contracts/domain"
)

func main() {
	processedPath := flag.String("processed", "", "processed workbook (required)")
	expectedPath := flag.String("expected", "", "expected workbook (required)")
	outDir := flag.String("out", "", "output directory for reports (defaults to configured reports dir)")
	configFile := flag.String("config", "", "path to YAML config file")
	keys := flag.String("keys", "", "override: comma-separated key columns")
	compare := flag.String("compare", "", "override: comma-separated compare columns")
	tolerance := flag.Float64("tolerance", 0, "override: numeric comparison tolerance")
	maxKeys := flag.Int("max-keys", -1, "override: cap on matched keys evaluated, 0 for unbounded")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.VersionInfo())
		return
	}

	if *processedPath == "" || *expectedPath == "" {
		fmt.Fprintln(os.Stderr, "both -processed and -expected are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	applyOverrides(&cfg.Reconcile, *keys, *compare, *tolerance, *maxKeys)
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration rejected", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *outDir == "" {
		*outDir = cfg.Paths.ReportsDir
	}

	ctx, runID := infrastructure.NewRunContext(context.Background())
	logger.InfoContext(ctx, "Starting reconciliation",
		slog.String("run_id", runID),
		slog.String("processed", *processedPath),
		slog.String("expected", *expectedPath),
		slog.String("reports_dir", *outDir))

	if err := run(ctx, logger, cfg, *processedPath, *expectedPath, *outDir); err != nil {
		logger.ErrorContext(ctx, "Reconciliation failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Reconciliation complete")
}

// applyOverrides copies the set flag overrides onto the loaded config.
func applyOverrides(cfg *config.ReconcileConfig, keys, compare string, tolerance float64, maxKeys int) {
	if keys != "" {
		cfg.KeyColumns = splitColumns(keys)
	}
	if compare != "" {
		cfg.CompareColumns = splitColumns(compare)
	}
	if tolerance != 0 {
		cfg.Tolerance = tolerance
	}
	if maxKeys >= 0 {
		cfg.MaxMatchedKeys = maxKeys
	}
}

// splitColumns parses a comma-separated column list, trimming whitespace and
// dropping empty entries.
func splitColumns(s string) []string {
	var cols []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			cols = append(cols, part)
		}
	}
	return cols
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, processedPath, expectedPath, outDir string) error {
	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateWorkbookFile(processedPath); err != nil {
		return err
	}
	if err := validator.ValidateWorkbookFile(expectedPath); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(outDir); err != nil {
		return err
	}

	processed, err := exporter.ReadWorkbook(processedPath)
	if err != nil {
		return err
	}
	expected, err := exporter.ReadWorkbook(expectedPath)
	if err != nil {
		return err
	}

	reconciler := reconcile.NewReconciler(logger, reconcile.OptionsFromConfig(cfg.Reconcile))
	reports := exporter.NewReportWriter(logger)

	shape := reconciler.CompareShape(ctx, processed, expected)
	if err := reports.WriteShapeReport(shape, outDir); err != nil {
		return err
	}
	if shape.Columns.ColumnsMatch && shape.Rows.Difference == 0 {
		logger.InfoContext(ctx, "Tables have identical shape")
	}

	mismatches, err := reconciler.DetailedMismatches(ctx, processed, expected)
	if err != nil {
		return err
	}
	if err := reports.WriteMismatches(mismatches, outDir); err != nil {
		return err
	}
	if len(mismatches) == 0 {
		logger.InfoContext(ctx, "No key mismatches found")
	} else {
		logger.WarnContext(ctx, "Key mismatches found", slog.Int("count", len(mismatches)))
	}

	diffs, err := reconciler.ValueComparison(ctx, processed, expected)
	if err != nil {
		return err
	}
	if err := reports.WriteValueDiffs(diffs, outDir); err != nil {
		return err
	}
	if len(diffs) == 0 {
		logger.InfoContext(ctx, "No value mismatches found")
	} else {
		logger.WarnContext(ctx, "Value mismatches found", slog.Int("count", len(diffs)))
	}

	summary := reconciler.Summary(ctx, processed, expected)
	if err := reports.WriteSummary(summary, outDir); err != nil {
		return err
	}
	logSummary(ctx, logger, summary)

	return nil
}

func logSummary(ctx context.Context, logger *slog.Logger, s domain.SummaryReport) {
	attrs := []any{
		slog.Int("processed_rows", s.ProcessedRows),
		slog.Int("expected_rows", s.ExpectedRows),
		slog.Int("row_difference", s.RowDifference),
		slog.Bool("columns_match", s.ColumnsMatch),
	}
	if s.ProcessedTotalInterest != "" {
		attrs = append(attrs, slog.String("processed_total_interest", s.ProcessedTotalInterest))
	}
	if s.ExpectedTotalInterest != "" {
		attrs = append(attrs, slog.String("expected_total_interest", s.ExpectedTotalInterest))
	}
	logger.InfoContext(ctx, "Reconciliation summary", attrs...)
}
