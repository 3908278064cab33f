// Command processor applies overdue interest calculation to accounts
// receivable ledger workbooks. It accepts a single workbook or a directory of
// workbooks and writes one processed workbook per input.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"arcli/internal/config"
	"arcli/internal/dataprocessing"
	"arcli/internal/exporter"
	"arcli/internal/files"
	"arcli/internal/infrastructure"
	"arcli/internal/validation"
	"arcli/pkg/contracts"
)

// maxConcurrentFiles bounds directory-mode parallelism. Each file's pipeline
// stays sequential; only distinct files run concurrently.
const maxConcurrentFiles = 4

func main() {
	inPath := flag.String("in", "", "input workbook or directory of workbooks (defaults to configured input dir)")
	outDir := flag.String("out", "", "output directory for processed workbooks (defaults to configured output dir)")
	configFile := flag.String("config", "", "path to YAML config file")
	dueDays := flag.Int("due-days", 0, "override: overdue age cutoff in days")
	rate := flag.Float64("rate", 0, "override: per-day interest rate in percent")
	workingDays := flag.Int("working-days", 0, "override: interest working days")
	obAge := flag.Int("ob-age", 0, "override: age assigned to opening balance rows")
	policy := flag.String("policy", "", "override: working days policy (fixed or dynamic)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.VersionInfo())
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	applyOverrides(cfg, *dueDays, *rate, *workingDays, *obAge, *policy)
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

	if *inPath == "" {
		*inPath = cfg.Paths.InputDir
	}
	if *outDir == "" {
		*outDir = cfg.Paths.OutputDir
	}

	ctx, runID := infrastructure.NewRunContext(context.Background())
	logger.InfoContext(ctx, "Starting overdue interest processing",
		slog.String("run_id", runID),
		slog.String("input", *inPath),
		slog.String("output_dir", *outDir),
		slog.Int("due_days_threshold", cfg.Interest.DueDaysThreshold),
		slog.Float64("per_day_interest_rate", cfg.Interest.PerDayInterestRate),
		slog.String("working_days_policy", cfg.Interest.WorkingDaysPolicy))

	if err := run(ctx, logger, cfg, *inPath, *outDir); err != nil {
		logger.ErrorContext(ctx, "Processing failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Processing complete")
}

// applyOverrides copies the non-zero flag overrides onto the loaded config.
func applyOverrides(cfg *config.Config, dueDays int, rate float64, workingDays, obAge int, policy string) {
	if dueDays != 0 {
		cfg.Interest.DueDaysThreshold = dueDays
	}
	if rate != 0 {
		cfg.Interest.PerDayInterestRate = rate
	}
	if workingDays != 0 {
		cfg.Interest.InterestWorkingDays = workingDays
	}
	if obAge != 0 {
		cfg.Interest.OpeningBalanceAge = obAge
	}
	if policy != "" {
		cfg.Interest.WorkingDaysPolicy = policy
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, inPath, outDir string) error {
	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateOutputDirectory(outDir); err != nil {
		return err
	}

	processor := dataprocessing.NewProcessor(logger, cfg.Interest)

	info, err := os.Stat(inPath)
	if err != nil {
		return fmt.Errorf("failed to stat input %s: %w", inPath, err)
	}

	if !info.IsDir() {
		if err := validator.ValidateWorkbookFile(inPath); err != nil {
			return err
		}
		return processFile(ctx, logger, processor, inPath, outDir)
	}

	if err := validator.ValidateInputDirectory(inPath, "*.xlsx"); err != nil {
		return err
	}

	workbooks, err := files.NewDiscovery(inPath).FindWorkbooks(".")
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Workbooks discovered", slog.Int("count", len(workbooks)))
	if len(workbooks) == 0 {
		logger.WarnContext(ctx, "No workbooks found in input directory",
			slog.String("input_dir", inPath))
		return nil
	}

	var (
		mu     sync.Mutex
		failed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)
	for _, wb := range workbooks {
		wb := wb
		g.Go(func() error {
			if err := processFile(gctx, logger, processor, wb.Path, outDir); err != nil {
				logger.ErrorContext(gctx, "Error processing workbook",
					slog.String("workbook", wb.Name),
					slog.String("error", err.Error()))
				mu.Lock()
				failed++
				mu.Unlock()
			}
			// Per-file errors do not cancel the group; remaining files continue.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Directory processing finished",
		slog.Int("total", len(workbooks)),
		slog.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d workbooks failed", failed, len(workbooks))
	}
	return nil
}

// processFile runs the full pipeline for one workbook: read, transform,
// write, log summary statistics.
func processFile(ctx context.Context, logger *slog.Logger, processor *dataprocessing.Processor, path, outDir string) error {
	logger.InfoContext(ctx, "Processing workbook", slog.String("workbook", path))

	raw, err := exporter.ReadWorkbook(path)
	if err != nil {
		return err
	}

	processed, err := processor.Transform(ctx, raw)
	if err != nil {
		return err
	}

	outPath := filepath.Join(outDir, processedName(path))
	if err := exporter.WriteWorkbook(processed, outPath); err != nil {
		return err
	}

	attrs := []any{
		slog.String("workbook", path),
		slog.String("output", outPath),
		slog.Int("rows", processed.RowCount()),
	}
	if stats, ok := dataprocessing.SummaryStats(processed, config.ColInterestAmount); ok {
		attrs = append(attrs,
			slog.String("total_interest", stats.Sum.String()),
			slog.String("mean_interest", stats.Mean.Round(4).String()),
			slog.String("max_interest", stats.Max.String()))
	}
	logger.InfoContext(ctx, "Workbook processed", attrs...)

	return nil
}

// processedName derives the output file name from an input workbook path.
func processedName(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_processed.xlsx"
}
