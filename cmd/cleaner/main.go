package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"salespulse/internal/cleaning"
	"salespulse/internal/config"
	"salespulse/internal/exporter"
	"salespulse/internal/infrastructure"
	"salespulse/internal/reporting"
	"salespulse/internal/tableio"
)

func main() {
	inPath := flag.String("in", "", "input file (.csv or .xlsx; defaults to data/sales_data.csv relative to executable)")
	outPath := flag.String("out", "", "output CSV file (defaults to the configured cleaned sales file)")
	rejectedPath := flag.String("rejected", "", "optional CSV audit of rejected rows")
	bom := flag.Bool("bom", false, "prefix output files with a UTF-8 BOM for Excel")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	// Every log line of one run shares a trace id
	ctx := infrastructure.EnsureTraceID(context.Background())
	logger := infrastructure.LoggerWithContext(ctx)

	if *inPath == "" {
		*inPath = filepath.Join(cfg.GetDataDir(), "sales_data.csv")
	}
	if *outPath == "" {
		*outPath = cfg.GetSalesFile()
	}

	if err := run(logger, *inPath, *outPath, *rejectedPath, *bom); err != nil {
		logger.Error("cleaning run failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, inPath, outPath, rejectedPath string, bom bool) error {
	loader := tableio.NewLoader(logger)

	table, err := loader.Load(inPath)
	switch {
	case errors.Is(err, tableio.ErrFileNotFound),
		errors.Is(err, tableio.ErrUnsupportedFormat),
		errors.Is(err, tableio.ErrEmptyFile):
		// Diagnostic, not fatal: there is simply nothing to clean
		logger.Error("cannot read input, nothing to clean",
			"path", inPath,
			"error", err.Error())
		return nil
	case err != nil:
		return err
	}

	for _, issue := range cleaning.SalesSchema().Validate(table) {
		logger.Warn("input does not match the sales schema, cleaning anyway",
			"path", inPath,
			"issue", issue.Error())
	}

	cleaner := cleaning.NewCleaner(logger)
	result := cleaner.Clean(table)

	summarizer := reporting.NewSummarizer(logger, reporting.DefaultSummarizerConfig())
	summary := summarizer.Summarize(table, result)
	summarizer.Render(os.Stdout, summary)

	writer := exporter.NewCSVWriter(logger)
	opts := exporter.WriteOptions{BOMPrefix: bom}

	if err := writer.WriteTable(outPath, result.Table, opts); err != nil {
		return err
	}
	logger.Info("cleaned data written",
		"path", outPath,
		"rows", result.Table.Len())

	if rejectedPath != "" {
		if err := writer.WriteRejected(rejectedPath, table.Columns, result.Rejected, opts); err != nil {
			return err
		}
		logger.Info("rejection audit written",
			"path", rejectedPath,
			"rows", len(result.Rejected))
	}

	return nil
}
