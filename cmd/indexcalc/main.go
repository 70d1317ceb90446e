package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"indexcalc/internal/config"
	"indexcalc/internal/dataset"
	"indexcalc/internal/exporter"
	"indexcalc/internal/index"
	"indexcalc/internal/infrastructure"
	"indexcalc/pkg/contracts"
)

func main() {
	configFile := flag.String("config", "", "optional yaml config file")
	dataDir := flag.String("data", "", "directory containing the provider tables (overrides config)")
	outDir := flag.String("out", "", "output directory for result csv files (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionString())
		return
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Paths.DataDir = *dataDir
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	if err := run(cfg, logger); err != nil {
		logger.Error("Index reconstruction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	start, end, err := cfg.Calculation.DateRange()
	if err != nil {
		return err
	}
	freq := index.ParseFrequency(cfg.Calculation.Frequency)

	logger.Info("Starting index reconstruction",
		slog.String("data_dir", cfg.Paths.DataDir),
		slog.String("output_dir", cfg.Paths.OutputDir),
		slog.String("frequency", freq.String()),
		slog.String("start", cfg.Calculation.StartDate),
		slog.String("end", cfg.Calculation.EndDate))

	loader := dataset.NewLoader(logger)
	panel, err := loader.LoadSecurityPanelFile(filepath.Join(cfg.Paths.DataDir, cfg.Paths.SecurityPanel))
	if err != nil {
		return fmt.Errorf("load security panel: %w", err)
	}
	reference, err := loader.LoadReferenceIndex(filepath.Join(cfg.Paths.DataDir, cfg.Paths.ReferenceIndex))
	if err != nil {
		return fmt.Errorf("load reference index: %w", err)
	}
	memberships, err := loader.LoadMemberships(filepath.Join(cfg.Paths.DataDir, cfg.Paths.Memberships))
	if err != nil {
		return fmt.Errorf("load memberships: %w", err)
	}

	// Full-universe aggregation reconciled against the reference index.
	vw := index.ValueWeightedIndex(panel, freq)
	ew := index.EqualWeightedIndex(panel)
	merged := index.MergeIndices(reference, vw, ew)
	logger.Info("Computed weighted indices",
		slog.Int("value_weighted_periods", len(vw)),
		slog.Int("equal_weighted_periods", len(ew)),
		slog.Int("merged_periods", len(merged)))

	// Constituent approximations of the reference index.
	approximations := index.CreateIndexApproximations(panel, memberships, reference, index.ApproximationOptions{
		Start: start,
		End:   end,
		Calibration: index.CalibrationFactors{
			ApproxScale:    cfg.Calculation.ApproxScale,
			ReferenceScale: cfg.Calculation.ReferenceScale,
		},
	})
	summary := index.Diagnose(approximations)
	logger.Info("Computed index approximations",
		slog.Int("periods", summary.Observations),
		slog.Float64("correlation_a", summary.CorrelationA),
		slog.Float64("correlation_b", summary.CorrelationB),
		slog.Float64("mean_spread_a_less_b", summary.MeanSpreadAB),
		slog.Float64("std_spread_a_less_b", summary.StdSpreadAB))

	indicesPath := filepath.Join(cfg.Paths.OutputDir, "merged_indices.csv")
	if err := exporter.WriteMergedIndices(merged, indicesPath); err != nil {
		return fmt.Errorf("write merged indices: %w", err)
	}
	approxPath := filepath.Join(cfg.Paths.OutputDir, "index_approximations.csv")
	if err := exporter.WriteApproximations(approximations, approxPath); err != nil {
		return fmt.Errorf("write approximations: %w", err)
	}

	logger.Info("Index reconstruction complete",
		slog.String("indices_file", indicesPath),
		slog.String("approximations_file", approxPath))
	return nil
}
