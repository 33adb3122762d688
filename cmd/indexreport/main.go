package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"idxstat/internal/config"
	"idxstat/internal/dataset"
	"idxstat/internal/exporter"
	"idxstat/internal/infrastructure"
	"idxstat/internal/returns"
)

func main() {
	inputs := flag.String("in", "", "comma-separated region files (.csv or .xlsx); defaults to every .csv in the data directory")
	outDir := flag.String("out", "", "output directory for report files (defaults to the reports directory)")
	window := flag.Int("window", 0, "rolling window in years (overrides config)")
	exclude := flag.String("exclude", "", "comma-separated countries to exclude (overrides config)")
	format := flag.String("format", "csv", "export format: csv, json, xlsx or all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	if *window > 0 {
		cfg.Report.RollingWindow = *window
	}
	if *exclude != "" {
		cfg.Report.ExcludedCountries = splitList(*exclude)
	}
	if *outDir == "" {
		*outDir = cfg.GetReportsDir()
	}

	paths, err := resolveInputs(*inputs, cfg.GetDataDir())
	if err != nil {
		logger.Error("Failed to resolve input files", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	start := time.Now()

	loader := dataset.NewLoader(logger, cfg.Report.ExcludedCountries)
	ds, err := loader.LoadSources(ctx, paths...)
	if err != nil {
		logger.Error("Failed to load return observations", "error", err)
		os.Exit(1)
	}

	if len(ds) == 0 {
		logger.Error("No observations found in input files",
			"files", paths,
			"hint", "Check the region files and the exclusion list")
		os.Exit(1)
	}

	agg := returns.NewAggregator(cfg.Report.RollingWindow, cfg.Report.RecognizedBenchmarks, logger)
	report, err := agg.Aggregate(ctx, ds)
	if err != nil {
		logger.Error("Failed to compute statistics", "error", err)
		os.Exit(1)
	}

	if err := export(report, *format, *outDir, logger); err != nil {
		logger.Error("Failed to export report", "error", err)
		os.Exit(1)
	}

	logger.Info("Report generated successfully",
		"output_dir", *outDir,
		"countries", len(report.SummaryRows),
		"regions", len(report.Regions),
		"duration", time.Since(start).String())

	printHighlights(report)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// resolveInputs expands the -in flag, falling back to every CSV file in the
// data directory
func resolveInputs(inputs, dataDir string) ([]string, error) {
	if inputs != "" {
		return splitList(inputs), nil
	}

	matches, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .csv files found in %s", dataDir)
	}
	return matches, nil
}

func export(report *returns.Report, format, outDir string, logger *slog.Logger) error {
	re := exporter.NewReportExporter(logger)

	switch format {
	case "csv":
		return re.ExportCSV(report, outDir)
	case "json":
		return re.ExportJSON(report, filepath.Join(outDir, "report.json"))
	case "xlsx":
		return re.ExportExcel(report, filepath.Join(outDir, "report.xlsx"))
	case "all":
		if err := re.ExportCSV(report, outDir); err != nil {
			return err
		}
		if err := re.ExportJSON(report, filepath.Join(outDir, "report.json")); err != nil {
			return err
		}
		return re.ExportExcel(report, filepath.Join(outDir, "report.xlsx"))
	default:
		return fmt.Errorf("unknown export format %q (use csv, json, xlsx or all)", format)
	}
}

func printHighlights(report *returns.Report) {
	stable := returns.MostStable(report.Summaries)
	best := returns.BestPerforming(report.Summaries)
	regions := returns.RegionsByOutperformance(report.Regions)

	fmt.Println("\n=== MOST STABLE MARKETS (lowest coefficient of variation) ===")
	for i, s := range stable {
		if i >= 5 {
			break
		}
		cv := "n/a"
		if s.CoefVariation.Valid {
			cv = fmt.Sprintf("%.3f", s.CoefVariation.Value)
		}
		fmt.Printf("%-15s | CV %s | mean %6.2f%% over %d years\n",
			s.Country, cv, s.MeanReturn, s.NumYears)
	}

	fmt.Println("\n=== BEST PERFORMING MARKETS (highest mean return) ===")
	for i, s := range best {
		if i >= 5 {
			break
		}
		fmt.Printf("%-15s | mean %6.2f%% | median %6.2f%%\n",
			s.Country, s.MeanReturn, s.MedianReturn)
	}

	fmt.Println("\n=== REGIONS BY BENCHMARK OUTPERFORMANCE ===")
	for _, r := range regions {
		fmt.Printf("%-6s | %5.1f%% of country-years beat the benchmark (%d observations, %d countries)\n",
			r.Benchmark, r.OutperformanceRate, r.NumObservations, r.NumCountries)
	}
}
