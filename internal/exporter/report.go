package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"idxstat/internal/returns"
)

// ReportExporter writes every derived table of an aggregation report as a
// separate CSV file in an output directory.
type ReportExporter struct {
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewReportExporter creates a report exporter
func NewReportExporter(logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{
		csvWriter: NewCSVWriter(logger),
		logger:    logger,
	}
}

// ExportCSV writes one CSV file per derived table into outputDir
func (e *ReportExporter) ExportCSV(report *returns.Report, outputDir string) error {
	tables := []struct {
		filename string
		headers  []string
		records  [][]string
	}{
		{"summary.csv", summaryHeaders(), summaryRecords(report.SummaryRows)},
		{"regions.csv", regionHeaders(), regionRecords(report.Regions)},
		{"streaks.csv", streakHeaders(), streakRecords(report.Streaks)},
		{"rolling.csv", rollingHeaders(report), rollingRecords(report)},
		{"correlation.csv", correlationHeaders(report.Correlation), correlationRecords(report.Correlation)},
	}

	for _, table := range tables {
		path := filepath.Join(outputDir, table.filename)
		if err := e.csvWriter.WriteSimpleCSV(path, table.headers, table.records); err != nil {
			return fmt.Errorf("failed to export %s: %w", table.filename, err)
		}
	}

	e.logger.Info("report exported to CSV",
		slog.String("output_dir", outputDir),
		slog.Int("tables", len(tables)))
	return nil
}

func summaryHeaders() []string {
	return []string{
		"Country", "Benchmark", "MeanReturn", "MedianReturn", "StdDev",
		"CoefVariation", "SharpeRatio", "PosYearsPct", "NumYears",
	}
}

func summaryRecords(rows []returns.Summary) [][]string {
	records := make([][]string, 0, len(rows))
	for _, s := range rows {
		records = append(records, []string{
			s.Country,
			s.Benchmark,
			formatFloat(s.MeanReturn),
			formatFloat(s.MedianReturn),
			formatNullable(s.StdDev),
			formatNullable(s.CoefVariation),
			formatNullable(s.SharpeRatio),
			formatFloat(s.PosYearsPct),
			formatInt(s.NumYears),
		})
	}
	return records
}

func regionHeaders() []string {
	return []string{
		"Benchmark", "MeanReturn", "MedianReturn", "StdDev", "CoefVariation",
		"SharpeRatio", "PosYearsPct", "OutperformanceRate", "NumObservations", "NumCountries",
	}
}

func regionRecords(regions map[string]returns.RegionSummary) [][]string {
	records := make([][]string, 0, len(regions))
	for _, r := range returns.RegionsByOutperformance(regions) {
		records = append(records, []string{
			r.Benchmark,
			formatFloat(r.MeanReturn),
			formatFloat(r.MedianReturn),
			formatNullable(r.StdDev),
			formatNullable(r.CoefVariation),
			formatNullable(r.SharpeRatio),
			formatFloat(r.PosYearsPct),
			formatFloat(r.OutperformanceRate),
			formatInt(r.NumObservations),
			formatInt(r.NumCountries),
		})
	}
	return records
}

func streakHeaders() []string {
	return []string{"Country", "MaxPositiveStreak", "MaxNegativeStreak"}
}

func streakRecords(streaks map[string]returns.StreakRecord) [][]string {
	countries := make([]string, 0, len(streaks))
	for c := range streaks {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	records := make([][]string, 0, len(countries))
	for _, c := range countries {
		s := streaks[c]
		records = append(records, []string{
			s.Country,
			formatInt(s.MaxPositive),
			formatInt(s.MaxNegative),
		})
	}
	return records
}

// rollingHeaders builds a wide header: one column per year on the shared
// year axis. Every rolling series spans the same axis, so the first series
// determines the columns.
func rollingHeaders(report *returns.Report) []string {
	headers := []string{"Country"}
	for _, series := range report.Rolling {
		for _, year := range series.Years {
			headers = append(headers, formatInt(year))
		}
		break
	}
	return headers
}

func rollingRecords(report *returns.Report) [][]string {
	countries := make([]string, 0, len(report.Rolling))
	for c := range report.Rolling {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	records := make([][]string, 0, len(countries))
	for _, c := range countries {
		series := report.Rolling[c]
		record := make([]string, 0, len(series.Values)+1)
		record = append(record, series.Country)
		for _, v := range series.Values {
			record = append(record, formatNullable(v))
		}
		records = append(records, record)
	}
	return records
}

func correlationHeaders(matrix returns.CorrelationMatrix) []string {
	return append([]string{"Country"}, matrix.Countries()...)
}

func correlationRecords(matrix returns.CorrelationMatrix) [][]string {
	countries := matrix.Countries()

	records := make([][]string, 0, len(countries))
	for _, row := range countries {
		record := make([]string, 0, len(countries)+1)
		record = append(record, row)
		for _, col := range countries {
			record = append(record, formatNullable(matrix.At(row, col)))
		}
		records = append(records, record)
	}
	return records
}
