package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"idxstat/internal/returns"
)

// ExportExcel writes the full report as a single workbook with one sheet
// per derived table. The summary sheet round-trips through the workbook
// loader in the dataset package only for raw observations; derived sheets
// are presentation output.
func (e *ReportExporter) ExportExcel(report *returns.Report, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name    string
		headers []string
		records [][]string
	}{
		{"Summary", summaryHeaders(), summaryRecords(report.SummaryRows)},
		{"Regions", regionHeaders(), regionRecords(report.Regions)},
		{"Streaks", streakHeaders(), streakRecords(report.Streaks)},
		{"Rolling", rollingHeaders(report), rollingRecords(report)},
		{"Correlation", correlationHeaders(report.Correlation), correlationRecords(report.Correlation)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("failed to rename sheet %s: %w", sheet.name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
			}
		}

		if err := writeSheet(f, sheet.name, sheet.headers, sheet.records); err != nil {
			return fmt.Errorf("failed to fill sheet %s: %w", sheet.name, err)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("report exported to Excel",
		slog.String("file_path", filePath),
		slog.Int("sheets", len(sheets)))
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, records [][]string) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, headers)
	rows = append(rows, records...)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
