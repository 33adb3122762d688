package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"idxstat/internal/returns"
)

// jsonEnvelope wraps a report with export metadata
type jsonEnvelope struct {
	Metadata jsonMetadata    `json:"metadata"`
	Report   *returns.Report `json:"report"`
}

type jsonMetadata struct {
	Format     string    `json:"format"`
	ExportedAt time.Time `json:"exported_at"`
	Countries  int       `json:"countries"`
	Regions    int       `json:"regions"`
}

// ExportJSON writes the full report as a single indented JSON document.
// Undefined metric values marshal as null.
func (e *ReportExporter) ExportJSON(report *returns.Report, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	envelope := jsonEnvelope{
		Metadata: jsonMetadata{
			Format:     "idxstat-report-v1",
			ExportedAt: time.Now(),
			Countries:  len(report.SummaryRows),
			Regions:    len(report.Regions),
		},
		Report: report,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	e.logger.Info("report exported to JSON",
		slog.String("file_path", filePath),
		slog.Int("bytes", len(data)))
	return nil
}
