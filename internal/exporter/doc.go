// Package exporter writes the derived statistics tables to CSV files, a
// JSON report and an Excel workbook. Undefined metric values are rendered
// as empty cells in tabular formats and as null in JSON.
package exporter
