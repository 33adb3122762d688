package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "idxstat/internal/errors"
	"idxstat/internal/returns"
)

// LoadExcel reads observations from an Excel workbook. The loader scans the
// sheets for one whose first row carries the expected header and parses the
// rows below it. Workbooks exported by WriteExcel round-trip through here.
func (l *Loader) LoadExcel(path string) (returns.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open returns workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	rows, sheetName, err := findObservationSheet(f)
	if err != nil {
		return nil, apperrors.NewParsingError("no observation sheet found in workbook", err).
			WithContext("path", path)
	}

	l.logger.Debug("found observation sheet", "path", path, "sheet", sheetName)

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, apperrors.NewParsingError("unrecognized workbook header", err).
			WithContext("path", path).
			WithContext("sheet", sheetName)
	}

	var ds returns.Dataset
	for i, record := range rows[1:] {
		if isBlankRow(record) {
			continue
		}

		row, err := parseRecord(record, cols)
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("malformed workbook row %d", i+2), err).
				WithContext("path", path).
				WithContext("sheet", sheetName)
		}

		obs, err := l.toObservation(row)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid observation at workbook row %d", i+2), err).
				WithContext("path", path).
				WithContext("sheet", sheetName)
		}
		ds = append(ds, obs)
	}

	return ds, nil
}

// findObservationSheet returns the rows of the first sheet whose header row
// maps to the observation columns.
func findObservationSheet(f *excelize.File) ([][]string, string, error) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) < 1 {
			continue
		}
		if _, err := mapColumns(rows[0]); err == nil {
			return rows, name, nil
		}
	}
	return nil, "", fmt.Errorf("no sheet with observation header among %v", f.GetSheetList())
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseYearCell tolerates Excel serializing years as floats ("2018.0")
func parseYearCell(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if year, err := strconv.Atoi(cell); err == nil {
		return year, nil
	}
	val, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q: %w", cell, err)
	}
	return int(val), nil
}
