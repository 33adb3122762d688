package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	apperrors "idxstat/internal/errors"
	"idxstat/internal/returns"
)

// Loader reads yearly return observations from flat files and hands the
// statistics engine a validated, filtered dataset. All shape validation
// happens here; the engine assumes its input is well-formed.
type Loader struct {
	logger            *slog.Logger
	validate          *validator.Validate
	excludedCountries []string
}

// NewLoader creates a loader. Observations for the excluded countries are
// dropped before the dataset is returned.
func NewLoader(logger *slog.Logger, excludedCountries []string) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:            logger,
		validate:          validator.New(),
		excludedCountries: excludedCountries,
	}
}

// rawRow is the on-disk observation shape before validation. Difference and
// Outperformed columns are accepted but ignored; both are recomputed from
// the return columns.
type rawRow struct {
	Country         string  `validate:"required"`
	Benchmark       string  `validate:"required"`
	Year            int     `validate:"required,gte=1900,lte=2100"`
	CountryReturn   float64 `validate:"gte=-100"`
	BenchmarkReturn float64 `validate:"gte=-100"`
}

// LoadSources loads every region file concurrently, concatenates the rows
// into one dataset, applies the exclusion filter and checks the dataset
// invariants. Files ending in .xlsx go through the Excel reader, everything
// else is treated as CSV.
func (l *Loader) LoadSources(ctx context.Context, paths ...string) (returns.Dataset, error) {
	if len(paths) == 0 {
		return nil, apperrors.NewConfigError("no input files configured", nil)
	}

	var mu sync.Mutex
	var all returns.Dataset

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			ds, err := l.loadFile(ctx, path)
			if err != nil {
				return err
			}

			mu.Lock()
			all = append(all, ds...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := all.Exclude(l.excludedCountries...)
	if dropped := len(all) - len(filtered); dropped > 0 {
		l.logger.InfoContext(ctx, "excluded countries removed from dataset",
			"excluded", l.excludedCountries,
			"rows_dropped", dropped,
		)
	}

	if err := returns.ValidateDataset(filtered); err != nil {
		return nil, apperrors.NewValidationError("dataset invariants violated", err)
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		"files", len(paths),
		"observations", len(filtered),
		"countries", len(filtered.Countries()),
	)

	return filtered, nil
}

func (l *Loader) loadFile(ctx context.Context, path string) (returns.Dataset, error) {
	l.logger.DebugContext(ctx, "loading return observations", "path", path)

	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return l.LoadExcel(path)
	}
	return l.LoadCSV(path)
}

// LoadCSV reads observations from a CSV file with a header row:
//
//	Country,Benchmark,Year,CountryReturn,BenchmarkReturn[,Difference,Outperformed]
func (l *Loader) LoadCSV(path string) (returns.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open returns CSV", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // trailing derived columns are optional

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV header", err).
			WithContext("path", path)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, apperrors.NewParsingError("unrecognized CSV header", err).
			WithContext("path", path)
	}

	var ds returns.Dataset
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read CSV row %d", line), err).
				WithContext("path", path)
		}

		row, err := parseRecord(record, cols)
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("malformed CSV row %d", line), err).
				WithContext("path", path)
		}

		obs, err := l.toObservation(row)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid observation at CSV row %d", line), err).
				WithContext("path", path)
		}
		ds = append(ds, obs)
	}

	return ds, nil
}

// toObservation validates a raw row and converts it with derived fields
// recomputed
func (l *Loader) toObservation(row rawRow) (returns.Observation, error) {
	if err := l.validate.Struct(row); err != nil {
		return returns.Observation{}, err
	}
	return returns.NewObservation(row.Country, row.Benchmark, row.Year, row.CountryReturn, row.BenchmarkReturn), nil
}

// columnIndex holds the positions of the required columns in a header
type columnIndex struct {
	country, benchmark, year, countryReturn, benchmarkReturn int
}

func mapColumns(header []string) (columnIndex, error) {
	idx := columnIndex{country: -1, benchmark: -1, year: -1, countryReturn: -1, benchmarkReturn: -1}

	for i, name := range header {
		switch normalizeColumn(name) {
		case "country":
			idx.country = i
		case "benchmark", "region":
			idx.benchmark = i
		case "year":
			idx.year = i
		case "countryreturn", "return":
			idx.countryReturn = i
		case "benchmarkreturn":
			idx.benchmarkReturn = i
		}
	}

	if idx.country < 0 || idx.benchmark < 0 || idx.year < 0 ||
		idx.countryReturn < 0 || idx.benchmarkReturn < 0 {
		return idx, fmt.Errorf("header %v is missing required columns", header)
	}
	return idx, nil
}

func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, " ", "")
	return name
}

func parseRecord(record []string, cols columnIndex) (rawRow, error) {
	var row rawRow

	needed := cols.country
	for _, c := range []int{cols.benchmark, cols.year, cols.countryReturn, cols.benchmarkReturn} {
		if c > needed {
			needed = c
		}
	}
	if len(record) <= needed {
		return row, fmt.Errorf("row has %d fields, need at least %d", len(record), needed+1)
	}

	row.Country = strings.TrimSpace(record[cols.country])
	row.Benchmark = strings.TrimSpace(record[cols.benchmark])

	year, err := parseYearCell(record[cols.year])
	if err != nil {
		return row, err
	}
	row.Year = year

	row.CountryReturn, err = strconv.ParseFloat(strings.TrimSpace(record[cols.countryReturn]), 64)
	if err != nil {
		return row, fmt.Errorf("invalid country return %q: %w", record[cols.countryReturn], err)
	}

	row.BenchmarkReturn, err = strconv.ParseFloat(strings.TrimSpace(record[cols.benchmarkReturn]), 64)
	if err != nil {
		return row, fmt.Errorf("invalid benchmark return %q: %w", record[cols.benchmarkReturn], err)
	}

	return row, nil
}
