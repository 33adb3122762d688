package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"idxstat/internal/config"
	"idxstat/internal/dataset"
	"idxstat/internal/infrastructure"
	"idxstat/internal/returns"
	transporthttp "idxstat/internal/transport/http"
)

func main() {
	inputs := flag.String("in", "", "comma-separated region files (.csv or .xlsx); defaults to every .csv in the data directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	if err := run(cfg, *inputs, logger); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, inputs string, logger *slog.Logger) error {
	ctx := context.Background()

	paths, err := resolveInputs(inputs, cfg.GetDataDir())
	if err != nil {
		return fmt.Errorf("resolve input files: %w", err)
	}

	loader := dataset.NewLoader(logger, cfg.Report.ExcludedCountries)
	ds, err := loader.LoadSources(ctx, paths...)
	if err != nil {
		return fmt.Errorf("load return observations: %w", err)
	}

	agg := returns.NewAggregator(cfg.Report.RollingWindow, cfg.Report.RecognizedBenchmarks, logger)
	report, err := agg.Aggregate(ctx, ds)
	if err != nil {
		return fmt.Errorf("compute statistics: %w", err)
	}

	router := transporthttp.NewRouter(cfg, report, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening",
			"addr", server.Addr,
			"countries", len(report.SummaryRows))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func resolveInputs(inputs, dataDir string) ([]string, error) {
	if inputs != "" {
		var out []string
		for _, part := range strings.Split(inputs, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, nil
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
