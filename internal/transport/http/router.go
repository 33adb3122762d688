package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"idxstat/internal/config"
	apierrors "idxstat/internal/errors"
	custommw "idxstat/internal/middleware"
	"idxstat/internal/returns"
)

// NewRouter assembles the full middleware chain and mounts the API routes
// over one report snapshot.
func NewRouter(cfg *config.Config, report *returns.Report, logger *slog.Logger) chi.Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Compress(5))
	r.Use(custommw.Timeout(cfg.Server.WriteTimeout, logger))

	if cfg.Server.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	errorHandler := apierrors.NewErrorHandler(logger, false)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	reportHandler := NewReportHandler(report, logger)
	healthHandler := NewHealthHandler(report.GeneratedAt, len(report.SummaryRows))

	r.Route("/api", func(r chi.Router) {
		reportHandler.RegisterRoutes(r)
		healthHandler.RegisterRoutes(r)
	})

	return r
}
