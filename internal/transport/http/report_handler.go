package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "idxstat/internal/errors"
	"idxstat/internal/returns"
)

// ReportHandler serves the derived statistics tables of one report snapshot
type ReportHandler struct {
	report       *returns.Report
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a report handler over a computed report
func NewReportHandler(report *returns.Report, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		report:       report,
		logger:       logger,
		errorHandler: apierrors.NewErrorHandler(logger, false),
	}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.GetSummaries)
	r.Get("/summary/{country}", h.GetSummary)
	r.Get("/regions", h.GetRegions)
	r.Get("/streaks", h.GetStreaks)
	r.Get("/rolling/{country}", h.GetRolling)
	r.Get("/correlation", h.GetCorrelation)
}

// GetSummaries returns all per-country summary rows in stable order
func (h *ReportHandler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"generated_at": h.report.GeneratedAt,
		"summaries":    h.report.SummaryRows,
	})
}

// GetSummary returns the summary row for one country
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	country := chi.URLParam(r, "country")

	summary, ok := h.report.SummaryFor(country)
	if !ok {
		h.logger.WarnContext(ctx, "summary requested for unknown country",
			slog.String("country", country))
		h.errorHandler.HandleError(w, r, apierrors.ErrCountryNotFound)
		return
	}

	render.JSON(w, r, summary)
}

// GetRegions returns the regional benchmark summaries ranked by
// outperformance rate
func (h *ReportHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"generated_at": h.report.GeneratedAt,
		"regions":      returns.RegionsByOutperformance(h.report.Regions),
	})
}

// GetStreaks returns the longest positive and negative run per country
func (h *ReportHandler) GetStreaks(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"generated_at": h.report.GeneratedAt,
		"streaks":      h.report.Streaks,
	})
}

// GetRolling returns one country's rolling annualized return series
func (h *ReportHandler) GetRolling(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	country := chi.URLParam(r, "country")

	series, ok := h.report.Rolling[country]
	if !ok {
		h.logger.WarnContext(ctx, "rolling series requested for unknown country",
			slog.String("country", country))
		h.errorHandler.HandleError(w, r, apierrors.ErrCountryNotFound)
		return
	}

	render.JSON(w, r, series)
}

// GetCorrelation returns the full pairwise correlation matrix
func (h *ReportHandler) GetCorrelation(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"generated_at": h.report.GeneratedAt,
		"countries":    h.report.Correlation.Countries(),
		"matrix":       h.report.Correlation,
	})
}
