package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

type analyticsHandler struct {
	useCase analyticsUseCase
}

func newAnalyticsHandler(useCase analyticsUseCase) *analyticsHandler {
	return &analyticsHandler{useCase: useCase}
}

func (h *analyticsHandler) analytics(w http.ResponseWriter, r *http.Request) {
	var errs []validationError

	start, ok := parseDate(r.URL.Query().Get("start_date"))
	if !ok {
		errs = append(errs, validationError{Field: "start_date", Message: messageForTag("date")})
	}

	end, ok := parseDate(r.URL.Query().Get("end_date"))
	if !ok {
		errs = append(errs, validationError{Field: "end_date", Message: messageForTag("date")})
	}

	if len(errs) > 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Status: statusError, Message: "validation error", Errors: errs})
		return
	}

	stats, err := h.useCase.GetAnalytics(r.Context(), chi.URLParam(r, "id"), requesterID(r), start, end)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toStatsResponse(stats))
}

func (h *analyticsHandler) anomalies(w http.ResponseWriter, r *http.Request) {
	report, err := h.useCase.DetectAnomalies(r.Context(), chi.URLParam(r, "id"), requesterID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, anomalyResponse{
		Anomalies:   toScanEventResponses(report.Anomalies),
		TotalEvents: report.TotalEvents,
	})
}

// parseDate returns nil for an empty value and false when value is not a date.
func parseDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, true
		}
	}

	return nil, false
}
