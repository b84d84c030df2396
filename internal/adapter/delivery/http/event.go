package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

type eventHandler struct {
	useCase  eventUseCase
	validate *validator.Validate
}

func newEventHandler(useCase eventUseCase, validate *validator.Validate) *eventHandler {
	return &eventHandler{
		useCase:  useCase,
		validate: validate,
	}
}

// track accepts a scan for asynchronous recording. Missing client details
// are taken from the request itself.
func (h *eventHandler) track(w http.ResponseWriter, r *http.Request) {
	var req trackRequest

	if !decodeAndValidate(w, r, h.validate, &req, true) {
		return
	}

	fields := entity.EventFields{
		Location:   req.Location,
		DeviceType: req.DeviceType,
		UserAgent:  req.UserAgent,
		IPAddress:  req.IPAddress,
		Metadata:   req.Metadata,
	}

	if fields.UserAgent == "" {
		fields.UserAgent = r.UserAgent()
	}
	if fields.IPAddress == "" {
		fields.IPAddress = clientIP(r)
	}

	jobID, err := h.useCase.Submit(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, trackResponse{Status: statusAccepted, JobID: jobID})
}

func (h *eventHandler) list(w http.ResponseWriter, r *http.Request) {
	events, err := h.useCase.ListEvents(r.Context(), chi.URLParam(r, "id"), requesterID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toScanEventResponses(events))
}
