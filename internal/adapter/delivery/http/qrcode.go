package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
	"github.com/vadimbarashkov/qrtrack/pkg/qrimage"
)

type qrCodeHandler struct {
	useCase  qrCodeUseCase
	validate *validator.Validate
	baseURL  string
}

func newQRCodeHandler(useCase qrCodeUseCase, validate *validator.Validate, baseURL string) *qrCodeHandler {
	return &qrCodeHandler{
		useCase:  useCase,
		validate: validate,
		baseURL:  baseURL,
	}
}

func (h *qrCodeHandler) createStatic(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, entity.KindStatic)
}

func (h *qrCodeHandler) createDynamic(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, entity.KindDynamic)
}

func (h *qrCodeHandler) create(w http.ResponseWriter, r *http.Request, kind entity.Kind) {
	var req createQRCodeRequest

	if !decodeAndValidate(w, r, h.validate, &req, false) {
		return
	}

	qrCode, err := h.useCase.CreateQRCode(r.Context(), requesterID(r), kind, req.URL, req.Metadata)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toQRCodeResponse(qrCode, h.baseURL))
}

func (h *qrCodeHandler) list(w http.ResponseWriter, r *http.Request) {
	qrCodes, err := h.useCase.ListQRCodes(r.Context(), requesterID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	resp := make([]qrCodeResponse, 0, len(qrCodes))
	for _, qrCode := range qrCodes {
		resp = append(resp, toQRCodeResponse(qrCode, h.baseURL))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *qrCodeHandler) get(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.useCase.GetQRCode(r.Context(), chi.URLParam(r, "id"), requesterID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toQRCodeResponse(qrCode, h.baseURL))
}

func (h *qrCodeHandler) updateDestination(w http.ResponseWriter, r *http.Request) {
	var req updateQRCodeRequest

	if !decodeAndValidate(w, r, h.validate, &req, false) {
		return
	}

	qrCode, err := h.useCase.UpdateDestination(r.Context(), chi.URLParam(r, "id"), req.URL, requesterID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toQRCodeResponse(qrCode, h.baseURL))
}

// image renders the QR code as PNG. Dynamic codes encode the redirect URL so
// that scans keep working after the destination changes.
func (h *qrCodeHandler) image(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.useCase.GetQRCode(r.Context(), chi.URLParam(r, "id"), requesterID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	payload := qrCode.CurrentURL
	if qrCode.Kind == entity.KindDynamic {
		payload = redirectURL(h.baseURL, qrCode.ID)
	}

	png, err := qrimage.PNG(payload, qrimage.DefaultSize)
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
	}
}

// redirect is public: anyone holding the code may follow it.
func (h *qrCodeHandler) redirect(w http.ResponseWriter, r *http.Request) {
	url, err := h.useCase.Resolve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}
