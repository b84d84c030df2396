package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
	"github.com/vadimbarashkov/qrtrack/pkg/auth"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

func handleUnauthorized(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, unauthorizedResponse)
}

type qrCodeUseCase interface {
	CreateQRCode(ctx context.Context, ownerID string, kind entity.Kind, url string, metadata entity.Metadata) (*entity.QRCode, error)
	Resolve(ctx context.Context, id string) (string, error)
	UpdateDestination(ctx context.Context, id, url, requesterID string) (*entity.QRCode, error)
	GetQRCode(ctx context.Context, id, requesterID string) (*entity.QRCode, error)
	ListQRCodes(ctx context.Context, ownerID string) ([]*entity.QRCode, error)
}

type eventUseCase interface {
	Submit(ctx context.Context, qrCodeID string, fields entity.EventFields) (string, error)
	ListEvents(ctx context.Context, qrCodeID, requesterID string) ([]entity.ScanEvent, error)
}

type analyticsUseCase interface {
	GetAnalytics(ctx context.Context, qrCodeID, requesterID string, start, end *time.Time) (*entity.Stats, error)
	DetectAnomalies(ctx context.Context, qrCodeID, requesterID string) (*entity.AnomalyReport, error)
}

func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// decodeAndValidate renders a 400 response and returns false when the body
// cannot be decoded into req or fails validation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, req any, allowEmpty bool) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		if errors.Is(err, io.EOF) {
			if allowEmpty {
				return true
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return false
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return false
	}

	if err := validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return false
	}

	return true
}

// renderError maps use case errors onto responses. Unexpected errors are
// logged and reported without detail.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrQRCodeNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, qrCodeNotFoundResponse)
	case errors.Is(err, entity.ErrForbidden):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, forbiddenResponse)
	case errors.Is(err, entity.ErrStaticQRCode):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, staticQRCodeResponse)
	case errors.Is(err, entity.ErrValidation):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Status: statusError, Message: "validation error"})
	case errors.Is(err, entity.ErrQueueFull), errors.Is(err, entity.ErrQueueClosed):
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, queueFullResponse)
	default:
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
	}
}

// requesterID returns the authenticated user. Routes using it sit behind the auth middleware.
func requesterID(r *http.Request) string {
	userID, _ := auth.UserID(r.Context())
	return userID
}

// clientIP strips the port from RemoteAddr, which middleware.RealIP may
// already have replaced with a forwarded address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
