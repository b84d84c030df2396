package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

const (
	statusError    = "error"
	statusAccepted = "accepted"
)

// createQRCodeRequest is the payload for creating a static or dynamic QR code.
type createQRCodeRequest struct {
	URL      string         `json:"url" validate:"required,url"`
	Metadata map[string]any `json:"metadata"`
}

// updateQRCodeRequest is the payload for pointing a dynamic QR code at a new destination.
type updateQRCodeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// trackRequest describes a scan. Every field is optional.
type trackRequest struct {
	Location   string         `json:"location" validate:"omitempty,max=255"`
	DeviceType string         `json:"device_type" validate:"omitempty,max=64"`
	UserAgent  string         `json:"user_agent" validate:"omitempty,max=1024"`
	IPAddress  string         `json:"ip_address" validate:"omitempty,ip"`
	Metadata   map[string]any `json:"metadata"`
}

type historyEntryResponse struct {
	URL       string    `json:"url"`
	ChangedAt time.Time `json:"changed_at"`
}

type qrCodeResponse struct {
	ID          string                 `json:"id"`
	OwnerID     string                 `json:"owner_id"`
	Kind        string                 `json:"kind"`
	CurrentURL  string                 `json:"current_url"`
	RedirectURL string                 `json:"redirect_url,omitempty"`
	History     []historyEntryResponse `json:"history"`
	Metadata    map[string]any         `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func toQRCodeResponse(qrCode *entity.QRCode, baseURL string) qrCodeResponse {
	resp := qrCodeResponse{
		ID:         qrCode.ID,
		OwnerID:    qrCode.OwnerID,
		Kind:       string(qrCode.Kind),
		CurrentURL: qrCode.CurrentURL,
		History:    make([]historyEntryResponse, 0, len(qrCode.History)),
		Metadata:   qrCode.Metadata,
		CreatedAt:  qrCode.CreatedAt,
		UpdatedAt:  qrCode.UpdatedAt,
	}

	if qrCode.Kind == entity.KindDynamic {
		resp.RedirectURL = redirectURL(baseURL, qrCode.ID)
	}

	for _, h := range qrCode.History {
		resp.History = append(resp.History, historyEntryResponse{URL: h.URL, ChangedAt: h.ChangedAt})
	}

	return resp
}

func redirectURL(baseURL, id string) string {
	return baseURL + "/r/" + id
}

type scanEventResponse struct {
	ID             string         `json:"id"`
	QRCodeID       string         `json:"qr_code_id"`
	Timestamp      time.Time      `json:"timestamp"`
	Location       string         `json:"location,omitempty"`
	DeviceType     string         `json:"device_type,omitempty"`
	UserAgent      string         `json:"user_agent,omitempty"`
	IPAddress      string         `json:"ip_address,omitempty"`
	URLAtTimestamp string         `json:"url_at_timestamp"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

func toScanEventResponses(events []entity.ScanEvent) []scanEventResponse {
	resp := make([]scanEventResponse, 0, len(events))

	for _, e := range events {
		resp = append(resp, scanEventResponse{
			ID:             e.ID,
			QRCodeID:       e.QRCodeID,
			Timestamp:      e.Timestamp,
			Location:       e.Location,
			DeviceType:     e.DeviceType,
			UserAgent:      e.UserAgent,
			IPAddress:      e.IPAddress,
			URLAtTimestamp: e.URLAtTimestamp,
			Metadata:       e.Metadata,
		})
	}

	return resp
}

type trackResponse struct {
	Status string `json:"status"`
	JobID  string `json:"job_id"`
}

type dateCountResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type locationCountResponse struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

type deviceCountResponse struct {
	DeviceType string `json:"device_type"`
	Count      int64  `json:"count"`
}

type statsResponse struct {
	TotalScans             int64                   `json:"total_scans"`
	UniqueUsers            int64                   `json:"unique_users"`
	ScansOverTime          []dateCountResponse     `json:"scans_over_time"`
	GeographicDistribution []locationCountResponse `json:"geographic_distribution"`
	DeviceStats            []deviceCountResponse   `json:"device_stats"`
}

func toStatsResponse(stats *entity.Stats) statsResponse {
	resp := statsResponse{
		TotalScans:             stats.TotalScans,
		UniqueUsers:            stats.UniqueUsers,
		ScansOverTime:          make([]dateCountResponse, 0, len(stats.ScansOverTime)),
		GeographicDistribution: make([]locationCountResponse, 0, len(stats.GeographicDistribution)),
		DeviceStats:            make([]deviceCountResponse, 0, len(stats.DeviceStats)),
	}

	for _, c := range stats.ScansOverTime {
		resp.ScansOverTime = append(resp.ScansOverTime, dateCountResponse{Date: c.Date, Count: c.Count})
	}
	for _, c := range stats.GeographicDistribution {
		resp.GeographicDistribution = append(resp.GeographicDistribution, locationCountResponse{Location: c.Value, Count: c.Count})
	}
	for _, c := range stats.DeviceStats {
		resp.DeviceStats = append(resp.DeviceStats, deviceCountResponse{DeviceType: c.Value, Count: c.Count})
	}

	return resp
}

type anomalyResponse struct {
	Anomalies   []scanEventResponse `json:"anomalies"`
	TotalEvents int                 `json:"total_events"`
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	unauthorizedResponse = errorResponse{
		Status:  statusError,
		Message: "missing or invalid token",
	}

	forbiddenResponse = errorResponse{
		Status:  statusError,
		Message: "access denied",
	}

	qrCodeNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: "qr code not found",
	}

	staticQRCodeResponse = errorResponse{
		Status:  statusError,
		Message: "static qr code cannot be updated",
	}

	queueFullResponse = errorResponse{
		Status:  statusError,
		Message: "service is busy, try again later",
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	case "ip":
		return "invalid ip address"
	case "max":
		return "value is too long"
	case "date":
		return "invalid date, expected YYYY-MM-DD or RFC 3339"
	default:
		return "invalid value"
	}
}

func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
