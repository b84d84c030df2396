package entity

import "errors"

var (
	// ErrQRCodeNotFound is returned when no QR code exists with the requested identifier.
	ErrQRCodeNotFound = errors.New("qr code not found")
	// ErrForbidden is returned when the requester does not own the QR code.
	ErrForbidden = errors.New("forbidden")
	// ErrStaticQRCode is returned when attempting to change the destination of a static QR code.
	ErrStaticQRCode = errors.New("static qr code cannot be updated")
	// ErrIDExists is returned when a generated identifier collides with an existing one.
	ErrIDExists = errors.New("qr code id exists")
	// ErrValidation is returned for malformed date bounds or payload fields.
	ErrValidation = errors.New("validation error")
	// ErrQueueFull is returned when the event queue cannot accept more jobs.
	ErrQueueFull = errors.New("event queue is full")
	// ErrQueueClosed is returned by queue operations after the queue was closed.
	ErrQueueClosed = errors.New("event queue is closed")
)
