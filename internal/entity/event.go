package entity

import "time"

// EventFields are the client-supplied attributes of a scan. All of them are optional.
type EventFields struct {
	Location   string   `json:"location,omitempty"`
	DeviceType string   `json:"device_type,omitempty"`
	UserAgent  string   `json:"user_agent,omitempty"`
	IPAddress  string   `json:"ip_address,omitempty"`
	Metadata   Metadata `json:"metadata,omitempty"`
}

// ScanEvent is one persisted scan of a QR code. Events are immutable once stored.
type ScanEvent struct {
	ID             string
	QRCodeID       string
	Timestamp      time.Time
	Location       string
	DeviceType     string
	UserAgent      string
	IPAddress      string
	URLAtTimestamp string
	Metadata       Metadata
}

// TrackJob is the unit of work carried by the event queue.
type TrackJob struct {
	ID          string      `json:"id"`
	QRCodeID    string      `json:"qr_code_id"`
	Fields      EventFields `json:"fields"`
	SubmittedAt time.Time   `json:"submitted_at"`
}

// EventFilter bounds a scan event query. Nil bounds are open.
type EventFilter struct {
	From *time.Time // inclusive
	To   *time.Time // exclusive
}

// Contains reports whether t falls inside the filter bounds.
func (f EventFilter) Contains(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.Before(*f.To) {
		return false
	}
	return true
}
