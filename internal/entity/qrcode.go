// Package entity defines the domain types shared by the use cases and adapters:
// QR code records with their destination history, scan events, tracking jobs
// and the derived analytics structures.
package entity

import "time"

// Kind distinguishes QR codes whose destination is fixed from the ones that redirect.
type Kind string

const (
	KindStatic  Kind = "static"
	KindDynamic Kind = "dynamic"
)

// Metadata holds owner-supplied attributes. It is never interpreted by the service.
type Metadata map[string]any

// HistoryEntry is one destination a QR code pointed to, starting at ChangedAt.
type HistoryEntry struct {
	URL       string
	ChangedAt time.Time
}

// QRCode maps a public identifier to its current destination.
//
// History is append-only and its last entry always matches CurrentURL.
type QRCode struct {
	ID         string
	OwnerID    string
	Kind       Kind
	CurrentURL string
	History    []HistoryEntry
	Metadata   Metadata
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOwnedBy reports whether userID owns the QR code.
func (q *QRCode) IsOwnedBy(userID string) bool {
	return q.OwnerID == userID
}

// LastChange returns the most recent history entry, or false if the history is empty.
func (q *QRCode) LastChange() (HistoryEntry, bool) {
	if len(q.History) == 0 {
		return HistoryEntry{}, false
	}
	return q.History[len(q.History)-1], true
}
