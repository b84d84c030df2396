// Package memory provides map-backed repositories used when no database DSN
// is configured and in tests. Records are copied on the way in and out, so
// callers never share state with the store.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

type QRCodeRepository struct {
	mu      sync.RWMutex
	qrCodes map[string]*entity.QRCode
}

func NewQRCodeRepository() *QRCodeRepository {
	return &QRCodeRepository{
		qrCodes: make(map[string]*entity.QRCode),
	}
}

func (r *QRCodeRepository) Save(_ context.Context, qrCode *entity.QRCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.qrCodes[qrCode.ID]; ok {
		return entity.ErrIDExists
	}

	r.qrCodes[qrCode.ID] = cloneQRCode(qrCode)

	return nil
}

func (r *QRCodeRepository) RetrieveByID(_ context.Context, id string) (*entity.QRCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	qrCode, ok := r.qrCodes[id]
	if !ok {
		return nil, entity.ErrQRCodeNotFound
	}

	return cloneQRCode(qrCode), nil
}

func (r *QRCodeRepository) RetrieveByOwner(_ context.Context, ownerID string) ([]*entity.QRCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	qrCodes := make([]*entity.QRCode, 0)
	for _, qrCode := range r.qrCodes {
		if qrCode.OwnerID == ownerID {
			qrCodes = append(qrCodes, cloneQRCode(qrCode))
		}
	}

	sort.Slice(qrCodes, func(i, j int) bool {
		if qrCodes[i].CreatedAt.Equal(qrCodes[j].CreatedAt) {
			return qrCodes[i].ID < qrCodes[j].ID
		}
		return qrCodes[i].CreatedAt.Before(qrCodes[j].CreatedAt)
	})

	return qrCodes, nil
}

// UpdateDestination appends to the history and moves the current destination
// under one write lock, so readers see either the old or the new pair.
func (r *QRCodeRepository) UpdateDestination(_ context.Context, id, url string, changedAt time.Time) (*entity.QRCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	qrCode, ok := r.qrCodes[id]
	if !ok {
		return nil, entity.ErrQRCodeNotFound
	}

	qrCode.History = append(qrCode.History, entity.HistoryEntry{URL: url, ChangedAt: changedAt})
	qrCode.CurrentURL = url
	qrCode.UpdatedAt = changedAt

	return cloneQRCode(qrCode), nil
}

type EventRepository struct {
	mu     sync.RWMutex
	events map[string][]entity.ScanEvent
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		events: make(map[string][]entity.ScanEvent),
	}
}

func (r *EventRepository) Save(_ context.Context, event *entity.ScanEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := *event
	e.Metadata = maps.Clone(event.Metadata)
	r.events[event.QRCodeID] = append(r.events[event.QRCodeID], e)

	return nil
}

// RetrieveByQRCode returns the events inside filter ordered by timestamp.
func (r *EventRepository) RetrieveByQRCode(
	_ context.Context,
	qrCodeID string,
	filter entity.EventFilter,
) ([]entity.ScanEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]entity.ScanEvent, 0, len(r.events[qrCodeID]))
	for _, e := range r.events[qrCodeID] {
		if filter.Contains(e.Timestamp) {
			e.Metadata = maps.Clone(e.Metadata)
			events = append(events, e)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	return events, nil
}

func cloneQRCode(qrCode *entity.QRCode) *entity.QRCode {
	c := *qrCode
	c.History = append([]entity.HistoryEntry(nil), qrCode.History...)
	c.Metadata = maps.Clone(qrCode.Metadata)
	return &c
}
