package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

type eventRepository interface {
	Save(ctx context.Context, event *entity.ScanEvent) error
	RetrieveByQRCode(ctx context.Context, qrCodeID string, filter entity.EventFilter) ([]entity.ScanEvent, error)
}

type eventQueue interface {
	Enqueue(ctx context.Context, job entity.TrackJob) error
}

type EventUseCase struct {
	qrCodeRepo qrCodeGetter
	eventRepo  eventRepository
	queue      eventQueue
	now        func() time.Time
}

func NewEventUseCase(qrCodeRepo qrCodeGetter, eventRepo eventRepository, queue eventQueue) *EventUseCase {
	return &EventUseCase{
		qrCodeRepo: qrCodeRepo,
		eventRepo:  eventRepo,
		queue:      queue,
		now:        time.Now,
	}
}

// Submit accepts a scan for asynchronous recording and returns the job id.
// It does not check that the QR code exists.
func (uc *EventUseCase) Submit(ctx context.Context, qrCodeID string, fields entity.EventFields) (string, error) {
	const op = "usecase.EventUseCase.Submit"

	if !ValidID(qrCodeID) {
		return "", fmt.Errorf("%s: malformed qr code id: %w", op, entity.ErrValidation)
	}

	job := entity.TrackJob{
		ID:          uuid.NewString(),
		QRCodeID:    qrCodeID,
		Fields:      fields,
		SubmittedAt: uc.now().UTC(),
	}

	if err := uc.queue.Enqueue(ctx, job); err != nil {
		return "", fmt.Errorf("%s: failed to enqueue job: %w", op, err)
	}

	return job.ID, nil
}

// Ingest turns a job into a stored scan event. The event is stamped with the
// destination the QR code points at when the job is processed.
func (uc *EventUseCase) Ingest(ctx context.Context, job entity.TrackJob) (*entity.ScanEvent, error) {
	const op = "usecase.EventUseCase.Ingest"

	qrCode, err := uc.qrCodeRepo.RetrieveByID(ctx, job.QRCodeID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get qr code: %w", op, err)
	}

	event := &entity.ScanEvent{
		ID:             uuid.NewString(),
		QRCodeID:       qrCode.ID,
		Timestamp:      uc.now().UTC(),
		Location:       job.Fields.Location,
		DeviceType:     job.Fields.DeviceType,
		UserAgent:      job.Fields.UserAgent,
		IPAddress:      job.Fields.IPAddress,
		URLAtTimestamp: qrCode.CurrentURL,
		Metadata:       job.Fields.Metadata,
	}

	if err := uc.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("%s: failed to save event: %w", op, err)
	}

	return event, nil
}

func (uc *EventUseCase) ListEvents(ctx context.Context, qrCodeID, requesterID string) ([]entity.ScanEvent, error) {
	const op = "usecase.EventUseCase.ListEvents"

	if _, err := authorize(ctx, uc.qrCodeRepo, qrCodeID, requesterID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events, err := uc.eventRepo.RetrieveByQRCode(ctx, qrCodeID, entity.EventFilter{})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get events: %w", op, err)
	}

	return events, nil
}
