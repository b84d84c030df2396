package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

type scanEventDB struct {
	ID             string    `db:"id"`
	QRCodeID       string    `db:"qr_code_id"`
	Timestamp      time.Time `db:"timestamp"`
	Location       string    `db:"location"`
	DeviceType     string    `db:"device_type"`
	UserAgent      string    `db:"user_agent"`
	IPAddress      string    `db:"ip_address"`
	URLAtTimestamp string    `db:"url_at_timestamp"`
	Metadata       jsonMap   `db:"metadata"`
}

func (e *scanEventDB) toEntity() entity.ScanEvent {
	return entity.ScanEvent{
		ID:             e.ID,
		QRCodeID:       e.QRCodeID,
		Timestamp:      e.Timestamp,
		Location:       e.Location,
		DeviceType:     e.DeviceType,
		UserAgent:      e.UserAgent,
		IPAddress:      e.IPAddress,
		URLAtTimestamp: e.URLAtTimestamp,
		Metadata:       entity.Metadata(e.Metadata),
	}
}

var scanEventColumns = []string{
	"id", "qr_code_id", "timestamp", "location", "device_type",
	"user_agent", "ip_address", "url_at_timestamp", "metadata",
}

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Save(ctx context.Context, event *entity.ScanEvent) error {
	const op = "adapter.repository.postgres.EventRepository.Save"

	query, args, err := psql.
		Insert("scan_events").
		Columns(scanEventColumns...).
		Values(
			event.ID,
			event.QRCodeID,
			event.Timestamp,
			event.Location,
			event.DeviceType,
			event.UserAgent,
			event.IPAddress,
			event.URLAtTimestamp,
			jsonMap(event.Metadata),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to insert into scan_events table: %w", op, err)
	}

	return nil
}

// RetrieveByQRCode returns the events inside filter ordered by timestamp.
func (r *EventRepository) RetrieveByQRCode(
	ctx context.Context,
	qrCodeID string,
	filter entity.EventFilter,
) ([]entity.ScanEvent, error) {
	const op = "adapter.repository.postgres.EventRepository.RetrieveByQRCode"

	builder := psql.
		Select(scanEventColumns...).
		From("scan_events").
		Where("qr_code_id = ?", qrCodeID).
		OrderBy("timestamp", "id")

	if filter.From != nil {
		builder = builder.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		builder = builder.Where("timestamp < ?", *filter.To)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []scanEventDB
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to select from scan_events table: %w", op, err)
	}

	events := make([]entity.ScanEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEntity())
	}

	return events, nil
}
