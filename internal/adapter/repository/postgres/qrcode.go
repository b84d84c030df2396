package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
)

var errHistoryMismatch = errors.New("history does not match current url")

type qrCodeDB struct {
	ID         string    `db:"id"`
	OwnerID    string    `db:"owner_id"`
	Kind       string    `db:"kind"`
	CurrentURL string    `db:"current_url"`
	Metadata   jsonMap   `db:"metadata"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type historyDB struct {
	QRCodeID  string    `db:"qr_code_id"`
	URL       string    `db:"url"`
	ChangedAt time.Time `db:"changed_at"`
}

func (q *qrCodeDB) toEntity(history []historyDB) *entity.QRCode {
	qrCode := &entity.QRCode{
		ID:         q.ID,
		OwnerID:    q.OwnerID,
		Kind:       entity.Kind(q.Kind),
		CurrentURL: q.CurrentURL,
		History:    make([]entity.HistoryEntry, 0, len(history)),
		Metadata:   entity.Metadata(q.Metadata),
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}

	for _, h := range history {
		qrCode.History = append(qrCode.History, entity.HistoryEntry{URL: h.URL, ChangedAt: h.ChangedAt})
	}

	return qrCode
}

type QRCodeRepository struct {
	db *sqlx.DB
}

func NewQRCodeRepository(db *sqlx.DB) *QRCodeRepository {
	return &QRCodeRepository{db: db}
}

// Save inserts the QR code together with its seeded history.
func (r *QRCodeRepository) Save(ctx context.Context, qrCode *entity.QRCode) error {
	const op = "adapter.repository.postgres.QRCodeRepository.Save"
	const insertQRCode = `INSERT INTO qr_codes(id, owner_id, kind, current_url, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	const insertHistory = `INSERT INTO qr_code_history(qr_code_id, url, changed_at) VALUES ($1, $2, $3)`

	err := withTx(ctx, r.db, nil, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, insertQRCode,
			qrCode.ID,
			qrCode.OwnerID,
			string(qrCode.Kind),
			qrCode.CurrentURL,
			jsonMap(qrCode.Metadata),
			qrCode.CreatedAt,
			qrCode.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolationError(err) {
				return entity.ErrIDExists
			}
			return fmt.Errorf("failed to insert into qr_codes table: %w", err)
		}

		for _, h := range qrCode.History {
			if _, err := tx.ExecContext(ctx, insertHistory, qrCode.ID, h.URL, h.ChangedAt); err != nil {
				return fmt.Errorf("failed to insert into qr_code_history table: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RetrieveByID reads the QR code and its history from one snapshot, so a
// concurrent update is seen either entirely or not at all.
func (r *QRCodeRepository) RetrieveByID(ctx context.Context, id string) (*entity.QRCode, error) {
	const op = "adapter.repository.postgres.QRCodeRepository.RetrieveByID"
	const query = `SELECT id, owner_id, kind, current_url, metadata, created_at, updated_at FROM qr_codes WHERE id = $1`

	var (
		row     qrCodeDB
		history map[string][]historyDB
	)

	err := withTx(ctx, r.db, snapshot, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &row, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return entity.ErrQRCodeNotFound
			}
			return fmt.Errorf("failed to get row from qr_codes table: %w", err)
		}

		var err error
		history, err = selectHistory(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	qrCode := row.toEntity(history[id])
	if err := checkHistory(qrCode); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return qrCode, nil
}

// RetrieveByOwner reads the QR codes and their history from one snapshot.
func (r *QRCodeRepository) RetrieveByOwner(ctx context.Context, ownerID string) ([]*entity.QRCode, error) {
	const op = "adapter.repository.postgres.QRCodeRepository.RetrieveByOwner"
	const query = `SELECT id, owner_id, kind, current_url, metadata, created_at, updated_at FROM qr_codes
		WHERE owner_id = $1 ORDER BY created_at, id`

	var (
		rows    []qrCodeDB
		history map[string][]historyDB
	)

	err := withTx(ctx, r.db, snapshot, func(tx *sqlx.Tx) error {
		if err := tx.SelectContext(ctx, &rows, query, ownerID); err != nil {
			return fmt.Errorf("failed to select from qr_codes table: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		ids := make([]string, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}

		var err error
		history, err = selectHistory(ctx, tx, ids...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	qrCodes := make([]*entity.QRCode, 0, len(rows))
	for _, row := range rows {
		qrCode := row.toEntity(history[row.ID])
		if err := checkHistory(qrCode); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		qrCodes = append(qrCodes, qrCode)
	}

	return qrCodes, nil
}

// UpdateDestination locks the QR code row, appends the history entry and moves
// current_url in one transaction.
func (r *QRCodeRepository) UpdateDestination(
	ctx context.Context,
	id, url string,
	changedAt time.Time,
) (*entity.QRCode, error) {
	const op = "adapter.repository.postgres.QRCodeRepository.UpdateDestination"
	const lockQuery = `SELECT id FROM qr_codes WHERE id = $1 FOR UPDATE`
	const insertHistory = `INSERT INTO qr_code_history(qr_code_id, url, changed_at) VALUES ($1, $2, $3)`
	const updateQuery = `UPDATE qr_codes SET current_url = $1, updated_at = $2 WHERE id = $3
		RETURNING id, owner_id, kind, current_url, metadata, created_at, updated_at`

	var (
		qrCode  qrCodeDB
		history map[string][]historyDB
	)

	err := withTx(ctx, r.db, nil, func(tx *sqlx.Tx) error {
		var lockedID string
		if err := tx.GetContext(ctx, &lockedID, lockQuery, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return entity.ErrQRCodeNotFound
			}
			return fmt.Errorf("failed to lock qr_codes table row: %w", err)
		}

		if _, err := tx.ExecContext(ctx, insertHistory, id, url, changedAt); err != nil {
			return fmt.Errorf("failed to insert into qr_code_history table: %w", err)
		}

		if err := tx.GetContext(ctx, &qrCode, updateQuery, url, changedAt, id); err != nil {
			return fmt.Errorf("failed to update qr_codes table row: %w", err)
		}

		var err error
		history, err = selectHistory(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated := qrCode.toEntity(history[id])
	if err := checkHistory(updated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// checkHistory fails when the last history entry does not match the current
// destination. A QR code without history predates history seeding and passes.
func checkHistory(qrCode *entity.QRCode) error {
	last, ok := qrCode.LastChange()
	if ok && last.URL != qrCode.CurrentURL {
		return fmt.Errorf("%w: qr code %s points at %q, history ends at %q",
			errHistoryMismatch, qrCode.ID, qrCode.CurrentURL, last.URL)
	}
	return nil
}

// selectHistory loads the history of the given QR codes keyed by QR code id,
// each slice in the order the entries were appended.
func selectHistory(ctx context.Context, q sqlx.QueryerContext, ids ...string) (map[string][]historyDB, error) {
	query, args, err := psql.
		Select("qr_code_id", "url", "changed_at").
		From("qr_code_history").
		Where(sq.Eq{"qr_code_id": ids}).
		OrderBy("qr_code_id", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build history query: %w", err)
	}

	var rows []historyDB
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select from qr_code_history table: %w", err)
	}

	history := make(map[string][]historyDB, len(ids))
	for _, row := range rows {
		history[row.QRCodeID] = append(history[row.QRCodeID], row)
	}

	return history, nil
}
