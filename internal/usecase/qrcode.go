package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/vadimbarashkov/qrtrack/internal/entity"
	"github.com/vadimbarashkov/qrtrack/pkg/keymutex"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating qr code id")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidID reports whether id is a well-formed QR code identifier.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

type qrCodeRepository interface {
	Save(ctx context.Context, qrCode *entity.QRCode) error
	RetrieveByID(ctx context.Context, id string) (*entity.QRCode, error)
	RetrieveByOwner(ctx context.Context, ownerID string) ([]*entity.QRCode, error)
	UpdateDestination(ctx context.Context, id, url string, changedAt time.Time) (*entity.QRCode, error)
}

type QRCodeUseCase struct {
	idLength int
	repo     qrCodeRepository
	locks    *keymutex.KeyMutex
	now      func() time.Time
}

func NewQRCodeUseCase(idLength int, repo qrCodeRepository) *QRCodeUseCase {
	return &QRCodeUseCase{
		idLength: idLength,
		repo:     repo,
		locks:    keymutex.New(),
		now:      time.Now,
	}
}

func (uc *QRCodeUseCase) CreateQRCode(
	ctx context.Context,
	ownerID string,
	kind entity.Kind,
	url string,
	metadata entity.Metadata,
) (*entity.QRCode, error) {
	const op = "usecase.QRCodeUseCase.CreateQRCode"
	const maxRetries = 5

	idLength := uc.idLength

	for i := 0; i < maxRetries; i++ {
		id, err := gonanoid.New(idLength)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate id: %w", op, err)
		}

		now := uc.now().UTC()
		qrCode := &entity.QRCode{
			ID:         id,
			OwnerID:    ownerID,
			Kind:       kind,
			CurrentURL: url,
			History:    []entity.HistoryEntry{{URL: url, ChangedAt: now}},
			Metadata:   metadata,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := uc.repo.Save(ctx, qrCode); err != nil {
			if errors.Is(err, entity.ErrIDExists) {
				idLength++
				continue
			}

			return nil, fmt.Errorf("%s: failed to save qr code: %w", op, err)
		}

		return qrCode, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

// Resolve returns the current destination of a QR code. It performs no ownership check.
func (uc *QRCodeUseCase) Resolve(ctx context.Context, id string) (string, error) {
	const op = "usecase.QRCodeUseCase.Resolve"

	qrCode, err := uc.repo.RetrieveByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("%s: failed to resolve qr code: %w", op, err)
	}

	return qrCode.CurrentURL, nil
}

// UpdateDestination points a dynamic QR code at url. Updates of the same QR code
// are applied one at a time, so each of them lands in the history.
func (uc *QRCodeUseCase) UpdateDestination(ctx context.Context, id, url, requesterID string) (*entity.QRCode, error) {
	const op = "usecase.QRCodeUseCase.UpdateDestination"

	unlock := uc.locks.Lock(id)
	defer unlock()

	qrCode, err := uc.repo.RetrieveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get qr code: %w", op, err)
	}

	if !qrCode.IsOwnedBy(requesterID) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrForbidden)
	}

	if qrCode.Kind == entity.KindStatic {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrStaticQRCode)
	}

	qrCode, err = uc.repo.UpdateDestination(ctx, id, url, uc.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update destination: %w", op, err)
	}

	return qrCode, nil
}

func (uc *QRCodeUseCase) GetQRCode(ctx context.Context, id, requesterID string) (*entity.QRCode, error) {
	const op = "usecase.QRCodeUseCase.GetQRCode"

	qrCode, err := authorize(ctx, uc.repo, id, requesterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return qrCode, nil
}

func (uc *QRCodeUseCase) ListQRCodes(ctx context.Context, ownerID string) ([]*entity.QRCode, error) {
	const op = "usecase.QRCodeUseCase.ListQRCodes"

	qrCodes, err := uc.repo.RetrieveByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list qr codes: %w", op, err)
	}

	return qrCodes, nil
}

type qrCodeGetter interface {
	RetrieveByID(ctx context.Context, id string) (*entity.QRCode, error)
}

// authorize loads the QR code and checks that requesterID owns it.
func authorize(ctx context.Context, repo qrCodeGetter, id, requesterID string) (*entity.QRCode, error) {
	qrCode, err := repo.RetrieveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get qr code: %w", err)
	}

	if !qrCode.IsOwnedBy(requesterID) {
		return nil, entity.ErrForbidden
	}

	return qrCode, nil
}
