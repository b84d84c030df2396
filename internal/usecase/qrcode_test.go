package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/qrtrack/internal/entity"
	"github.com/vadimbarashkov/qrtrack/mocks/usecase"
)

var fixedNow = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

type QRCodeUseCaseTestSuite struct {
	suite.Suite
	errUnknown     error
	qrCodeRepoMock *usecase.MockQrCodeRepository
	uc             *QRCodeUseCase
}

func (suite *QRCodeUseCaseTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
}

func (suite *QRCodeUseCaseTestSuite) SetupSubTest() {
	suite.qrCodeRepoMock = usecase.NewMockQrCodeRepository(suite.T())
	suite.uc = NewQRCodeUseCase(8, suite.qrCodeRepoMock)
	suite.uc.now = func() time.Time { return fixedNow }
}

func (suite *QRCodeUseCaseTestSuite) TearDownSubTest() {
	suite.qrCodeRepoMock.AssertExpectations(suite.T())
}

func (suite *QRCodeUseCaseTestSuite) TestCreateQRCode() {
	suite.Run("id generation error", func() {
		suite.uc.idLength = -1

		qrCode, err := suite.uc.CreateQRCode(context.Background(), "user-1", entity.KindDynamic, "https://example.com", nil)

		suite.Error(err)
		suite.Nil(qrCode)
	})

	suite.Run("maximum retries error", func() {
		suite.qrCodeRepoMock.
			On("Save", context.Background(), mock.Anything).
			Times(5).
			Return(entity.ErrIDExists)

		qrCode, err := suite.uc.CreateQRCode(context.Background(), "user-1", entity.KindDynamic, "https://example.com", nil)

		suite.Error(err)
		suite.ErrorIs(err, ErrMaxRetriesExceeded)
		suite.Nil(qrCode)
	})

	suite.Run("id grows after collision", func() {
		var lengths []int

		suite.qrCodeRepoMock.
			On("Save", context.Background(), mock.Anything).
			Run(func(args mock.Arguments) {
				lengths = append(lengths, len(args.Get(1).(*entity.QRCode).ID))
			}).
			Once().
			Return(entity.ErrIDExists)
		suite.qrCodeRepoMock.
			On("Save", context.Background(), mock.Anything).
			Run(func(args mock.Arguments) {
				lengths = append(lengths, len(args.Get(1).(*entity.QRCode).ID))
			}).
			Once().
			Return(nil)

		qrCode, err := suite.uc.CreateQRCode(context.Background(), "user-1", entity.KindDynamic, "https://example.com", nil)

		suite.NoError(err)
		suite.NotNil(qrCode)
		suite.Equal([]int{8, 9}, lengths)
	})

	suite.Run("unknown error", func() {
		suite.qrCodeRepoMock.
			On("Save", context.Background(), mock.Anything).
			Once().
			Return(suite.errUnknown)

		qrCode, err := suite.uc.CreateQRCode(context.Background(), "user-1", entity.KindStatic, "https://example.com", nil)

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(qrCode)
	})

	suite.Run("success", func() {
		suite.qrCodeRepoMock.
			On("Save", context.Background(), mock.AnythingOfType("*entity.QRCode")).
			Once().
			Return(nil)

		metadata := entity.Metadata{"campaign": "spring"}

		qrCode, err := suite.uc.CreateQRCode(context.Background(), "user-1", entity.KindDynamic, "https://example.com", metadata)

		suite.NoError(err)
		suite.NotNil(qrCode)
		suite.Len(qrCode.ID, 8)
		suite.True(ValidID(qrCode.ID))
		suite.Equal("user-1", qrCode.OwnerID)
		suite.Equal(entity.KindDynamic, qrCode.Kind)
		suite.Equal("https://example.com", qrCode.CurrentURL)
		suite.Equal([]entity.HistoryEntry{{URL: "https://example.com", ChangedAt: fixedNow}}, qrCode.History)
		suite.Equal(metadata, qrCode.Metadata)
		suite.Equal(fixedNow, qrCode.CreatedAt)
		suite.Equal(fixedNow, qrCode.UpdatedAt)
	})
}

func (suite *QRCodeUseCaseTestSuite) TestResolve() {
	suite.Run("not found", func() {
		suite.qrCodeRepoMock.
			On("RetrieveByID", context.Background(), "abc123").
			Once().
			Return(nil, entity.ErrQRCodeNotFound)

		url, err := suite.uc.Resolve(context.Background(), "abc123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrQRCodeNotFound)
		suite.Empty(url)
	})

	suite.Run("success", func() {
		suite.qrCodeRepoMock.
			On("RetrieveByID", context.Background(), "abc123").
			Once().
			Return(&entity.QRCode{ID: "abc123", OwnerID: "user-1", CurrentURL: "https://example.com"}, nil)

		url, err := suite.uc.Resolve(context.Background(), "abc123")

		suite.NoError(err)
		suite.Equal("https://example.com", url)
	})
}

func (suite *QRCodeUseCaseTestSuite) TestUpdateDestination() {
	dynamic := &entity.QRCode{
		ID:         "abc123",
		OwnerID:    "user-1",
		Kind:       entity.KindDynamic,
		CurrentURL: "https://example.com",
	}

	suite.Run("not found", func() {
		suite.qrCodeRepoMock.
			On("RetrieveByID", context.Background(), "abc123").
			Once().
			Return(nil, entity.ErrQRCodeNotFound)

		qrCode, err := suite.uc.UpdateDestination(context.Background(), "abc123", "https://example.org", "user-1")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrQRCodeNotFound)
		suite.Nil(qrCode)
	})

	suite.Run("forbidden", func() {
		suite.qrCodeRepoMock.
			On("RetrieveByID", context.Background(), "abc123").
			Once().
			Return(dynamic, nil)

		qrCode, err := suite.uc.UpdateDestination(context.Background(), "abc123", "https://example.org", "user-2")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrForbidden)
		suite.Nil(qrCode)
	})

	suite.Run("static qr code", func() {
		suite.qrCodeRepoMock.
			On("RetrieveByID", context.Background(), "abc123").
			Once().
			Return(&entity.QRCode{ID: "abc123", OwnerID: "user-1", Kind: entity.KindStatic}, nil)

		qrCode, err := suite.uc.UpdateDestination(context.Background(), "abc123", "https://example.org", "user-1")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrStaticQRCode)
		suite.Nil(qrCode)
	})

	suite.Run("unknown error", func() {
		suite.qrCodeRepoMock.
			On("RetrieveByID", context.Background(), "abc123").
			Once().
			Return(dynamic, nil)
		suite.qrCodeRepoMock.
			On("UpdateDestination", context.Background(), "abc123", "https://example.org", fixedNow).
			Once().
			Return(nil, suite.errUnknown)

		qrCode, err := suite.uc.UpdateDestination(context.Background(), "abc123", "https://example.org", "user-1")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(qrCode)
	})

	suite.Run("success", func() {
		updated := &entity.QRCode{
			ID:         "abc123",
			OwnerID:    "user-1",
			Kind:       entity.KindDynamic,
			CurrentURL: "https://example.org",
			History: []entity.HistoryEntry{
				{URL: "https://example.com", ChangedAt: fixedNow.Add(-time.Hour)},
				{URL: "https://example.org", ChangedAt: fixedNow},
			},
		}

		suite.qrCodeRepoMock.
			On("RetrieveByID", context.Background(), "abc123").
			Once().
			Return(dynamic, nil)
		suite.qrCodeRepoMock.
			On("UpdateDestination", context.Background(), "abc123", "https://example.org", fixedNow).
			Once().
			Return(updated, nil)

		qrCode, err := suite.uc.UpdateDestination(context.Background(), "abc123", "https://example.org", "user-1")

		suite.NoError(err)
		suite.Equal(updated, qrCode)
		suite.Zero(suite.uc.locks.Len())
	})
}

func (suite *QRCodeUseCaseTestSuite) TestGetQRCode() {
	suite.Run("forbidden", func() {
		suite.qrCodeRepoMock.
			On("RetrieveByID", context.Background(), "abc123").
			Once().
			Return(&entity.QRCode{ID: "abc123", OwnerID: "user-1"}, nil)

		qrCode, err := suite.uc.GetQRCode(context.Background(), "abc123", "user-2")

		suite.ErrorIs(err, entity.ErrForbidden)
		suite.Nil(qrCode)
	})

	suite.Run("success", func() {
		suite.qrCodeRepoMock.
			On("RetrieveByID", context.Background(), "abc123").
			Once().
			Return(&entity.QRCode{ID: "abc123", OwnerID: "user-1"}, nil)

		qrCode, err := suite.uc.GetQRCode(context.Background(), "abc123", "user-1")

		suite.NoError(err)
		suite.Equal("abc123", qrCode.ID)
	})
}

func (suite *QRCodeUseCaseTestSuite) TestListQRCodes() {
	suite.Run("unknown error", func() {
		suite.qrCodeRepoMock.
			On("RetrieveByOwner", context.Background(), "user-1").
			Once().
			Return(nil, suite.errUnknown)

		qrCodes, err := suite.uc.ListQRCodes(context.Background(), "user-1")

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(qrCodes)
	})

	suite.Run("success", func() {
		suite.qrCodeRepoMock.
			On("RetrieveByOwner", context.Background(), "user-1").
			Once().
			Return([]*entity.QRCode{{ID: "a"}, {ID: "b"}}, nil)

		qrCodes, err := suite.uc.ListQRCodes(context.Background(), "user-1")

		suite.NoError(err)
		suite.Len(qrCodes, 2)
	})
}

func TestQRCodeUseCase(t *testing.T) {
	suite.Run(t, new(QRCodeUseCaseTestSuite))
}

func TestValidID(t *testing.T) {
	for id, want := range map[string]bool{
		"abc123":           true,
		"V1StGXR8_Z5jdHi6": true,
		"":                 false,
		"../etc":           false,
		"a b":              false,
	} {
		if got := ValidID(id); got != want {
			t.Errorf("ValidID(%q) = %v, want %v", id, got, want)
		}
	}
}
