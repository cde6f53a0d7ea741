package service_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"servana/config"
	kafkaMocks "servana/infras/kafka/mocks"
	"servana/infras/otel/mocks"
	bookingMocks "servana/internal/domains/booking/mocks"
	"servana/internal/domains/booking/model"
	"servana/internal/domains/booking/model/dto"
	"servana/internal/domains/booking/service"
	providerMocks "servana/internal/domains/provider/mocks"
	providerModel "servana/internal/domains/provider/model"
	cacheMocks "servana/shared/cache/mocks"
	"servana/shared/constant"
	gDto "servana/shared/dto"
)

type bookingMockSet struct {
	repo         *bookingMocks.MockBooking
	providerRepo *providerMocks.MockProvider
	cache        *cacheMocks.MockRedisCache
	kafka        *kafkaMocks.MockClient
}

func newBookingService(t *testing.T) (service.Booking, bookingMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)

	set := bookingMockSet{
		repo:         bookingMocks.NewMockBooking(ctrl),
		providerRepo: providerMocks.NewMockProvider(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		kafka:        kafkaMocks.NewMockClient(ctrl),
	}

	// Cache and event publishing run on background goroutines, so they are
	// not pinned to exact call counts here.
	set.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	set.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	set.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	set.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	set.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}

	svc := service.New(set.repo, set.providerRepo, cfg, set.cache, mocks.NewOtel(), set.kafka)

	return svc, set
}

func newMatchingTx(t *testing.T, commit bool) *sqlx.Tx {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)

	dbMock.ExpectBegin()

	if commit {
		dbMock.ExpectCommit()
	} else {
		dbMock.ExpectRollback()
	}

	sqltx, err := sqlx.NewDb(db, "sqlmock").Beginx()
	require.NoError(t, err)

	return sqltx
}

func TestBookingService_AssignProvider(t *testing.T) {
	matchedProvider := providerModel.Provider{
		ID:          "provider-id-1",
		FullName:    "Ravi Kumar",
		Phone:       "9876500000",
		ServiceType: "Maid Easy",
		Status:      constant.ProviderStatusAccepted,
		IsOnline:    true,
	}

	t.Run("assigns an available provider and creates the booking", func(t *testing.T) {
		svc, set := newBookingService(t)
		sqltx := newMatchingTx(t, true)

		var inserted model.Booking

		set.repo.EXPECT().BeginTx(gomock.Any()).Return(sqltx, nil)
		set.providerRepo.EXPECT().
			MatchAvailableTx(gomock.Any(), sqltx, "Maid Easy", "").
			Return(matchedProvider, nil)
		set.repo.EXPECT().
			InsertTx(gomock.Any(), sqltx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				inserted = booking

				return nil
			})

		res, err := svc.AssignProvider(context.Background(), dto.AssignProviderRequest{
			ServiceType:   "Maid Easy",
			CustomerName:  "Asha Rao",
			CustomerPhone: "9876543210",
			Address:       "12 MG Road",
			PlanName:      "Weekly",
			DateString:    "2026-09-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, inserted.ID, res.BookingID)
		assert.Equal(t, matchedProvider.ID, res.Provider.ID)
		assert.Equal(t, constant.BookingStatusPending, inserted.Status)
		assert.Equal(t, matchedProvider.ID, inserted.ProviderID.String)
		assert.Equal(t, "0", inserted.Amount)
	})

	t.Run("keeps the requested amount as text", func(t *testing.T) {
		svc, set := newBookingService(t)
		sqltx := newMatchingTx(t, true)

		var inserted model.Booking

		set.repo.EXPECT().BeginTx(gomock.Any()).Return(sqltx, nil)
		set.providerRepo.EXPECT().
			MatchAvailableTx(gomock.Any(), sqltx, "Deep Clean", "").
			Return(matchedProvider, nil)
		set.repo.EXPECT().
			InsertTx(gomock.Any(), sqltx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				inserted = booking

				return nil
			})

		_, err := svc.AssignProvider(context.Background(), dto.AssignProviderRequest{
			ServiceType:   "Deep Clean",
			CustomerName:  "Asha Rao",
			CustomerPhone: "9876543210",
			Address:       "12 MG Road",
			Amount:        " 9000 ",
		})

		assert.NoError(t, err)
		assert.Equal(t, "9000", inserted.Amount)
	})

	t.Run("no provider available on first attempt", func(t *testing.T) {
		svc, set := newBookingService(t)
		sqltx := newMatchingTx(t, false)

		set.repo.EXPECT().BeginTx(gomock.Any()).Return(sqltx, nil)
		set.providerRepo.EXPECT().
			MatchAvailableTx(gomock.Any(), sqltx, "Elder Care", "").
			Return(providerModel.Provider{}, nil)

		_, err := svc.AssignProvider(context.Background(), dto.AssignProviderRequest{
			ServiceType:   "Elder Care",
			CustomerName:  "Asha Rao",
			CustomerPhone: "9876543210",
			Address:       "12 MG Road",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "No available providers.")
	})

	t.Run("declined provider is excluded from the retry", func(t *testing.T) {
		svc, set := newBookingService(t)
		sqltx := newMatchingTx(t, false)

		set.repo.EXPECT().BeginTx(gomock.Any()).Return(sqltx, nil)
		set.providerRepo.EXPECT().
			MatchAvailableTx(gomock.Any(), sqltx, "Maid Easy", "provider-id-1").
			Return(providerModel.Provider{}, nil)

		_, err := svc.AssignProvider(context.Background(), dto.AssignProviderRequest{
			ServiceType:   "Maid Easy",
			CustomerName:  "Asha Rao",
			CustomerPhone: "9876543210",
			Address:       "12 MG Road",
			ExcludeID:     "provider-id-1",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "No other professionals are available")
	})

	t.Run("matching error rolls the transaction back", func(t *testing.T) {
		svc, set := newBookingService(t)
		sqltx := newMatchingTx(t, false)

		set.repo.EXPECT().BeginTx(gomock.Any()).Return(sqltx, nil)
		set.providerRepo.EXPECT().
			MatchAvailableTx(gomock.Any(), sqltx, "Maid Easy", "").
			Return(providerModel.Provider{}, errors.New("db error"))

		_, err := svc.AssignProvider(context.Background(), dto.AssignProviderRequest{
			ServiceType:   "Maid Easy",
			CustomerName:  "Asha Rao",
			CustomerPhone: "9876543210",
			Address:       "12 MG Road",
		})

		assert.Error(t, err)
	})
}

func TestBookingService_IssueOtp(t *testing.T) {
	pendingBooking := model.Booking{
		ID:          "booking-id-1",
		ServiceType: "Maid Easy",
		Amount:      "500",
		Status:      constant.BookingStatusAccepted,
	}

	t.Run("stores the provided code trimmed", func(t *testing.T) {
		svc, set := newBookingService(t)

		var updated map[string]any

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking, nil)
		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				updated = fields

				return nil
			})

		res, err := svc.IssueOtp(context.Background(), dto.UpdateBookingOtpRequest{
			BookingID:  "booking-id-1",
			ServiceOtp: " 4321 ",
			Amount:     "750",
		})

		assert.NoError(t, err)
		assert.Equal(t, "4321", res.ServiceOtp)
		assert.Equal(t, "750", res.Amount)
		assert.Equal(t, "4321", updated[model.FieldServiceOtp])
		assert.Equal(t, "750", updated[model.FieldAmount])
	})

	t.Run("generates a numeric code when none is provided", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking, nil)
		set.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.IssueOtp(context.Background(), dto.UpdateBookingOtpRequest{
			BookingID: "booking-id-1",
		})

		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\d{4}$`), res.ServiceOtp)
		assert.Equal(t, "500", res.Amount)
	})

	t.Run("reissuing replaces the stored code", func(t *testing.T) {
		svc, set := newBookingService(t)

		withOtp := pendingBooking
		withOtp.ServiceOtp = sql.NullString{String: "1111", Valid: true}

		var updated map[string]any

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(withOtp, nil)
		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				updated = fields

				return nil
			})

		_, err := svc.IssueOtp(context.Background(), dto.UpdateBookingOtpRequest{
			BookingID:  "booking-id-1",
			ServiceOtp: "2222",
		})

		assert.NoError(t, err)
		assert.Equal(t, "2222", updated[model.FieldServiceOtp])
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := svc.IssueOtp(context.Background(), dto.UpdateBookingOtpRequest{
			BookingID: "missing-id",
		})

		assert.Error(t, err)
	})
}

func TestBookingService_VerifyOtp(t *testing.T) {
	acceptedBooking := model.Booking{
		ID:          "booking-id-1",
		ServiceType: "Maid Easy",
		Amount:      "9000",
		Status:      constant.BookingStatusAccepted,
		ServiceOtp:  sql.NullString{String: "4321", Valid: true},
	}

	t.Run("matching code starts the service", func(t *testing.T) {
		svc, set := newBookingService(t)

		var updated map[string]any

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(acceptedBooking, nil)
		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				updated = fields

				return nil
			})

		res, err := svc.VerifyOtp(context.Background(), dto.VerifyServiceOtpRequest{
			BookingID: "booking-id-1",
			Otp:       "4321",
		})

		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusInProgress, updated[model.FieldStatus])
		assert.Equal(t, "9000", res.Amount)
		assert.Equal(t, constant.BookingStatusInProgress, res.Status)
	})

	t.Run("comparison ignores surrounding whitespace", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(acceptedBooking, nil)
		set.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.VerifyOtp(context.Background(), dto.VerifyServiceOtpRequest{
			BookingID: "booking-id-1",
			Otp:       " 4321 ",
		})

		assert.NoError(t, err)
	})

	t.Run("verifying again after the service started succeeds without an update", func(t *testing.T) {
		svc, set := newBookingService(t)

		started := acceptedBooking
		started.Status = constant.BookingStatusInProgress

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(started, nil)

		res, err := svc.VerifyOtp(context.Background(), dto.VerifyServiceOtpRequest{
			BookingID: "booking-id-1",
			Otp:       "4321",
		})

		assert.NoError(t, err)
		assert.Equal(t, "9000", res.Amount)
		assert.Equal(t, constant.BookingStatusInProgress, res.Status)
	})

	t.Run("wrong code", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(acceptedBooking, nil)

		_, err := svc.VerifyOtp(context.Background(), dto.VerifyServiceOtpRequest{
			BookingID: "booking-id-1",
			Otp:       "9999",
		})

		assert.Error(t, err)
	})

	t.Run("no code issued yet", func(t *testing.T) {
		svc, set := newBookingService(t)

		withoutOtp := acceptedBooking
		withoutOtp.ServiceOtp = sql.NullString{}

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(withoutOtp, nil)

		_, err := svc.VerifyOtp(context.Background(), dto.VerifyServiceOtpRequest{
			BookingID: "booking-id-1",
			Otp:       "4321",
		})

		assert.Error(t, err)
	})
}

func TestBookingService_Complete(t *testing.T) {
	startedBooking := model.Booking{
		ID:          "booking-id-1",
		ServiceType: "Maid Easy",
		Status:      constant.BookingStatusInProgress,
	}

	t.Run("completes a started service", func(t *testing.T) {
		svc, set := newBookingService(t)

		var updated map[string]any

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(startedBooking, nil)
		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				updated = fields

				return nil
			})

		err := svc.Complete(context.Background(), dto.CompleteServiceRequest{
			BookingID: "booking-id-1",
			Duration:  " 2h 30m ",
		})

		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusCompleted, updated[model.FieldStatus])
		assert.Equal(t, "2h 30m", updated[model.FieldWorkDuration])
		assert.NotNil(t, updated[model.FieldCompletedAt])
	})

	t.Run("completing twice is a no-op", func(t *testing.T) {
		svc, set := newBookingService(t)

		completed := startedBooking
		completed.Status = constant.BookingStatusCompleted

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)

		err := svc.Complete(context.Background(), dto.CompleteServiceRequest{BookingID: "booking-id-1"})

		assert.NoError(t, err)
	})

	t.Run("cannot complete before the service starts", func(t *testing.T) {
		svc, set := newBookingService(t)

		notStarted := startedBooking
		notStarted.Status = constant.BookingStatusAccepted

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(notStarted, nil)

		err := svc.Complete(context.Background(), dto.CompleteServiceRequest{BookingID: "booking-id-1"})

		assert.Error(t, err)
	})
}

func TestBookingService_CompleteInvalidatesStats(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := bookingMocks.NewMockBooking(ctrl)
	providerRepo := providerMocks.NewMockProvider(ctrl)
	cacheMock := cacheMocks.NewMockRedisCache(ctrl)
	kafkaMock := kafkaMocks.NewMockClient(ctrl)

	statsDropped := make(chan struct{}, 1)

	cacheMock.EXPECT().
		Delete(gomock.Any(), constant.CacheKeyAdminStats).
		DoAndReturn(func(context.Context, string) error {
			statsDropped <- struct{}{}

			return nil
		})
	cacheMock.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cacheMock.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	kafkaMock.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(repo, providerRepo, &config.Config{}, cacheMock, mocks.NewOtel(), kafkaMock)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{
		ID:          "booking-id-1",
		ServiceType: "Maid Easy",
		Status:      constant.BookingStatusInProgress,
	}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	err := svc.Complete(context.Background(), dto.CompleteServiceRequest{BookingID: "booking-id-1"})
	require.NoError(t, err)

	// The dashboard aggregate counts bookings and sums their amounts, so a
	// completed booking must drop it alongside the booking caches.
	select {
	case <-statsDropped:
	case <-time.After(time.Second):
		t.Fatal("expected the admin stats cache entry to be dropped")
	}
}

func TestBookingService_AcceptDecline(t *testing.T) {
	pendingBooking := model.Booking{
		ID:          "booking-id-1",
		ServiceType: "Maid Easy",
		Status:      constant.BookingStatusPending,
	}

	t.Run("provider accepts a pending booking", func(t *testing.T) {
		svc, set := newBookingService(t)

		var updated map[string]any

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking, nil)
		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				updated = fields

				return nil
			})

		err := svc.Accept(context.Background(), "booking-id-1")

		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusAccepted, updated[model.FieldStatus])
	})

	t.Run("provider declines a pending booking", func(t *testing.T) {
		svc, set := newBookingService(t)

		var updated map[string]any

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking, nil)
		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				updated = fields

				return nil
			})

		err := svc.Decline(context.Background(), "booking-id-1")

		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusDeclined, updated[model.FieldStatus])
	})

	t.Run("cannot respond to a booking already in progress", func(t *testing.T) {
		svc, set := newBookingService(t)

		started := pendingBooking
		started.Status = constant.BookingStatusInProgress

		set.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(started, nil)

		err := svc.Accept(context.Background(), "booking-id-1")

		assert.Error(t, err)
	})
}

func TestBookingService_GetByProvider(t *testing.T) {
	svc, set := newBookingService(t)

	models := []model.Booking{
		{ID: "booking-2", ServiceType: "Maid Easy", Status: constant.BookingStatusPending},
		{ID: "booking-1", ServiceType: "Maid Easy", Status: constant.BookingStatusCompleted},
	}

	set.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return models, nil
		})

	res, err := svc.GetByProvider(context.Background(), "provider-id-1")

	assert.NoError(t, err)
	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, "booking-2", res.Bookings[0].ID)
	assert.Equal(t, 2, res.TotalData)
}
