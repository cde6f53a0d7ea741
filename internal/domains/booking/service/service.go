package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/rs/zerolog/log"

	"servana/config"
	"servana/infras/kafka"
	"servana/infras/otel"
	"servana/internal/domains/booking/model"
	"servana/internal/domains/booking/model/dto"
	"servana/internal/domains/booking/repository"
	providerRepo "servana/internal/domains/provider/repository"
	"servana/shared"
	"servana/shared/cache"
	"servana/shared/constant"
	gDto "servana/shared/dto"
	"servana/shared/failure"
	"servana/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	AssignProvider(ctx context.Context, req dto.AssignProviderRequest) (dto.AssignProviderResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByProvider(ctx context.Context, providerID string) (dto.GetBookingsResponse, error)
	GetByCustomerPhone(ctx context.Context, phone string) (dto.GetBookingsResponse, error)
	Accept(ctx context.Context, id string) error
	Decline(ctx context.Context, id string) error
	IssueOtp(ctx context.Context, req dto.UpdateBookingOtpRequest) (dto.UpdateBookingOtpResponse, error)
	VerifyOtp(ctx context.Context, req dto.VerifyServiceOtpRequest) (dto.VerifyServiceOtpResponse, error)
	Complete(ctx context.Context, req dto.CompleteServiceRequest) error
}

type serviceImpl struct {
	repo         repository.Booking
	providerRepo providerRepo.Provider
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	kafka        kafka.Client
}

func New(repo repository.Booking, providerRepo providerRepo.Provider, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:         repo,
		providerRepo: providerRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		kafka:        kafka,
	}
}

// generateServiceOtp returns a fresh numeric start code, zero padded to the
// fixed length.
func generateServiceOtp() (string, error) {
	limit := big.NewInt(1)
	for range constant.ServiceOtpLength {
		limit.Mul(limit, big.NewInt(10))
	}

	value, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate service otp: %w", err)
	}

	return fmt.Sprintf("%0*d", constant.ServiceOtpLength, value), nil
}

func (s *serviceImpl) AssignProvider(ctx context.Context, req dto.AssignProviderRequest) (res dto.AssignProviderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignProvider")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextGuest
	}

	sqltx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin matching transaction")

		return res, fmt.Errorf("failed to begin matching transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := sqltx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to roll back matching transaction")
			}
		}
	}()

	provider, err := s.providerRepo.MatchAvailableTx(ctx, sqltx, req.ServiceType, req.ExcludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to match provider")

		return res, fmt.Errorf("failed to match provider: %w", err)
	}

	if provider.ID == constant.Empty {
		if req.ExcludeID == constant.Empty {
			return res, failure.NotFound("No available providers.") // nolint:wrapcheck
		}

		return res, failure.NotFound("No other professionals are available for this service right now.") // nolint:wrapcheck
	}

	booking := req.ToModel(provider.ID, user)

	if err = s.repo.InsertTx(ctx, sqltx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	if err = sqltx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit matching transaction")

		return res, fmt.Errorf("failed to commit matching transaction: %w", err)
	}

	s.publishEvent(ctx, constant.KafkaEventBookingCreated, booking.ID, provider.ID, booking.ServiceType, booking.Status)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		s.invalidateStats(c)
	}()

	res.BookingID = booking.ID
	res.Provider.FromModel(provider)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByProvider(ctx context.Context, providerID string) (dto.GetBookingsResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByProvider")
	defer scope.End()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldProviderID,
				Operator: gDto.FilterOperatorEq,
				Value:    providerID,
				Table:    model.TableName,
			},
		},
	}

	return s.getAll(ctx, filter)
}

func (s *serviceImpl) GetByCustomerPhone(ctx context.Context, phone string) (dto.GetBookingsResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByCustomerPhone")
	defer scope.End()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCustomerPhone,
				Operator: gDto.FilterOperatorEq,
				Value:    phone,
				Table:    model.TableName,
			},
		},
	}

	return s.getAll(ctx, filter)
}

// getAll returns bookings newest first.
func (s *serviceImpl) getAll(ctx context.Context, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Accept(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Accept")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != constant.BookingStatusPending {
		return failure.BadRequestFromString("booking is not awaiting a response") // nolint:wrapcheck
	}

	return s.updateStatus(ctx, booking, constant.BookingStatusAccepted, constant.Empty)
}

func (s *serviceImpl) Decline(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Decline")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != constant.BookingStatusPending {
		return failure.BadRequestFromString("booking is not awaiting a response") // nolint:wrapcheck
	}

	return s.updateStatus(ctx, booking, constant.BookingStatusDeclined, constant.Empty)
}

// IssueOtp stores the service start code and amount on the booking. A blank
// code means the server generates one; either way the previous code stops
// working.
func (s *serviceImpl) IssueOtp(ctx context.Context, req dto.UpdateBookingOtpRequest) (res dto.UpdateBookingOtpResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IssueOtp")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	serviceOtp := strings.TrimSpace(req.ServiceOtp)
	if serviceOtp == constant.Empty {
		serviceOtp, err = generateServiceOtp()
		if err != nil {
			log.Error().Err(err).Msg("failed to generate service otp")

			return res, err
		}
	}

	amount := strings.TrimSpace(req.Amount)
	if amount == constant.Empty {
		amount = booking.Amount
	}

	if amount == constant.Empty {
		amount = "0"
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := map[string]any{
		model.FieldServiceOtp:    serviceOtp,
		model.FieldAmount:        amount,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	filter := shared.FilterByID(req.BookingID, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking otp")

		return res, fmt.Errorf("failed to update booking otp: %w", err)
	}

	s.invalidateBooking(ctx, req.BookingID)

	res.BookingID = req.BookingID
	res.ServiceOtp = serviceOtp
	res.Amount = amount

	return res, nil
}

// VerifyOtp starts the service when the code matches. Verifying an already
// started booking with the same code succeeds again. The amount returned is
// the server persisted one; client amounts are never trusted at this step.
func (s *serviceImpl) VerifyOtp(ctx context.Context, req dto.VerifyServiceOtpRequest) (res dto.VerifyServiceOtpResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyOtp")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	storedOtp := strings.TrimSpace(booking.ServiceOtp.String)
	if storedOtp == constant.Empty {
		return res, failure.BadRequestFromString("no service otp issued for this booking") // nolint:wrapcheck
	}

	if storedOtp != strings.TrimSpace(req.Otp) {
		return res, failure.BadRequestFromString("Invalid OTP") // nolint:wrapcheck
	}

	res.BookingID = booking.ID
	res.Amount = booking.Amount
	res.Status = constant.BookingStatusInProgress

	if booking.Status == constant.BookingStatusInProgress || booking.Status == constant.BookingStatusCompleted {
		res.Status = booking.Status

		return res, nil
	}

	if err = s.updateStatus(ctx, booking, constant.BookingStatusInProgress, constant.KafkaEventBookingStarted); err != nil {
		return res, err
	}

	return res, nil
}

func (s *serviceImpl) Complete(ctx context.Context, req dto.CompleteServiceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, req.BookingID)
	if err != nil {
		return err
	}

	if booking.Status == constant.BookingStatusCompleted {
		return nil
	}

	if booking.Status != constant.BookingStatusInProgress {
		return failure.BadRequestFromString("service has not been started") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := map[string]any{
		model.FieldStatus:        constant.BookingStatusCompleted,
		model.FieldWorkDuration:  strings.TrimSpace(req.Duration),
		model.FieldCompletedAt:   timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to complete booking")

		return fmt.Errorf("failed to complete booking: %w", err)
	}

	s.publishEvent(ctx, constant.KafkaEventBookingCompleted, booking.ID, booking.ProviderID.String, booking.ServiceType, constant.BookingStatusCompleted)
	s.invalidateBooking(ctx, booking.ID)

	return nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) updateStatus(ctx context.Context, booking model.Booking, status, eventKey string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if eventKey != constant.Empty {
		s.publishEvent(ctx, eventKey, booking.ID, booking.ProviderID.String, booking.ServiceType, status)
	}

	s.invalidateBooking(ctx, booking.ID)

	return nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventKey, bookingID, providerID, serviceType, status string) {
	event := dto.BookingEvent{
		BookingID:   bookingID,
		ProviderID:  providerID,
		ServiceType: serviceType,
		Status:      status,
		OccurredAt:  timezone.Now().Format(constant.DateFormat),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: eventKey, Value: event}
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, message); err != nil {
			log.Error().Err(err).Str("event", eventKey).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		s.invalidateStats(c)
	}()
}

// invalidateStats drops the admin dashboard aggregate, which counts bookings
// and sums their amounts.
func (s *serviceImpl) invalidateStats(ctx context.Context) {
	if err := s.cache.Delete(ctx, constant.CacheKeyAdminStats); err != nil {
		log.Error().Err(err).Msg("failed to delete stats from cache")
	}
}
