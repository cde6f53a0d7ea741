package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"servana/config"
	"servana/infras/otel"
	"servana/internal/domains/admin/model/dto"
	bookingModel "servana/internal/domains/booking/model"
	bookingRepo "servana/internal/domains/booking/repository"
	providerModel "servana/internal/domains/provider/model"
	providerRepo "servana/internal/domains/provider/repository"
	"servana/shared"
	"servana/shared/cache"
	"servana/shared/constant"
	gDto "servana/shared/dto"
	"servana/shared/failure"
	"servana/shared/timezone"
)

const (
	cacheGetStats        = constant.CacheKeyAdminStats
	cacheGetAllProviders = "admin:providers"
)

type Admin interface {
	ListProviders(ctx context.Context, status string) (dto.ListProvidersResponse, error)
	ApproveProvider(ctx context.Context, id string, req dto.ApproveProviderRequest) error
	Stats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	providerRepo providerRepo.Provider
	bookingRepo  bookingRepo.Booking
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(providerRepo providerRepo.Provider, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Admin {
	return &serviceImpl{
		providerRepo: providerRepo,
		bookingRepo:  bookingRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func statusFilter(status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    providerModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    status,
				Table:    providerModel.TableName,
			},
		},
	}
}

// ListProviders returns provider applications in the given review state. The
// status segment is case insensitive.
func (s *serviceImpl) ListProviders(ctx context.Context, status string) (res dto.ListProvidersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListProviders")
	defer scope.End()
	defer scope.TraceIfError(err)

	status = strings.ToLower(strings.TrimSpace(status))

	switch status {
	case constant.ProviderStatusPending, constant.ProviderStatusAccepted, constant.ProviderStatusRejected:
	default:
		return res, failure.BadRequestFromString("invalid provider status") // nolint:wrapcheck
	}

	filter := statusFilter(status)
	params := gDto.QueryParams{
		SortBy:  providerModel.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProviders, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for providers")

		return res, nil
	}

	providers, err := s.providerRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get providers")

		return res, fmt.Errorf("failed to get providers: %w", err)
	}

	res.FromModels(providers)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save providers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ApproveProvider(ctx context.Context, id string, req dto.ApproveProviderRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApproveProvider")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, providerModel.FieldID, providerModel.TableName)

	exist, err := s.providerRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if provider exists")

		return fmt.Errorf("failed to check if provider exists: %w", err)
	}

	if !exist {
		return failure.NotFound("provider not found") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		providerModel.FieldStatus: req.Status,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  user,
	}

	if err = s.providerRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update provider status")

		return fmt.Errorf("failed to update provider status: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllProviders)

		if err := s.cache.Delete(c, cacheGetStats); err != nil {
			log.Error().Err(err).Msg("failed to delete stats from cache")
		}
	}()

	return nil
}

// Stats aggregates the dashboard counters. Revenue sums booking amounts as
// numbers; values that fail to parse contribute zero, and the total is
// rounded.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetStats, &res)
	if err == nil {
		log.Info().Msg("cache hit for admin stats")

		return res, nil
	}

	accepted, err := s.providerRepo.Count(ctx, statusFilter(constant.ProviderStatusAccepted))
	if err != nil {
		log.Error().Err(err).Msg("failed to count accepted providers")

		return res, fmt.Errorf("failed to count accepted providers: %w", err)
	}

	pending, err := s.providerRepo.Count(ctx, statusFilter(constant.ProviderStatusPending))
	if err != nil {
		log.Error().Err(err).Msg("failed to count pending providers")

		return res, fmt.Errorf("failed to count pending providers: %w", err)
	}

	totalBookings, err := s.bookingRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	demand, err := s.bookingRepo.ServiceDemand(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service demand")

		return res, fmt.Errorf("failed to get service demand: %w", err)
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{}, bookingModel.FieldAmount)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking amounts")

		return res, fmt.Errorf("failed to get booking amounts: %w", err)
	}

	revenue := 0.0

	for _, booking := range bookings {
		amount, parseErr := strconv.ParseFloat(strings.TrimSpace(booking.Amount), 64)
		if parseErr != nil {
			continue
		}

		revenue += amount
	}

	res.Accepted = accepted
	res.Pending = pending
	res.TotalBookings = totalBookings
	res.ServiceDemand = demand
	res.TotalRevenue = math.Round(revenue)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetStats, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save stats to cache")
		}
	}()

	return res, nil
}
