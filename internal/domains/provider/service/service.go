package service

import (
	"context"
	"fmt"
	"servana/config"
	"servana/infras/otel"
	"servana/internal/domains/provider/model"
	"servana/internal/domains/provider/model/dto"
	"servana/internal/domains/provider/repository"
	"servana/shared"
	"servana/shared/cache"
	"servana/shared/constant"
	"servana/shared/failure"
	"servana/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetProvider = "provider:get"
)

type Provider interface {
	Get(ctx context.Context, id string) (dto.ProviderResponse, error)
	SetOnline(ctx context.Context, id string, req dto.UpdateOnlineRequest) error
}

type serviceImpl struct {
	repo  repository.Provider
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Provider, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Provider {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProviderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetProvider, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for provider")

		return res, nil
	}

	provider, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get provider")

		return res, fmt.Errorf("failed to get provider: %w", err)
	}

	if provider.ID == constant.Empty {
		return res, failure.NotFound("provider not found") // nolint:wrapcheck
	}

	res.FromModel(provider)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save provider to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) SetOnline(ctx context.Context, id string, req dto.UpdateOnlineRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetOnline")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if provider exists")

		return fmt.Errorf("failed to check if provider exists: %w", err)
	}

	if !exist {
		return failure.NotFound("provider not found") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldIsOnline:      *req.IsOnline,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update provider availability")

		return fmt.Errorf("failed to update provider availability: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProvider, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete provider from cache")
		}
	}()

	return nil
}
