package provider

import (
	"net/http"
	"servana/infras/otel"
	"servana/internal/domains/provider/model/dto"
	"servana/internal/domains/provider/service"
	"servana/shared/constant"
	"servana/shared/validator"
	"servana/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Provider
	otel    otel.Otel
}

func New(service service.Provider, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/providers", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetProviderByID)
		routerGroup.Patch("/{id}/online", handler.SetOnline)
	})
}

// GetProviderByID retrieves a provider profile by its ID.
// @Summary Get a provider by ID
// @Description Retrieve a provider profile by its unique identifier.
// @Tags Provider
// @Accept json
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} dto.ProviderResponse "Provider details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/providers/{id} [get]
func (handler *Handler) GetProviderByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProviderByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	provider, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get provider by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Provider retrieved successfully")

	response.WithJSON(w, http.StatusOK, provider)
}

// SetOnline toggles a provider's availability for matching.
// @Summary Toggle provider availability
// @Description Set whether the provider is online and eligible for new bookings.
// @Tags Provider
// @Accept json
// @Produce json
// @Param id path string true "Provider ID"
// @Param request body dto.UpdateOnlineRequest true "Update Online Request"
// @Success 200 {object} response.Message "Availability updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/providers/{id}/online [patch]
func (handler *Handler) SetOnline(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetOnline")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateOnlineRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetOnline(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update provider availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability updated successfully")

	response.WithMessage(w, http.StatusOK, "Availability updated successfully")
}
