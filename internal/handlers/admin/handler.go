package admin

import (
	"net/http"
	"servana/infras/otel"
	"servana/internal/domains/admin/model/dto"
	"servana/internal/domains/admin/service"
	"servana/shared/constant"
	"servana/shared/validator"
	"servana/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Admin
	otel    otel.Otel
}

func New(service service.Admin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Get("/list/{status}", handler.ListProviders)
		routerGroup.Patch("/approve/{id}", handler.ApproveProvider)
		routerGroup.Get("/stats", handler.Stats)
	})
}

// ListProviders retrieves provider applications in a review state.
// @Summary List provider applications
// @Description Retrieve provider applications filtered by review status (pending, accepted or rejected).
// @Tags Admin
// @Accept json
// @Produce json
// @Param status path string true "Review status"
// @Success 200 {object} dto.ListProvidersResponse "List of providers"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/list/{status} [get]
// @Security BearerAuth
func (handler *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListProviders")
	defer scope.End()

	status := chi.URLParam(r, constant.RequestParamStatus)

	providers, err := handler.service.ListProviders(ctx, status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list providers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Providers retrieved successfully")

	response.WithJSON(w, http.StatusOK, providers)
}

// ApproveProvider settles a pending provider application.
// @Summary Approve or reject a provider
// @Description Accept or reject a provider application.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Provider ID"
// @Param request body dto.ApproveProviderRequest true "Approve Provider Request"
// @Success 200 {object} response.Message "Provider reviewed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/approve/{id} [patch]
// @Security BearerAuth
func (handler *Handler) ApproveProvider(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveProvider")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ApproveProviderRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ApproveProvider(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to review provider")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Provider reviewed successfully")

	response.WithMessage(w, http.StatusOK, "Provider reviewed successfully")
}

// Stats retrieves the admin dashboard summary.
// @Summary Get dashboard statistics
// @Description Retrieve provider counters, booking totals, service demand and total revenue.
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} dto.StatsResponse "Dashboard statistics"
// @Failure 500 {object} response.Error
// @Router /api/admin/stats [get]
// @Security BearerAuth
func (handler *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Stats")
	defer scope.End()

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard statistics")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dashboard statistics retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}
