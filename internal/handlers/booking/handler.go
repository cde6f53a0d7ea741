package booking

import (
	"net/http"
	"servana/infras/otel"
	"servana/internal/domains/booking/model/dto"
	"servana/internal/domains/booking/service"
	"servana/shared/constant"
	"servana/shared/validator"
	"servana/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/assign-provider", handler.AssignProvider)

	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Get("/provider/{id}", handler.GetProviderBookings)
		routerGroup.Get("/user/{phone}", handler.GetCustomerBookings)
		routerGroup.Patch("/{id}/accept", handler.AcceptBooking)
		routerGroup.Patch("/{id}/decline", handler.DeclineBooking)
	})

	router.Patch("/update-booking-otp", handler.UpdateBookingOtp)
	router.Post("/verify-service-otp", handler.VerifyServiceOtp)
	router.Patch("/complete-service", handler.CompleteService)
}

// AssignProvider creates a booking against an available provider.
// @Summary Assign a provider
// @Description Match an available provider for the requested service and create the booking. Pass excludeId to request a different provider than a previous match.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.AssignProviderRequest true "Assign Provider Request"
// @Success 200 {object} dto.AssignProviderResponse "Provider assigned successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/assign-provider [post]
func (handler *Handler) AssignProvider(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignProvider")
	defer scope.End()

	req := dto.AssignProviderRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AssignProvider(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to assign provider")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Provider assigned successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// GetProviderBookings retrieves the bookings assigned to a provider.
// @Summary Get bookings for a provider
// @Description Retrieve the bookings assigned to a provider, newest first.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} dto.GetBookingsResponse "List of bookings"
// @Failure 500 {object} response.Error
// @Router /api/bookings/provider/{id} [get]
func (handler *Handler) GetProviderBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProviderBookings")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	bookings, err := handler.service.GetByProvider(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get provider bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Provider bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetCustomerBookings retrieves the bookings made under a customer phone number.
// @Summary Get bookings for a customer
// @Description Retrieve the bookings made under a customer phone number, newest first.
// @Tags Booking
// @Accept json
// @Produce json
// @Param phone path string true "Customer phone"
// @Success 200 {object} dto.GetBookingsResponse "List of bookings"
// @Failure 500 {object} response.Error
// @Router /api/bookings/user/{phone} [get]
func (handler *Handler) GetCustomerBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomerBookings")
	defer scope.End()

	phone := chi.URLParam(r, constant.RequestParamPhone)

	bookings, err := handler.service.GetByCustomerPhone(ctx, phone)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customer bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Customer bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// AcceptBooking marks a pending booking as accepted by the provider.
// @Summary Accept a booking
// @Description Accept a pending booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking accepted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/bookings/{id}/accept [patch]
func (handler *Handler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Accept(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to accept booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking accepted successfully")

	response.WithMessage(w, http.StatusOK, "Booking accepted successfully")
}

// DeclineBooking marks a pending booking as declined by the provider.
// @Summary Decline a booking
// @Description Decline a pending booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking declined successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/bookings/{id}/decline [patch]
func (handler *Handler) DeclineBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeclineBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Decline(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decline booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking declined successfully")

	response.WithMessage(w, http.StatusOK, "Booking declined successfully")
}

// UpdateBookingOtp issues the service start code for a booking.
// @Summary Issue a service start code
// @Description Store the service start code and amount on a booking. A blank code asks the server to generate one.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.UpdateBookingOtpRequest true "Update Booking Otp Request"
// @Success 200 {object} dto.UpdateBookingOtpResponse "Service otp issued successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/update-booking-otp [patch]
func (handler *Handler) UpdateBookingOtp(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingOtp")
	defer scope.End()

	req := dto.UpdateBookingOtpRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.IssueOtp(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to issue service otp")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service otp issued successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// VerifyServiceOtp starts the service when the submitted code matches.
// @Summary Verify the service start code
// @Description Verify the code shared by the customer and move the booking to in-progress.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.VerifyServiceOtpRequest true "Verify Service Otp Request"
// @Success 200 {object} dto.VerifyServiceOtpResponse "Service started successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/verify-service-otp [post]
func (handler *Handler) VerifyServiceOtp(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyServiceOtp")
	defer scope.End()

	req := dto.VerifyServiceOtpRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.VerifyOtp(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify service otp")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service started successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CompleteService closes out an in-progress booking.
// @Summary Complete a service
// @Description Mark an in-progress booking as completed.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CompleteServiceRequest true "Complete Service Request"
// @Success 200 {object} response.Message "Service completed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/complete-service [patch]
func (handler *Handler) CompleteService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteService")
	defer scope.End()

	req := dto.CompleteServiceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Complete(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete service")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service completed successfully")

	response.WithMessage(w, http.StatusOK, "Service completed successfully")
}
