package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"reservation/infras/otel"
	"reservation/internal/domains/booking/model/dto"
	"reservation/internal/domains/booking/service"
	cancellationDto "reservation/internal/domains/cancellation/model/dto"
	cancellationService "reservation/internal/domains/cancellation/service"
	"reservation/shared"
	"reservation/shared/constant"
	gDto "reservation/shared/dto"
	"reservation/shared/failure"
	"reservation/shared/interval"
	"reservation/shared/timezone"
	"reservation/shared/validator"
	"reservation/transport/http/response"
)

type Handler struct {
	service      service.Booking
	cancellation cancellationService.Cancellation
	otel         otel.Otel
}

func New(service service.Booking, cancellation cancellationService.Cancellation, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		cancellation: cancellation,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/cancellation", handler.CancelBooking)
	})

	router.Get("/rooms/{id}/availability", handler.CheckAvailability)
}

// CreateBooking admits a booking for the caller.
// @Summary Create a new booking
// @Description Admit a booking in the awaiting deposit state. Rejected when the interval is taken or held by another user.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.CreateBookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	userID, err := shared.UserIDFromContext(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateBookingRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("room_id", req.RoomID).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully by user " + userID)

	response.WithJSON(writer, http.StatusCreated, dto.CreateBookingResponse{ID: id})
}

// GetMyBookings lists the caller's bookings.
// @Summary Get my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	userID, err := shared.UserIDFromContext(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.service.ListByUser(ctx, userID, queryParams, r.URL.Query().Get(constant.RequestParamStatus))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// CancelBooking cancels a booking and quotes the refund.
// @Summary Cancel a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body cancellationDto.CancelBookingRequest false "Cancel Booking Request"
// @Success 201 {object} response.Data[cancellationDto.CancellationResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/cancellation [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	userID, err := shared.UserIDFromContext(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := cancellationDto.CancelBookingRequest{}
	if r.ContentLength != 0 {
		if err = validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	id := chi.URLParam(r, constant.RequestParamID)

	cancellation, err := handler.cancellation.Cancel(ctx, id, req.Reason, userID)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking cancelled by user " + userID)

	response.WithJSON(w, http.StatusCreated, cancellation)
}

// CheckAvailability reports whether a room interval is free. The answer is advisory.
// @Summary Check room availability
// @Tags Booking
// @Produce json
// @Param id path string true "Room ID"
// @Param check_in query string true "RFC3339 check-in"
// @Param check_out query string true "RFC3339 check-out"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamID)

	period, err := periodFromQuery(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	available, err := handler.service.CheckAvailability(ctx, roomID, period)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.AvailabilityResponse{
		RoomID:    roomID,
		CheckIn:   timezone.Format(period.Start, constant.DateFormat),
		CheckOut:  timezone.Format(period.End, constant.DateFormat),
		Available: available,
	})
}

func periodFromQuery(r *http.Request) (interval.Interval, error) {
	query := r.URL.Query()

	checkIn, err := timezone.Parse(constant.DateFormat, query.Get(constant.RequestParamCheckIn))
	if err != nil {
		return interval.Interval{}, failure.BadRequestFromString("check_in must be an RFC3339 timestamp")
	}

	checkOut, err := timezone.Parse(constant.DateFormat, query.Get(constant.RequestParamCheckOut))
	if err != nil {
		return interval.Interval{}, failure.BadRequestFromString("check_out must be an RFC3339 timestamp")
	}

	return interval.New(checkIn, checkOut) //nolint:wrapcheck
}
