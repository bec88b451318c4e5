package hold

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"reservation/infras/otel"
	"reservation/internal/domains/hold/model/dto"
	"reservation/internal/domains/hold/service"
	"reservation/shared"
	"reservation/shared/constant"
	"reservation/shared/validator"
	"reservation/transport/http/response"
)

type Handler struct {
	service service.Hold
	otel    otel.Otel
}

func New(service service.Hold, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/holds", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AcquireHold)
		routerGroup.Put("/{token}", handler.RenewHold)
		routerGroup.Delete("/{token}", handler.ReleaseHold)
	})
}

// AcquireHold places or refreshes the caller's hold on a room interval.
// @Summary Acquire a hold
// @Tags Hold
// @Accept json
// @Produce json
// @Param request body dto.AcquireHoldRequest true "Acquire Hold Request"
// @Success 201 {object} response.Data[dto.HoldResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/holds [post]
// @Security BearerAuth
func (handler *Handler) AcquireHold(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcquireHold")
	defer scope.End()

	userID, err := shared.UserIDFromContext(ctx)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.AcquireHoldRequest{}
	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	hold, err := handler.service.Acquire(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("room_id", req.RoomID).Msg("failed to acquire hold")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hold acquired by user " + userID)

	response.WithJSON(w, http.StatusCreated, hold)
}

// RenewHold extends an active hold.
// @Summary Renew a hold
// @Tags Hold
// @Accept json
// @Produce json
// @Param token path string true "Hold token"
// @Param request body dto.RenewHoldRequest false "Renew Hold Request"
// @Success 200 {object} response.Data[dto.RenewHoldResponse]
// @Failure 400 {object} response.Error
// @Router /v1/holds/{token} [put]
// @Security BearerAuth
func (handler *Handler) RenewHold(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RenewHold")
	defer scope.End()

	token := chi.URLParam(r, constant.RequestParamToken)

	req := dto.RenewHoldRequest{}
	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	renewed, err := handler.service.Renew(ctx, token, req.TTLMinutes)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to renew hold")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.RenewHoldResponse{Renewed: renewed})
}

// ReleaseHold deletes a hold. Releasing an unknown token succeeds.
// @Summary Release a hold
// @Tags Hold
// @Produce json
// @Param token path string true "Hold token"
// @Success 200 {object} response.Data[dto.ReleaseHoldResponse]
// @Router /v1/holds/{token} [delete]
// @Security BearerAuth
func (handler *Handler) ReleaseHold(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReleaseHold")
	defer scope.End()

	released, err := handler.service.Release(ctx, chi.URLParam(r, constant.RequestParamToken))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to release hold")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.ReleaseHoldResponse{Released: released})
}
