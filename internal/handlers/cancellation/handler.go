package cancellation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"reservation/infras/otel"
	"reservation/internal/domains/cancellation/model/dto"
	"reservation/internal/domains/cancellation/service"
	"reservation/shared/constant"
	"reservation/shared/validator"
	"reservation/transport/http/response"
)

type Handler struct {
	service service.Cancellation
	otel    otel.Otel
}

func New(service service.Cancellation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cancellations", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetCancellationByID)
		routerGroup.Patch("/{id}", handler.UpdateCancellationStatus)
	})
}

// GetCancellationByID returns a cancellation and its refund progress.
// @Summary Get a cancellation by ID
// @Tags Cancellation
// @Produce json
// @Param id path string true "Cancellation ID"
// @Success 200 {object} response.Data[dto.CancellationResponse]
// @Failure 404 {object} response.Error
// @Router /v1/cancellations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCancellationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCancellationByID")
	defer scope.End()

	cancellation, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cancellation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cancellation)
}

// UpdateCancellationStatus records a refund status reported by the payment processor.
// @Summary Update refund status
// @Description Callback for the payment processor. Unknown ids and repeated reports are accepted.
// @Tags Cancellation
// @Accept json
// @Produce json
// @Param id path string true "Cancellation ID"
// @Param request body dto.UpdateCancellationStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/cancellations/{id} [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdateCancellationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCancellationStatus")
	defer scope.End()

	req := dto.UpdateCancellationStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.UpdateStatus(ctx, id, req.Status, req.Note); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("cancellation_id", id).Msg("failed to update cancellation status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Cancellation status updated")
}
