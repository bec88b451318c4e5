// Package refund consumes refund status reports from the payment processor.
package refund

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"reservation/config"
	"reservation/infras/kafka"
	"reservation/infras/otel"
	"reservation/internal/domains/cancellation/model/dto"
	"reservation/internal/domains/cancellation/service"
	"reservation/shared/constant"
	"reservation/shared/failure"
	"reservation/shared/validator"
)

type Consumer struct {
	kafka   kafka.Client
	service service.Cancellation
	cfg     *config.Config
	otel    otel.Otel
}

func New(client kafka.Client, service service.Cancellation, cfg *config.Config, otel otel.Otel) *Consumer {
	return &Consumer{
		kafka:   client,
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

// Run consumes the refund status topic until ctx is done.
func (c *Consumer) Run(ctx context.Context) {
	topic := c.cfg.Kafka.Topics.RefundStatus

	log.Info().Str("topic", topic).Msg("Starting refund status consumer.")

	c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, topic, c.Handle)
}

// Handle applies one status report. Malformed reports are dropped; anything
// that may succeed later is returned so the client retries it.
func (c *Consumer) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".refund.Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := kafka.Decode[dto.RefundStatusEvent](message)
	if err != nil {
		log.Warn().Err(err).Int64("offset", message.Offset).Msg("dropping undecodable refund status")

		return nil
	}

	if err = validator.ValidateStruct(&event); err != nil {
		log.Warn().Err(err).Int64("offset", message.Offset).Msg("dropping invalid refund status")

		return nil
	}

	scope.SetAttribute("cancellation.id", event.CancellationID)

	err = c.service.UpdateStatus(ctx, event.CancellationID, event.Status, event.Note)
	if err != nil && failure.GetCode(err) < http.StatusInternalServerError {
		log.Warn().Err(err).Str("cancellation_id", event.CancellationID).Str("status", event.Status).
			Msg("dropping rejected refund status")

		return nil
	}

	return err //nolint:wrapcheck
}
