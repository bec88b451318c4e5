package refund_test

import (
	"context"
	"errors"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"reservation/config"
	kafkaMocks "reservation/infras/kafka/mocks"
	otelMocks "reservation/infras/otel/mocks"
	"reservation/internal/domains/cancellation/service/mocks"
	"reservation/internal/events/refund"
	"reservation/shared/failure"
)

func newConsumer(t *testing.T) (*refund.Consumer, *mocks.MockCancellation, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockCancellation(ctrl)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "reservation"
	cfg.Kafka.Topics.RefundStatus = "payment.refund.status"

	return refund.New(client, service, cfg, otelMocks.NewOtel()), service, client
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		mock    func(service *mocks.MockCancellation)
		wantErr bool
	}{
		{
			name:    "applies the reported status",
			payload: `{"cancellation_id":"c1","status":"refunded","note":"settled"}`,
			mock: func(service *mocks.MockCancellation) {
				service.EXPECT().UpdateStatus(gomock.Any(), "c1", "refunded", "settled").Return(nil)
			},
		},
		{
			name:    "drops undecodable payloads",
			payload: `not json`,
			mock:    func(*mocks.MockCancellation) {},
		},
		{
			name:    "drops reports without an id",
			payload: `{"status":"refunded"}`,
			mock:    func(*mocks.MockCancellation) {},
		},
		{
			name:    "drops unknown statuses",
			payload: `{"cancellation_id":"c1","status":"lost"}`,
			mock: func(service *mocks.MockCancellation) {
				service.EXPECT().UpdateStatus(gomock.Any(), "c1", "lost", "").Return(failure.InvalidStatus)
			},
		},
		{
			name:    "returns store failures for retry",
			payload: `{"cancellation_id":"c1","status":"failed"}`,
			mock: func(service *mocks.MockCancellation) {
				service.EXPECT().UpdateStatus(gomock.Any(), "c1", "failed", "").Return(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consumer, service, _ := newConsumer(t)
			tt.mock(service)

			err := consumer.Handle(context.Background(), kafkaGo.Message{Value: []byte(tt.payload)})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRun(t *testing.T) {
	consumer, _, client := newConsumer(t)

	client.EXPECT().Consume(gomock.Any(), "reservation", "payment.refund.status", gomock.Any())

	consumer.Run(context.Background())
}
