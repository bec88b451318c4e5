package kafka_test

import (
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservation/infras/kafka"
)

type refundStatus struct {
	CancellationID string `json:"cancellation_id"`
	Status         string `json:"status"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{
		Key:   "c-1",
		Value: refundStatus{CancellationID: "c-1", Status: "refunded"},
	}

	kafkaMsg, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("c-1"), kafkaMsg.Key)
	assert.JSONEq(t, `{"cancellation_id":"c-1","status":"refunded"}`, string(kafkaMsg.Value))

	decoded, err := kafka.Decode[refundStatus](kafkaMsg)
	require.NoError(t, err)
	assert.Equal(t, "refunded", decoded.Status)
}

func TestToKafkaMessageUnsupportedValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := kafka.Decode[refundStatus](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}
