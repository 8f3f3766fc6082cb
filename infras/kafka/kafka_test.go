package kafka_test

import (
	"conference/config"
	"conference/infras/kafka"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:   "5f0c6f9e-booking",
		Value: map[string]any{"event": "booking.confirmed", "units": 2},
	}

	out, err := msg.ToKafkaMessage()
	assert.NoError(t, err)
	assert.Equal(t, []byte("5f0c6f9e-booking"), out.Key)
	assert.JSONEq(t, `{"event":"booking.confirmed","units":2}`, string(out.Value))

	_, err = (&kafka.Message{Key: "bad", Value: make(chan int)}).ToKafkaMessage()
	assert.Error(t, err)
}

func TestClient_Disabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enable = false

	client := kafka.New(cfg)

	err := client.SendMessages(context.Background(), "", kafka.Message{Key: "k", Value: "v"})
	assert.ErrorIs(t, err, kafka.ErrDisabled)
	assert.NoError(t, client.Close())
}
