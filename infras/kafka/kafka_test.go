package kafka_test

import (
	"hotel/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomEvent struct {
	RoomID string `json:"room_id"`
	Nights int    `json:"nights"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	message := kafka.Message{Key: "booking-1", Type: "booking.created", Value: roomEvent{RoomID: "room-1", Nights: 2}}

	msg, err := message.ToKafkaMessage("booking.events")
	require.NoError(t, err)

	assert.Equal(t, "booking.events", msg.Topic)
	assert.Equal(t, []byte("booking-1"), msg.Key)
	assert.JSONEq(t, `{"room_id":"room-1","nights":2}`, string(msg.Value))
	assert.Equal(t, "booking.created", kafka.EventType(msg))
}

func TestMessage_ToKafkaMessageRejectsUnencodable(t *testing.T) {
	message := kafka.Message{Key: "booking-1", Value: make(chan int)}

	_, err := message.ToKafkaMessage("booking.events")

	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	event, err := kafka.Decode[roomEvent](kafkaGo.Message{Value: []byte(`{"room_id":"room-9","nights":3}`)})
	require.NoError(t, err)
	assert.Equal(t, roomEvent{RoomID: "room-9", Nights: 3}, event)

	_, err = kafka.Decode[roomEvent](kafkaGo.Message{Value: []byte(`{"room_id":`)})
	assert.Error(t, err)
}

func TestEventTypeMissing(t *testing.T) {
	assert.Empty(t, kafka.EventType(kafkaGo.Message{}))
}
