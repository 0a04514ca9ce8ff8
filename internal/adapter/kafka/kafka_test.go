package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("req-1"),
		Value:     []byte(`{"diameter_m":20}`),
		Topic:     "impact-simulation-requests",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "request_id", Value: []byte("req-1")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("req-1"), raw.Key)
	assert.JSONEq(t, `{"diameter_m":20}`, string(raw.Value))
	assert.Equal(t, "impact-simulation-requests", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "req-1", raw.Headers["request_id"])
	assert.Nil(t, raw.Commit)
}

func TestToMessage_SortsHeaders(t *testing.T) {
	event := domain.OutputEvent{
		Key:   []byte("run-1"),
		Value: []byte(`{"id":"run-1"}`),
		Headers: map[string]string{
			"threat_level": "REGIONAL",
			"outcome":      "impact",
			"processed_at": "2026-02-15T03:20:00Z",
			"ok":           "true",
		},
	}

	msg := toMessage(event)

	assert.Equal(t, []byte("run-1"), msg.Key)
	assert.Equal(t, []byte(`{"id":"run-1"}`), msg.Value)
	keys := make([]string, 0, len(msg.Headers))
	for _, h := range msg.Headers {
		keys = append(keys, h.Key)
	}
	assert.Equal(t, []string{"ok", "outcome", "processed_at", "threat_level"}, keys)
	assert.Equal(t, []byte("REGIONAL"), msg.Headers[3].Value)
}

func TestToMessage_NoHeaders(t *testing.T) {
	msg := toMessage(domain.OutputEvent{Key: []byte("k"), Value: []byte("{}")})
	assert.Empty(t, msg.Headers)
}
