//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/adapter/kafka"
	"github.com/couchcryptid/neo-impact-service/internal/config"
	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/engine"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/couchcryptid/neo-impact-service/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSourceTopic = "test-requests"
	testSinkTopic   = "test-outcomes"
)

var requests = map[string]string{
	"chelyabinsk": `{"diameter_m":17,"density_kg_m3":3300,"velocity_kms":19,"impact_angle_deg":20,"lat":54.8,"lng":61.1}`,
	"iron":        `{"diameter_m":200,"density_kg_m3":7800,"velocity_kms":15,"impact_angle_deg":60,"lat":31,"lng":-98.4,"strength_mpa":1000}`,
	"invalid":     `{"diameter_m":-1,"density_kg_m3":3000,"velocity_kms":20,"impact_angle_deg":45,"lat":0,"lng":0}`,
}

type publishedRecord struct {
	Record  domain.SimulationRecord
	Key     string
	Headers map[string]string
}

func readRecord(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedRecord {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var rec domain.SimulationRecord
	require.NoError(t, json.Unmarshal(msg.Value, &rec), "unmarshal sink message")
	return publishedRecord{Record: rec, Key: string(msg.Key), Headers: headers}
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 2 * time.Second,
	}
}

func sinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func startPipeline(ctx context.Context, t *testing.T, cfg *config.Config) (context.CancelFunc, <-chan error) {
	t.Helper()
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	eng := engine.New(engine.Options{Logger: discardLogger()})
	transformer := pipeline.NewTransformer(eng, nil, metrics, discardLogger(), nil)
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pctx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pctx) }()
	return cancel, errCh
}

// TestKafkaReaderWriter round-trips one request through the adapters.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-reader")

	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{
		Key:     []byte("req-1"),
		Value:   []byte(requests["chelyabinsk"]),
		Headers: []kafkago.Header{{Key: "request_id", Value: []byte("req-1")}},
	}))

	// Retry because the consumer group may need time to rebalance.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for len(batch) == 0 {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("req-1"), raw.Key)
	assert.Equal(t, "req-1", raw.Headers["request_id"])
	require.NotNil(t, raw.Commit)
	require.NoError(t, raw.Commit(ctx))

	eng := engine.New(engine.Options{Logger: discardLogger()})
	transformer := pipeline.NewTransformer(eng, nil, observability.NewMetricsForTesting(), discardLogger(), nil)
	out, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, []domain.OutputEvent{out}))

	pr := readRecord(ctx, t, sinkConsumer(t, broker))
	assert.Equal(t, "req-1", pr.Key)
	assert.Equal(t, "impact", pr.Headers["outcome"])
	_, err = time.Parse(time.RFC3339, pr.Headers["processed_at"])
	assert.NoError(t, err, "processed_at should be valid RFC3339")
	assert.True(t, pr.Record.Outcome.OK)
	assert.Equal(t, domain.ModeAirburst, pr.Record.Outcome.Results.Mode)
}

// TestPipelineEndToEnd runs reader, transformer, and writer against a real
// broker. Failed simulations are published too; malformed JSON is not.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-pipeline")

	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })

	msgs := []kafkago.Message{{Key: []byte("poison"), Value: []byte("not-json{{{")}}
	for id, body := range requests {
		withID := fmt.Sprintf(`{"request_id":%q,%s`, id, body[1:])
		msgs = append(msgs, kafkago.Message{Key: []byte(id), Value: []byte(withID)})
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	stop, errCh := startPipeline(ctx, t, cfg)
	consumer := sinkConsumer(t, broker)

	got := map[string]publishedRecord{}
	for len(got) < len(requests) {
		pr := readRecord(ctx, t, consumer)
		got[pr.Key] = pr
	}

	// No record for the poison pill.
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no further messages on sink topic")

	stop()
	require.NoError(t, <-errCh)

	assert.Equal(t, "impact", got["chelyabinsk"].Headers["outcome"])
	assert.Equal(t, "impact", got["iron"].Headers["outcome"])
	assert.Equal(t, domain.ModeGround, got["iron"].Record.Outcome.Results.Mode)
	assert.NotEmpty(t, got["iron"].Headers["threat_level"])

	assert.Equal(t, "error", got["invalid"].Headers["outcome"])
	assert.Equal(t, "validation", got["invalid"].Headers["error_kind"])
	assert.Equal(t, "invalid", got["invalid"].Record.RequestID)
}
