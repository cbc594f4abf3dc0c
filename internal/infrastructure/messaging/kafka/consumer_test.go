package kafka

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ShipCert-Intelligence/internal/config"
	"github.com/turtacn/ShipCert-Intelligence/internal/testutil"
	apperrors "github.com/turtacn/ShipCert-Intelligence/pkg/errors"
	"github.com/turtacn/ShipCert-Intelligence/pkg/types/common"
)

type mockKafkaReader struct {
	msgs      chan kafka.Message
	mu        sync.Mutex
	committed []kafka.Message
	closed    atomic.Bool
}

func newMockReader(msgs ...kafka.Message) *mockKafkaReader {
	r := &mockKafkaReader{msgs: make(chan kafka.Message, len(msgs))}
	for _, m := range msgs {
		r.msgs <- m
	}
	return r
}

func (m *mockKafkaReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case msg := <-m.msgs:
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (m *mockKafkaReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed = append(m.committed, msgs...)
	return nil
}

func (m *mockKafkaReader) Close() error {
	m.closed.Store(true)
	return nil
}

func (m *mockKafkaReader) commitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.committed)
}

func newTestConsumer(r ReaderInterface, log *testutil.MockLogger) *Consumer {
	return newConsumerWithReader(r, ConsumerConfig{
		Brokers: []string{"localhost:9092"},
		GroupID: "shipcert-survey",
		Topics:  []string{TopicDocumentChanged},
		RetryConfig: RetryConfig{
			MaxRetries:      2,
			RetryBackoff:    time.Millisecond,
			MaxRetryBackoff: 2 * time.Millisecond,
		},
	}, log)
}

func TestValidateConsumerConfig(t *testing.T) {
	valid := ConsumerConfig{Brokers: []string{"b"}, GroupID: "g", Topics: []string{"t"}}
	assert.NoError(t, ValidateConsumerConfig(valid))

	cases := map[string]func(c *ConsumerConfig){
		"no brokers":  func(c *ConsumerConfig) { c.Brokers = nil },
		"no group":    func(c *ConsumerConfig) { c.GroupID = "" },
		"no topics":   func(c *ConsumerConfig) { c.Topics = nil },
		"bad offset":  func(c *ConsumerConfig) { c.AutoOffsetReset = "middle" },
		"neg retries": func(c *ConsumerConfig) { c.RetryConfig.MaxRetries = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			assert.True(t, apperrors.IsCode(ValidateConsumerConfig(cfg), apperrors.ErrCodeValidation))
		})
	}
}

func TestConsumerConfigFrom(t *testing.T) {
	cfg := ConsumerConfigFrom(config.KafkaConfig{Brokers: []string{"k:9092"}, GroupID: "g"})
	assert.Equal(t, []string{TopicDocumentChanged}, cfg.Topics)

	cfg = ConsumerConfigFrom(config.KafkaConfig{Brokers: []string{"k:9092"}, GroupID: "g", ChangeTopic: "docs"})
	assert.Equal(t, []string{"docs"}, cfg.Topics)
	assert.Equal(t, "g", cfg.GroupID)
}

func TestConsumer_StartTwice(t *testing.T) {
	c := newTestConsumer(newMockReader(), testutil.NewMockLogger())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	assert.ErrorIs(t, c.Start(context.Background()), ErrAlreadyRunning)
}

func TestConsumer_DispatchesAndCommits(t *testing.T) {
	r := newMockReader(
		kafka.Message{Topic: TopicDocumentChanged, Offset: 7, Key: []byte("c1"), Value: []byte("v"),
			Headers: []kafka.Header{{Key: "event_type", Value: []byte("certificate.changed")}}},
		kafka.Message{Topic: "unrelated", Offset: 8},
	)
	log := testutil.NewMockLogger()
	c := newTestConsumer(r, log)

	got := make(chan *common.Message, 1)
	c.Subscribe(TopicDocumentChanged, func(_ context.Context, m *common.Message) error {
		got <- m
		return nil
	})
	require.NoError(t, c.Start(context.Background()))

	select {
	case m := <-got:
		assert.Equal(t, int64(7), m.Offset)
		assert.Equal(t, "certificate.changed", m.Headers["event_type"])
	case <-time.After(2 * time.Second):
		t.Fatal("handler not invoked")
	}

	assert.Eventually(t, func() bool { return r.commitCount() == 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())
	assert.True(t, r.closed.Load())
	assert.Equal(t, int64(1), c.Processed())
	assert.True(t, log.HasMessage("warn", "no handler for topic"))
}

func TestConsumer_RetryThenSucceed(t *testing.T) {
	c := newTestConsumer(newMockReader(), testutil.NewMockLogger())

	var calls int
	handler := func(context.Context, *common.Message) error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	}
	err := c.processMessage(context.Background(), &common.Message{Topic: "t"}, handler)
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(1), c.metrics.MessagesRetried.Load())
}

func TestConsumer_RetryExhausted(t *testing.T) {
	log := testutil.NewMockLogger()
	c := newTestConsumer(newMockReader(), log)

	var calls int
	handler := func(context.Context, *common.Message) error {
		calls++
		return errors.New("permanent")
	}
	err := c.processMessage(context.Background(), &common.Message{Topic: "t", Offset: 3}, handler)
	assert.EqualError(t, err, "permanent")
	assert.Equal(t, 3, calls)
	assert.True(t, log.HasMessage("error", "message processing failed after retries"))
}

func TestConsumer_CloseWithoutStart(t *testing.T) {
	r := newMockReader()
	c := newTestConsumer(r, testutil.NewMockLogger())
	assert.NoError(t, c.Close())
	assert.False(t, r.closed.Load())
}

//Personal.AI order the ending
