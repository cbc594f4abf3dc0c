package testutil_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ShipCert-Intelligence/internal/testutil"
)

var _ logging.Logger = (*testutil.MockLogger)(nil)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	require.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)
	v, ok := messages[0].Field("key")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestMockLogger_ChildrenShareBuffer(t *testing.T) {
	logger := testutil.NewMockLogger()
	child := logger.Named("scanner").Named("ship").With(logging.String("ship_id", "s-1"))
	child.Warn("skipped", logging.String("certificate_id", "c-1"))

	msgs := logger.MessagesAt("warn")
	require.Len(t, msgs, 1)
	assert.Equal(t, "scanner.ship", msgs[0].Logger)
	shipID, _ := msgs[0].Field("ship_id")
	certID, _ := msgs[0].Field("certificate_id")
	assert.Equal(t, "s-1", shipID)
	assert.Equal(t, "c-1", certID)
}

func TestMockLogger_ConcurrentUse(t *testing.T) {
	logger := testutil.NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.Debug("tick", logging.Int("i", i))
		}(i)
	}
	wg.Wait()
	assert.Len(t, logger.GetMessages(), 20)
}

//Personal.AI order the ending
