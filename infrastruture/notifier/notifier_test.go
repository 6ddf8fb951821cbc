package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/beka-birhanu/tilt-maze/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct{ infos []string }

func (c *captureLogger) Info(m string)  { c.infos = append(c.infos, m) }
func (c *captureLogger) Warning(string) {}
func (c *captureLogger) Error(string)   {}

func TestLogWinNotifierKeepsLatest(t *testing.T) {
	logger := &captureLogger{}
	n := NewLogWinNotifier(logger, 2)
	ctx := context.Background()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		require.NoError(t, n.PublishWin(ctx, i.WinEvent{SessionID: id, Rows: 3, Cols: 4, WonAt: time.Now()}))
	}
	assert.Len(t, logger.infos, 3)

	recent, err := n.RecentWins(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[2], recent[0].SessionID)
	assert.Equal(t, ids[1], recent[1].SessionID)

	recent, err = n.RecentWins(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestLogWinNotifierNegativeCount(t *testing.T) {
	n := NewLogWinNotifier(nil, 0)
	require.NoError(t, n.PublishWin(context.Background(), i.WinEvent{SessionID: uuid.New()}))

	recent, err := n.RecentWins(context.Background(), -1)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestNewRedisWinNotifierDefaults(t *testing.T) {
	_, err := NewRedisWinNotifier(nil, Options{})
	assert.ErrorIs(t, err, ErrNilClient)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	n, err := NewRedisWinNotifier(client, Options{Channel: "wins"})
	require.NoError(t, err)
	assert.Equal(t, "wins", n.channel)
	assert.Equal(t, "wins:history", n.historyKey)
	assert.Equal(t, int64(defaultHistorySize), n.historySize)
	assert.Equal(t, defaultHistoryTTL, n.historyTTL)
}

func TestRedisWinNotifierReportsUnreachableBroker(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	n, err := NewRedisWinNotifier(client, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err = n.PublishWin(ctx, i.WinEvent{SessionID: uuid.New(), WonAt: time.Now()})
	assert.Error(t, err)

	recent, err := n.RecentWins(ctx, 0)
	assert.NoError(t, err)
	assert.Nil(t, recent)
}
