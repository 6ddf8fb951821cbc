// Package notifier broadcasts won sessions and keeps a short history of them.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/tilt-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultHistorySize = 100
	defaultHistoryTTL  = 24 * time.Hour
)

var ErrNilClient = errors.New("redis client is nil")

var (
	_ i.WinNotifier = &RedisWinNotifier{}
	_ i.WinHistory  = &RedisWinNotifier{}
)

// RedisWinNotifier publishes win events on a channel and records them in a
// sorted set scored by win time.
type RedisWinNotifier struct {
	client      *redis.Client
	locker      *redsync.Redsync
	channel     string
	historyKey  string
	historySize int64
	historyTTL  time.Duration
}

// Options tunes a RedisWinNotifier. Zero values use the defaults.
type Options struct {
	Channel     string
	HistoryKey  string        // Defaults to Channel + ":history"
	HistorySize int64         // Wins kept in the history
	HistoryTTL  time.Duration // Expiry of an idle history
}

// NewRedisWinNotifier creates a notifier backed by client.
func NewRedisWinNotifier(client *redis.Client, opts Options) (*RedisWinNotifier, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	n := &RedisWinNotifier{
		client:      client,
		locker:      redsync.New(goredis.NewPool(client)),
		channel:     opts.Channel,
		historyKey:  opts.HistoryKey,
		historySize: opts.HistorySize,
		historyTTL:  opts.HistoryTTL,
	}
	if n.channel == "" {
		n.channel = "maze:won"
	}
	if n.historyKey == "" {
		n.historyKey = n.channel + ":history"
	}
	if n.historySize <= 0 {
		n.historySize = defaultHistorySize
	}
	if n.historyTTL <= 0 {
		n.historyTTL = defaultHistoryTTL
	}
	return n, nil
}

// PublishWin implements i.WinNotifier.
func (n *RedisWinNotifier) PublishWin(ctx context.Context, e i.WinEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publishing win: %w", err)
	}

	return n.record(ctx, e.WonAt, payload)
}

// record adds the event to the history and trims it to size.
func (n *RedisWinNotifier) record(ctx context.Context, wonAt time.Time, payload []byte) error {
	mutex := n.locker.NewMutex(n.historyKey + ":lock")
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("locking win history: %w", err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	score := float64(wonAt.UnixNano()) / float64(time.Second)
	if err := n.client.ZAdd(ctx, n.historyKey, redis.Z{Score: score, Member: payload}).Err(); err != nil {
		return fmt.Errorf("recording win: %w", err)
	}

	if err := n.client.ZRemRangeByRank(ctx, n.historyKey, 0, -n.historySize-1).Err(); err != nil {
		return fmt.Errorf("trimming win history: %w", err)
	}
	return n.client.Expire(ctx, n.historyKey, n.historyTTL).Err()
}

// RecentWins implements i.WinHistory.
func (n *RedisWinNotifier) RecentWins(ctx context.Context, count int) ([]i.WinEvent, error) {
	if count <= 0 {
		return nil, nil
	}

	members, err := n.client.ZRevRange(ctx, n.historyKey, 0, int64(count-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading win history: %w", err)
	}

	events := make([]i.WinEvent, 0, len(members))
	for _, m := range members {
		var e i.WinEvent
		if err := json.Unmarshal([]byte(m), &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}
