package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luckyrupee/wager-engine/internal/domain/usecase/live"
)

// ChannelRoundBroadcast is the pub/sub channel round snapshots are pushed to
const ChannelRoundBroadcast = "round_updates_broadcast"

// RedisBroadcaster publishes round snapshots over Redis pub/sub and keeps
// the latest snapshot per variant in a keyspace entry so late subscribers
// can read the current round without waiting for the next tick.
type RedisBroadcaster struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBroadcaster creates a Redis-backed round broadcaster
func NewRedisBroadcaster(client *redis.Client, ttl time.Duration) *RedisBroadcaster {
	return &RedisBroadcaster{client: client, ttl: ttl}
}

func roundKey(variant string) string { return "round:current:" + variant }

// PublishRound pushes the snapshot to the broadcast channel and caches it
func (b *RedisBroadcaster) PublishRound(ctx context.Context, view live.RoundView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal round view: %w", err)
	}

	if err := b.client.Publish(ctx, ChannelRoundBroadcast, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish round update: %w", err)
	}

	return b.client.Set(ctx, roundKey(view.Variant), payload, b.ttl).Err()
}
