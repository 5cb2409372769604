package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"foodie-dashboard/dashboard-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const DefaultRefreshChannel = "dashboard:refresh"

// RefreshBus carries panel refresh requests over Redis pub/sub so every
// replica re-triggers the panel on its live pages.
type RefreshBus struct {
	Client  *redis.Client
	Channel string
	logger  *slog.Logger
}

func NewRefreshBus(client *redis.Client, channel string, logger *slog.Logger) *RefreshBus {
	if channel == "" {
		channel = DefaultRefreshChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshBus{Client: client, Channel: channel, logger: logger}
}

func (b *RefreshBus) Publish(ctx context.Context, req domain.RefreshRequest) error {
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode refresh request: %w", err)
	}
	return b.Client.Publish(ctx, b.Channel, payload).Err()
}

// Subscribe calls handle for every refresh request until ctx is done.
// Malformed messages are logged and skipped.
func (b *RefreshBus) Subscribe(ctx context.Context, handle func(context.Context, domain.RefreshRequest)) error {
	sub := b.Client.Subscribe(ctx, b.Channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.Channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var req domain.RefreshRequest
			if err := json.Unmarshal([]byte(msg.Payload), &req); err != nil {
				b.logger.Warn("dropping malformed refresh request", "error", err)
				continue
			}
			if req.Panel == "" {
				continue
			}
			handle(ctx, req)
		}
	}
}
