// Package redispub forwards domain events to a redis pub/sub channel so
// other processes can follow board activity.
package redispub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/alexanderramin/neonboard/internal/domain"
	"github.com/alexanderramin/neonboard/internal/events"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "neonboard.events"

// Publisher is the subset of the redis client used for publishing.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *goredis.IntCmd
}

// Connect dials addr and verifies the connection with PING.
func Connect(ctx context.Context, addr string) (*goredis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("redis address required")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

type handler struct {
	client  Publisher
	channel string
	logger  *slog.Logger
}

// NewHandler returns an events.Handler publishing each event as a JSON
// envelope on channel.
func NewHandler(client Publisher, channel string, logger *slog.Logger) events.Handler {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &handler{client: client, channel: channel, logger: logger.With("service", "RedisEventPublisher")}
}

func (h *handler) Handle(ctx context.Context, e domain.Event) error {
	env, err := events.NewEnvelope(e)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}
	receivers, err := h.client.Publish(ctx, h.channel, raw).Result()
	if err != nil {
		return fmt.Errorf("publishing %s to %s: %w", e.EventType(), h.channel, err)
	}
	h.logger.Debug("published event", "event_type", string(env.Type), "receivers", receivers)
	return nil
}

// Follow subscribes to channel and calls onEnvelope for every message until
// ctx is done. Malformed payloads are logged and skipped.
func Follow(ctx context.Context, rdb *goredis.Client, channel string, logger *slog.Logger, onEnvelope func(events.Envelope)) error {
	if onEnvelope == nil {
		return fmt.Errorf("onEnvelope callback required")
	}
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sub := rdb.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok || m == nil {
				return nil
			}
			env, err := Decode(m.Payload)
			if err != nil {
				logger.Warn("bad event payload", "error", err)
				continue
			}
			onEnvelope(env)
		}
	}
}

// Decode parses a published envelope.
func Decode(payload string) (events.Envelope, error) {
	var env events.Envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return events.Envelope{}, fmt.Errorf("decoding envelope: %w", err)
	}
	if env.Type == "" {
		return events.Envelope{}, fmt.Errorf("decoding envelope: missing type")
	}
	return env, nil
}
