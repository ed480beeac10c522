package realtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/inclusion/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const outboxSize = 256

// Relay publishes events through a Redis channel so that every replica's hub
// delivers them. Frames that cannot be published are delivered to the local hub only.
type Relay struct {
	log     *slog.Logger
	hub     *Hub
	client  redis.UniversalClient
	channel string
	metrics *metrics.Metrics
	outbox  chan []byte
}

// NewRelay creates a new Relay in front of hub.
func NewRelay(
	log *slog.Logger,
	hub *Hub,
	client redis.UniversalClient,
	channel string,
	metrics *metrics.Metrics,
) *Relay {
	return &Relay{
		log:     log,
		hub:     hub,
		client:  client,
		channel: channel,
		metrics: metrics,
		outbox:  make(chan []byte, outboxSize),
	}
}

// Broadcast queues an event for publication. It never blocks.
func (r *Relay) Broadcast(event string, payload any) {
	frame, err := encode(event, payload)
	if err != nil {
		r.log.Error("Failed to encode realtime event", "event", event, "error", err)
		return
	}
	r.metrics.EventsBroadcast.WithLabelValues(event).Inc()

	select {
	case r.outbox <- frame:
	default:
		r.log.Warn("Relay outbox is full, delivering locally", "event", event)
		r.hub.fanOut(frame)
	}
}

// Run subscribes to the channel, then publishes queued frames and hands every
// received frame to the local hub until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}
	r.log.InfoContext(ctx, "Realtime relay subscribed", "channel", r.channel)
	messages := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case frame := <-r.outbox:
			if err := r.client.Publish(ctx, r.channel, frame).Err(); err != nil {
				r.log.WarnContext(ctx, "Failed to publish realtime event, delivering locally", "error", err)
				r.hub.fanOut(frame)
			}
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.hub.fanOut([]byte(msg.Payload))
		}
	}
}
