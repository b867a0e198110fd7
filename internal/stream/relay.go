package stream

import (
	"context"
	"encoding/json"
	"log"

	"solana-pool-search/internal/storage/postgres"
)

// Notification channels raised by the insert triggers.
const (
	ChannelSwapInserted = "swap_inserted"
	ChannelPoolInserted = "pool_inserted"
)

// Relay forwards database insert notifications to the hub.
type Relay struct {
	hub      *Hub
	listener *postgres.Listener
	logger   *log.Logger
}

// NewRelay creates a relay over a listener subscribed to the swap and
// pool insert channels.
func NewRelay(hub *Hub, pool *postgres.Pool, logger *log.Logger) *Relay {
	return &Relay{
		hub:      hub,
		listener: postgres.NewListener(pool, ChannelSwapInserted, ChannelPoolInserted),
		logger:   logger,
	}
}

// Run blocks forwarding notifications until ctx is cancelled. Payloads
// that are not valid JSON are logged and skipped so one malformed trigger
// cannot wedge the stream.
func (r *Relay) Run(ctx context.Context) error {
	return r.listener.Listen(ctx, func(n postgres.Notification) {
		if !json.Valid([]byte(n.Payload)) {
			r.logger.Printf("[stream] skipping malformed payload on %s", n.Channel)
			return
		}
		r.hub.Broadcast(n.Channel, []byte(n.Payload))
	})
}
