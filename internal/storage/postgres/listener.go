package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Notification carries one LISTEN/NOTIFY payload.
type Notification struct {
	Channel string
	Payload string
}

// Listener dispatches Postgres NOTIFY payloads from a dedicated pooled
// connection. The connection is held for the lifetime of Listen.
type Listener struct {
	pool     *Pool
	channels []string
}

// NewListener creates a Listener subscribed to the given channels.
func NewListener(pool *Pool, channels ...string) *Listener {
	return &Listener{pool: pool, channels: channels}
}

// Listen blocks dispatching notifications to fn until the context is
// cancelled or the connection fails.
func (l *Listener) Listen(ctx context.Context, fn func(Notification)) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	for _, ch := range l.channels {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ch}.Sanitize()); err != nil {
			return fmt.Errorf("listen on %s: %w", ch, err)
		}
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("wait for notification: %w", err)
		}
		fn(Notification{Channel: n.Channel, Payload: n.Payload})
	}
}
