package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pingInterval = 90 * time.Second

// Listener relays PostgreSQL NOTIFY payloads into the hub, so changes made by
// other writers reach subscribers too.
type Listener struct {
	hub     *Hub
	dsn     string
	channel string
	tables  []string
	logger  *zap.Logger
}

// NewListener returns a Listener for channel. tables are refreshed whenever the
// connection is re-established, since notifications may have been missed.
func NewListener(h *Hub, dsn, channel string, tables []string, logger *zap.Logger) *Listener {
	return &Listener{hub: h, dsn: dsn, channel: channel, tables: tables, logger: logger}
}

// Run listens until ctx is done.
func (l *Listener) Run(ctx context.Context) error {
	report := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			l.logger.Warn("listener connection event", zap.Int("event", int(ev)), zap.Error(err))
		}
	}

	listener := pq.NewListener(l.dsn, 10*time.Second, time.Minute, report)
	defer listener.Close()

	if err := listener.Listen(l.channel); err != nil {
		return fmt.Errorf("listen %s: %w", l.channel, err)
	}
	l.logger.Info("listening for table changes", zap.String("channel", l.channel))

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			l.handle(n)
		case <-time.After(pingInterval):
			go func() {
				if err := listener.Ping(); err != nil {
					l.logger.Warn("listener ping failed", zap.Error(err))
				}
			}()
		}
	}
}

func (l *Listener) handle(n *pq.Notification) {
	// nil after a reconnect
	if n == nil {
		l.hub.Refresh(l.tables...)
		return
	}

	var ev Event
	if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil || ev.Table == "" {
		l.logger.Warn("ignoring malformed notification", zap.String("payload", n.Extra), zap.Error(err))
		return
	}
	l.hub.Broadcast(ev)
}
