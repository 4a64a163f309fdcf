package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"storeadmin/internal/refresh"
)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

// Listener subscribes to a Postgres notification channel carrying row
// changes on the orders table and forwards them as change events. The
// notification payload is the JSON form of refresh.ChangeEvent,
// emitted by a trigger on the table.
type Listener struct {
	pl      *pq.Listener
	channel string
	logger  *zap.Logger
	out     chan refresh.ChangeEvent
}

func NewListener(dsn, channel string, logger *zap.Logger) (*Listener, error) {
	pl := pq.NewListener(dsn, listenerMinReconnect, listenerMaxReconnect,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Warn("postgres listener event", zap.Int("event", int(ev)), zap.Error(err))
			}
		})

	if err := pl.Listen(channel); err != nil {
		pl.Close()
		return nil, err
	}

	return &Listener{
		pl:      pl,
		channel: channel,
		logger:  logger,
		out:     make(chan refresh.ChangeEvent, 64),
	}, nil
}

// Events returns the stream of decoded change events.
func (l *Listener) Events() <-chan refresh.ChangeEvent {
	return l.out
}

// Run pumps notifications until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) {
	defer l.pl.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case n := <-l.pl.Notify:
			if n == nil {
				// Connection was re-established; a reload will pick up
				// anything missed in between.
				continue
			}
			var ev refresh.ChangeEvent
			if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil {
				l.logger.Warn("ignoring malformed notification payload",
					zap.String("channel", n.Channel), zap.Error(err))
				continue
			}
			select {
			case l.out <- ev:
			default:
				l.logger.Warn("change event buffer full, dropping notification")
			}

		case <-time.After(listenerPingInterval):
			if err := l.pl.Ping(); err != nil {
				l.logger.Warn("postgres listener ping failed", zap.Error(err))
			}
		}
	}
}

// Forward feeds every event from the listener into the coordinator and
// the websocket hub until ctx is cancelled.
func Forward(ctx context.Context, events <-chan refresh.ChangeEvent, coord *refresh.Coordinator, hub *Hub) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			coord.Notify(ev)
			if hub != nil {
				hub.Broadcast("change", ev)
			}
		}
	}
}
