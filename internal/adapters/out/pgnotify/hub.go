// Package pgnotify implements the change feed on PostgreSQL LISTEN/NOTIFY.
//
// Every topic is a notification channel and every payload a tenant id. One
// listener connection serves all subscribers; the hub listens on a channel the
// first time someone subscribes to its topic.
package pgnotify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"restaurant/internal/core/ports"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

var ErrConnectionLost = errors.New("change feed connection lost")

const pingInterval = 90 * time.Second

// Listener is the part of *pq.Listener the hub uses.
type Listener interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

type subscriber struct {
	tenantID string
	ch       chan ports.ChangeEvent
}

type Hub struct {
	listener Listener
	logger   zerolog.Logger

	mu        sync.Mutex
	listening map[ports.Topic]bool
	subs      map[ports.Topic]map[*subscriber]struct{}
}

// Dial opens a reconnecting listener on dsn.
func Dial(dsn string, minReconnect, maxReconnect time.Duration, logger zerolog.Logger) *Hub {
	h := newHub(logger)
	h.listener = pq.NewListener(dsn, minReconnect, maxReconnect, h.onListenerEvent)
	return h
}

// NewHub serves subscribers from an already opened listener.
func NewHub(l Listener, logger zerolog.Logger) *Hub {
	h := newHub(logger)
	h.listener = l
	return h
}

func newHub(logger zerolog.Logger) *Hub {
	return &Hub{
		logger:    logger,
		listening: make(map[ports.Topic]bool),
		subs:      make(map[ports.Topic]map[*subscriber]struct{}),
	}
}

var _ ports.ChangeFeed = (*Hub)(nil)

// Subscribe registers a subscriber for (topic, tenantID). Events are
// coalesced: a subscriber that has not consumed the previous event does not
// get another one.
func (h *Hub) Subscribe(ctx context.Context, topic ports.Topic, tenantID string) (<-chan ports.ChangeEvent, error) {
	h.mu.Lock()
	if !h.listening[topic] {
		if err := h.listener.Listen(string(topic)); err != nil && !errors.Is(err, pq.ErrChannelAlreadyOpen) {
			h.mu.Unlock()
			return nil, fmt.Errorf("listen %s: %w", topic, err)
		}
		h.listening[topic] = true
	}

	s := &subscriber{tenantID: tenantID, ch: make(chan ports.ChangeEvent, 1)}
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*subscriber]struct{})
	}
	h.subs[topic][s] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs[topic], s)
		close(s.ch)
		h.mu.Unlock()
	}()

	return s.ch, nil
}

// Run dispatches notifications until ctx is done, then closes the listener.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	notifications := h.listener.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			return h.listener.Close()
		case n, ok := <-notifications:
			if !ok {
				return nil
			}
			if n == nil {
				// Reconnected; anything sent meanwhile is lost.
				h.broadcast(nil)
				continue
			}
			h.dispatch(ports.Topic(n.Channel), n.Extra)
		case <-ticker.C:
			if err := h.listener.Ping(); err != nil {
				h.logger.Warn().Err(err).Msg("listener ping failed")
			}
		}
	}
}

func (h *Hub) onListenerEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventDisconnected:
		h.logger.Warn().Err(err).Msg("listener disconnected")
		cause := ErrConnectionLost
		if err != nil {
			cause = fmt.Errorf("%w: %w", ErrConnectionLost, err)
		}
		h.broadcast(cause)
	case pq.ListenerEventReconnected:
		h.logger.Info().Msg("listener reconnected")
	case pq.ListenerEventConnectionAttemptFailed:
		h.logger.Error().Err(err).Msg("listener reconnect failed")
	}
}

func (h *Hub) dispatch(topic ports.Topic, tenantID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs[topic] {
		if s.tenantID == tenantID {
			offer(s.ch, ports.ChangeEvent{Topic: topic, TenantID: tenantID})
		}
	}
}

// broadcast tells every subscriber to reload. A non-nil cause marks the event
// as an interruption.
func (h *Hub) broadcast(cause error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for topic, subs := range h.subs {
		for s := range subs {
			offer(s.ch, ports.ChangeEvent{Topic: topic, TenantID: s.tenantID, Err: cause})
		}
	}
}

func offer(ch chan ports.ChangeEvent, ev ports.ChangeEvent) {
	select {
	case ch <- ev:
	default:
	}
}
