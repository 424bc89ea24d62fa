// Package live turns change events into streams of full result snapshots.
//
// A Subscription reloads its whole result set whenever the feed signals a
// change and offers only the newest snapshot: a slow consumer skips
// intermediate states but never sees a stale one after a fresh one. Callers
// must Release a subscription before replacing it.
package live

import (
	"context"
	"sync"

	"restaurant/internal/core/ports"

	"github.com/rs/zerolog"
)

// Loader reads the full current result set.
type Loader[T any] func(ctx context.Context) (T, error)

// Snapshot is one delivery. Err is set when loading failed or the feed lost
// its connection; Value is then the zero value.
type Snapshot[T any] struct {
	Value T
	Err   error
}

// Subscription is a running watch. It is safe to call Release from any
// goroutine, any number of times.
type Subscription[T any] struct {
	out    chan Snapshot[T]
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Watch loads an initial snapshot and then reloads on every change of topic
// for tenantID. The stream stops when ctx is done or Release is called.
func Watch[T any](
	ctx context.Context,
	feed ports.ChangeFeed,
	topic ports.Topic,
	tenantID string,
	load Loader[T],
	logger zerolog.Logger,
) (*Subscription[T], error) {
	ctx, cancel := context.WithCancel(ctx)

	events, err := feed.Subscribe(ctx, topic, tenantID)
	if err != nil {
		cancel()
		return nil, err
	}

	s := &Subscription[T]{
		out:    make(chan Snapshot[T], 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	logger = logger.With().Str("topic", string(topic)).Str("tenant_id", tenantID).Logger()
	go s.run(ctx, events, load, logger)

	return s, nil
}

// C returns the snapshot stream. It is closed after Release.
func (s *Subscription[T]) C() <-chan Snapshot[T] {
	return s.out
}

// Release stops the watch and waits for its goroutine to exit.
func (s *Subscription[T]) Release() {
	s.once.Do(s.cancel)
	<-s.done
}

func (s *Subscription[T]) run(
	ctx context.Context,
	events <-chan ports.ChangeEvent,
	load Loader[T],
	logger zerolog.Logger,
) {
	defer close(s.done)
	defer close(s.out)

	s.reload(ctx, load, logger)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Err != nil {
				logger.Warn().Err(ev.Err).Msg("change feed interrupted")
				s.offer(Snapshot[T]{Err: ev.Err})
				continue
			}
			s.reload(ctx, load, logger)
		}
	}
}

func (s *Subscription[T]) reload(ctx context.Context, load Loader[T], logger zerolog.Logger) {
	value, err := load(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("snapshot reload failed")
		s.offer(Snapshot[T]{Err: err})
		return
	}
	s.offer(Snapshot[T]{Value: value})
}

// offer replaces any undelivered snapshot with snap. Only run writes to out,
// so the drain-then-send sequence cannot race another sender.
func (s *Subscription[T]) offer(snap Snapshot[T]) {
	select {
	case s.out <- snap:
		return
	default:
	}

	select {
	case <-s.out:
	default:
	}
	s.out <- snap
}
