package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"restaurant/internal/core/application/live"
	"restaurant/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const keepAliveInterval = 25 * time.Second

// eventStream writes server-sent events to one response.
type eventStream struct {
	c echo.Context
}

func openEventStream(c echo.Context) *eventStream {
	h := c.Response().Header()
	h.Set(echo.HeaderContentType, "text/event-stream")
	h.Set(echo.HeaderCacheControl, "no-cache")
	h.Set(echo.HeaderConnection, "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()
	return &eventStream{c: c}
}

func (s *eventStream) send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(s.c.Response(), "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	s.c.Response().Flush()
	return nil
}

func (s *eventStream) comment(text string) error {
	if _, err := fmt.Fprintf(s.c.Response(), ": %s\n\n", text); err != nil {
		return err
	}
	s.c.Response().Flush()
	return nil
}

// streamLive serves a live view as "snapshot" events. Failed reloads are sent
// as "error" events and the stream stays open.
func streamLive[T any](
	s *Server,
	c echo.Context,
	topic ports.Topic,
	tenantID string,
	load live.Loader[T],
) error {
	ctx := c.Request().Context()

	sub, err := live.Watch(ctx, s.feed, topic, tenantID, load, s.logger)
	if err != nil {
		return err
	}
	defer sub.Release()

	stream := openEventStream(c)
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err = stream.comment("keep-alive"); err != nil {
				return nil
			}
		case snap, ok := <-sub.C():
			if !ok {
				return nil
			}
			if snap.Err != nil {
				err = stream.send("error", ErrorBody(snap.Err))
			} else {
				err = stream.send("snapshot", snap.Value)
			}
			if err != nil {
				return nil
			}
		}
	}
}

func loader[Q any, R any](handle func(context.Context, Q) (R, error), query Q) live.Loader[R] {
	return func(ctx context.Context) (R, error) {
		return handle(ctx, query)
	}
}
