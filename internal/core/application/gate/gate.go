// Package gate watches a tenant record and locks sessions out when the tenant
// is suspended or, for employees, closed for operation.
//
// A Gate holds one subscription at a time. Check replaces it; Release stops
// it. State changes are published on Events and operating-flag flips on
// Operations. Consumers that stop reading block the gate's delivery but never
// the subscription itself, which keeps only the newest tenant snapshot.
package gate

import (
	"context"
	"errors"
	"sync"

	"restaurant/internal/core/application/live"
	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// TenantReader loads the watched tenant record.
type TenantReader interface {
	Get(ctx context.Context, id string) (*tenant.Tenant, error)
}

// Event is a gate state change. Reload asks the client to refresh its data
// because it comes back from a blocking state.
type Event struct {
	TenantID   string
	Previous   services.AccessState
	Current    services.AccessState
	Reload     bool
	TenantOpen bool
}

// OperationChange reports that the tenant opened or closed for operation.
type OperationChange struct {
	TenantID string
	Open     bool
}

// Evaluate is the one-shot check used per request.
func Evaluate(t *tenant.Tenant, role user.Role) services.AccessState {
	return services.EvaluateTenantAccess(t, role)
}

type watch struct {
	sub  *live.Subscription[*tenant.Tenant]
	stop chan struct{}
	done chan struct{}
}

type Gate struct {
	feed    ports.ChangeFeed
	tenants TenantReader
	logger  zerolog.Logger

	events     chan Event
	operations chan OperationChange

	ctl sync.Mutex // serialises Check and Release

	mu       sync.Mutex
	state    services.AccessState
	lastOpen *bool
	current  *watch
}

func New(feed ports.ChangeFeed, tenants TenantReader, logger zerolog.Logger) *Gate {
	return &Gate{
		feed:       feed,
		tenants:    tenants,
		logger:     logger,
		events:     make(chan Event, 8),
		operations: make(chan OperationChange, 8),
		state:      services.Unchecked,
	}
}

func (g *Gate) Events() <-chan Event {
	return g.events
}

func (g *Gate) Operations() <-chan OperationChange {
	return g.operations
}

// State returns the last evaluated state.
func (g *Gate) State() services.AccessState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Check starts watching tenantID for role. Any previous watch is released
// first. An empty tenant id or a failed subscription leaves the gate open.
func (g *Gate) Check(ctx context.Context, tenantID string, role user.Role) {
	g.ctl.Lock()
	defer g.ctl.Unlock()

	g.release()

	logger := g.logger.With().Str("tenant_id", tenantID).Str("role", role.String()).Logger()

	if tenantID == "" {
		g.offer(g.apply(tenantID, services.Open, nil, nil))
		return
	}

	sub, err := live.Watch(ctx, g.feed, ports.TenantsTopic, tenantID, g.loader(tenantID), logger)
	if err != nil {
		logger.Error().Err(err).Msg("tenant watch failed, failing open")
		g.offer(g.apply(tenantID, services.Open, nil, nil))
		return
	}

	w := &watch{sub: sub, stop: make(chan struct{}), done: make(chan struct{})}
	g.mu.Lock()
	g.current = w
	g.mu.Unlock()

	go g.run(w, tenantID, role, logger)
}

// Release stops the current watch, if any, and waits for it to finish.
func (g *Gate) Release() {
	g.ctl.Lock()
	defer g.ctl.Unlock()

	g.release()
}

func (g *Gate) release() {
	g.mu.Lock()
	w := g.current
	g.current = nil
	g.mu.Unlock()

	if w != nil {
		close(w.stop)
		w.sub.Release()
		<-w.done
	}

	g.mu.Lock()
	g.lastOpen = nil
	g.mu.Unlock()
}

func (g *Gate) loader(tenantID string) live.Loader[*tenant.Tenant] {
	return func(ctx context.Context) (*tenant.Tenant, error) {
		t, err := g.tenants.Get(ctx, tenantID)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return t, err
	}
}

func (g *Gate) run(w *watch, tenantID string, role user.Role, logger zerolog.Logger) {
	defer close(w.done)

	for snap := range w.sub.C() {
		if snap.Err != nil {
			logger.Error().Err(snap.Err).Msg("tenant snapshot failed, failing open")
			g.publish(w, g.apply(tenantID, services.Open, nil, nil))
			continue
		}

		state := Evaluate(snap.Value, role)
		open := true
		if snap.Value != nil {
			open = snap.Value.OperationOpen()
		}
		g.publish(w, g.apply(tenantID, state, &open, snap.Value))
	}
}

type delivery struct {
	event *Event
	op    *OperationChange
}

// apply records the new state and returns what must be published.
func (g *Gate) apply(tenantID string, next services.AccessState, open *bool, t *tenant.Tenant) delivery {
	g.mu.Lock()
	defer g.mu.Unlock()

	var d delivery

	if next != g.state {
		tenantOpen := true
		if t != nil {
			tenantOpen = t.OperationOpen()
		}
		d.event = &Event{
			TenantID:   tenantID,
			Previous:   g.state,
			Current:    next,
			Reload:     next == services.Open && g.state.Blocking(),
			TenantOpen: tenantOpen,
		}
		g.state = next
	}

	if open != nil {
		if g.lastOpen != nil && *g.lastOpen != *open {
			d.op = &OperationChange{TenantID: tenantID, Open: *open}
		}
		v := *open
		g.lastOpen = &v
	}

	return d
}

// offer publishes without blocking; used outside a watch.
func (g *Gate) offer(d delivery) {
	if d.event == nil {
		return
	}
	select {
	case g.events <- *d.event:
	default:
		g.logger.Debug().
			Str("tenant_id", d.event.TenantID).
			Str("state", string(d.event.Current)).
			Msg("gate event dropped, consumer is not reading")
	}
}

func (g *Gate) publish(w *watch, d delivery) {
	if d.event != nil {
		select {
		case g.events <- *d.event:
		case <-w.stop:
			return
		}
	}
	if d.op != nil {
		select {
		case g.operations <- *d.op:
		case <-w.stop:
		}
	}
}
