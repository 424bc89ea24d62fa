// Package tenantctx decides which tenant a session is working on.
package tenantctx

import (
	"strings"

	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"

	"github.com/rs/zerolog"
)

// DefaultFallbackTenant is used when no other source names a tenant.
const DefaultFallbackTenant = "empresa_01"

// Source tells where a resolved tenant id came from.
type Source string

const (
	SourceNone      Source = ""
	SourceExplicit  Source = "explicit"
	SourceURL       Source = "url"
	SourcePersisted Source = "persisted"
	SourceFallback  Source = "fallback"
)

// Request carries the candidate tenant ids of one resolution.
type Request struct {
	// Explicit is set by the caller, e.g. from the signed-in user's record.
	Explicit string
	// URLParam is the raw value of the page's "id" query parameter.
	URLParam string
	Page     services.Page
}

// Resolution is the outcome. Bound is false on pages that work across
// tenants; TenantID is then empty.
type Resolution struct {
	TenantID string
	Source   Source
	Bound    bool
}

// Resolver applies the precedence explicit > URL > persisted > fallback. It
// never fails: storage errors are logged and resolution goes on.
type Resolver struct {
	store    ports.SessionStore
	fallback string
	logger   zerolog.Logger
}

func NewResolver(store ports.SessionStore, fallback string, logger zerolog.Logger) *Resolver {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultFallbackTenant
	}
	return &Resolver{store: store, fallback: fallback, logger: logger}
}

// Resolve returns the tenant a page works on and persists it when it came
// from anywhere but storage.
func (r *Resolver) Resolve(req Request) Resolution {
	if !req.Page.BindsTenantContext() {
		return Resolution{Source: SourceNone}
	}

	id, source := r.pick(req)
	if source != SourcePersisted {
		if err := r.store.SetActiveTenant(id); err != nil {
			r.logger.Warn().Err(err).Str("tenant_id", id).Msg("persist active tenant")
		}
	}

	return Resolution{TenantID: id, Source: source, Bound: true}
}

// Forget clears the persisted tenant.
func (r *Resolver) Forget() {
	if err := r.store.ClearActiveTenant(); err != nil {
		r.logger.Warn().Err(err).Msg("clear active tenant")
	}
}

func (r *Resolver) pick(req Request) (string, Source) {
	if id := strings.TrimSpace(req.Explicit); id != "" {
		return id, SourceExplicit
	}
	if id := strings.TrimSpace(req.URLParam); id != "" {
		return id, SourceURL
	}

	id, ok, err := r.store.ActiveTenant()
	if err != nil {
		r.logger.Warn().Err(err).Msg("read active tenant")
	}
	if err == nil && ok && id != "" {
		return id, SourcePersisted
	}

	return r.fallback, SourceFallback
}
