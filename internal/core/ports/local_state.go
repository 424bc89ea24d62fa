package ports

import (
	"restaurant/internal/core/domain/model/kernel"
)

// SessionStore persists the last active tenant id across restarts.
type SessionStore interface {
	// ActiveTenant returns the stored id; ok is false when nothing is stored.
	ActiveTenant() (id string, ok bool, err error)
	SetActiveTenant(id string) error
	ClearActiveTenant() error
}

// MaintenanceMarkers remembers, per tenant, the day the sweep last ran.
type MaintenanceMarkers interface {
	LastRun(tenantID string) (day kernel.Date, ok bool, err error)
	SetLastRun(tenantID string, day kernel.Date) error
}
