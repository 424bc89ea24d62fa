// Package localstate keeps device-local state in a bbolt file: the last active
// tenant of the session and the per-tenant maintenance markers.
package localstate

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	bolt "go.etcd.io/bbolt"
)

var (
	sessionBucket     = []byte("session")
	maintenanceBucket = []byte("maintenance")

	activeTenantKey = []byte("active_tenant")
)

// Store is a bbolt backed SessionStore and MaintenanceMarkers.
type Store struct {
	db *bolt.DB
}

var (
	_ ports.SessionStore       = (*Store)(nil)
	_ ports.MaintenanceMarkers = (*Store)(nil)
)

// Open opens or creates the state file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open local state %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{sessionBucket, maintenanceBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ActiveTenant() (string, bool, error) {
	var id string
	err := s.db.View(func(tx *bolt.Tx) error {
		id = string(tx.Bucket(sessionBucket).Get(activeTenantKey))
		return nil
	})
	return id, id != "", err
}

func (s *Store) SetActiveTenant(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("tenant_id")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put(activeTenantKey, []byte(id))
	})
}

func (s *Store) ClearActiveTenant() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete(activeTenantKey)
	})
}

// LastRun returns the day stored for tenantID. A corrupt marker is reported
// as absent so the sweep runs again.
func (s *Store) LastRun(tenantID string) (kernel.Date, bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(maintenanceBucket).Get([]byte(tenantID)); v != nil {
			raw = append(raw, v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return kernel.Date{}, false, err
	}

	day, err := kernel.ParseDate(string(raw))
	if err != nil {
		return kernel.Date{}, false, nil
	}
	return day, true, nil
}

func (s *Store) SetLastRun(tenantID string, day kernel.Date) error {
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenant_id")
	}
	text, err := day.MarshalText()
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(maintenanceBucket).Put([]byte(tenantID), text)
	})
}
