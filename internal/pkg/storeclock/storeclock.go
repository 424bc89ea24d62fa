// Package storeclock answers "what day is it at the restaurant". Daily
// aggregates and the retention sweep both depend on it.
package storeclock

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"

	"github.com/benbjohnson/clock"
)

// Calendar pairs a clock with the store's time zone.
type Calendar struct {
	clock clock.Clock
	loc   *time.Location
}

// New returns a calendar. A nil clock means the wall clock; a nil location
// means UTC.
func New(c clock.Clock, loc *time.Location) Calendar {
	if c == nil {
		c = clock.New()
	}
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{clock: c, loc: loc}
}

func (c Calendar) Clock() clock.Clock {
	return c.clock
}

func (c Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the store's zone.
func (c Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// Today returns the store-local calendar day.
func (c Calendar) Today() kernel.Date {
	return kernel.DateOf(c.clock.Now(), c.loc)
}

// StartOfToday returns local midnight of Today.
func (c Calendar) StartOfToday() time.Time {
	return c.Today().StartIn(c.loc)
}
