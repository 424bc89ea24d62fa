package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Values are stored and sent over
// the wire as-is.
//
//	pending ──> ready ──> paid | finalizado
//	   ^  │        │
//	   └──┘        └──> pending (amend)
//	cancelled is reachable from any non-terminal state and never left.
type Status string

const (
	Pending    Status = "pending"
	Ready      Status = "ready"
	Paid       Status = "paid"
	Finalizado Status = "finalizado"
	Cancelled  Status = "cancelled"
)

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Ready, Paid, Finalizado, Cancelled}
}

// ParseStatus converts a raw status string, rejecting unknown values.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks that s is one of the known statuses.
func (s Status) Validate() error {
	switch s {
	case Pending, Ready, Paid, Finalizado, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the order has left the active listings.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Finalizado || s == Cancelled
}

// IsActive is the complement of IsTerminal for valid statuses.
func (s Status) IsActive() bool {
	return s == Pending || s == Ready
}

// IsSale reports whether the order counts as revenue in the sales history.
func (s Status) IsSale() bool {
	return s == Paid || s == Finalizado
}

// Amend returns Pending; staff may amend any order still on the floor.
func (s Status) Amend() (Status, error) {
	if !s.IsActive() {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order cannot be amended", s),
		)
	}
	return Pending, nil
}

// Cancel returns Cancelled from any non-terminal status.
func (s Status) Cancel() (Status, error) {
	if !s.IsActive() {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s order cannot be cancelled", s),
		)
	}
	return Cancelled, nil
}

// ChangeTo is the unconditional status write used by the floor screens. The
// only refused move is leaving Cancelled.
func (s Status) ChangeTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}
	if s == Cancelled && next != Cancelled {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cancelled order cannot move to %s", next),
		)
	}
	return next, nil
}
