// Package guard provides the constructor guard used by commands, queries and
// aggregates to reject zero-value instances that skipped their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built through its constructor. The zero
// value is "not constructed".
//
// Example:
//
//	type SaveCategoryCommand struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (c SaveCategoryCommand) Validate() error {
//	    return c.guard.Validate(ErrSaveCategoryCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guarded value was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
