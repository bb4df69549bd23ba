// Package guard provides ConstructorGuard, a marker that lets commands and
// queries detect zero values that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in a struct and set only by that struct's
// constructor. A zero-value guard fails validation.
//
// Example:
//
//	type UpdateOrderStatusCommand struct {
//	    orderRef string
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c UpdateOrderStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise,
// falling back to ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
