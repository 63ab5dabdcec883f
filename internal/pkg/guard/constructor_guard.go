// Package guard holds small helpers shared by domain value objects and entities.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor. Its zero value
// reports the struct as unconstructed, so a domain type embedding the guard can
// tell a literal `Order{}` apart from one returned by NewOrder.
//
//	type Code struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func (c Code) Validate() error {
//	    return c.guard.Validate(ErrCodeNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
