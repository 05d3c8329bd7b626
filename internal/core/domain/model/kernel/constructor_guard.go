package kernel

import "errors"

// ErrDefaultConstructorGuard is the default error returned by
// ConstructorGuard.Validate when a nil error is passed as the validation
// error. This ensures validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. By embedding a ConstructorGuard in a
// struct you can detect whether the struct was properly initialized through its
// constructor or created as a zero value, keeping domain invariants intact.
//
// Example usage:
//
//	type Money struct {
//	    cents int64
//	    guard ConstructorGuard
//	}
//
//	func NewMoney(cents int64) (Money, error) {
//	    if cents < 0 {
//	        return Money{}, errors.New("amount cannot be negative")
//	    }
//	    return Money{cents: cents, guard: NewConstructorGuard()}, nil
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of domain objects so they can be
// distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// designated constructor. If the object is a zero value, the provided
// validationError is returned; if validationError is nil,
// ErrDefaultConstructorGuard is returned instead.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
