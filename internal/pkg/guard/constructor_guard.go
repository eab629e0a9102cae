// Package guard enforces constructor usage for domain objects.
// A zero-value ConstructorGuard marks an object that bypassed its constructor,
// which lets Validate methods reject improperly built instances.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no custom error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its owner was built through a constructor.
// Embed one in a domain object and set it with NewConstructorGuard; the zero
// value fails validation.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil when the guard was set by NewConstructorGuard.
// For a zero-value guard it returns notConstructed, or
// ErrDefaultConstructorGuard when notConstructed is nil.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.constructed {
		return nil
	}
	if notConstructed == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructed
}
