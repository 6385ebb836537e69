// Package guard provides ConstructorGuard, a marker embedded in value objects, commands and
// queries so that zero values created without their constructor fail validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object was not built
// by its constructor and the caller passed no specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing object was created by its constructor.
//
// Example:
//
//	type ReleaseAgentCommand struct {
//	    agentID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c ReleaseAgentCommand) Validate() error {
//	    return c.guard.Validate(ErrReleaseAgentCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
