package order

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status represents the lifecycle state of an order inside the allocation cycle.
//
// State transitions:
//
//	Pending ──┬──> Assigned
//	          │        ^
//	          v        │
//	       Deferred ───┘
//	   (Deferred -> Deferred when a later run finds no agent again)
//
// Assigned is terminal for the allocation engine.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status. Pending orders are picked up by the next run.
	Pending

	// Assigned indicates an agent was matched and an assignment was recorded.
	Assigned

	// Deferred indicates no agent was available (or persisting failed, or the run timed out).
	// Deferred orders are eligible again in the next run.
	Deferred
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Assigned: "Assigned",
		Deferred: "Deferred",
	}
}

// Validate checks if the Status value is one of Pending, Assigned, Deferred.
// Used on values coming from the database or the API.
func (s Status) Validate() error {
	switch s {
	case Pending, Assigned, Deferred:
		return nil
	case Unknown:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	default:
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
}

// String implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses the persisted representation.
func StatusFromString(value string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == value && status != Unknown {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", value))
}

// IsEligible reports whether an order in this status is picked up by an allocation run.
func (s Status) IsEligible() bool {
	switch s {
	case Pending, Deferred:
		return true
	case Unknown, Assigned:
		return false
	default:
		return false
	}
}

// ValidateCanHaveAgent validates the consistency between status and agent assignment:
// Assigned orders must reference an agent, all other orders must not.
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	if hasAgent && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an agent", s.String()),
		)
	}

	if !hasAgent && s == Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no agent", s.String()),
		)
	}

	return nil
}

// Assign transitions Pending or Deferred to Assigned.
func (s Status) Assign() (Status, error) {
	switch s {
	case Pending, Deferred:
		return Assigned, nil
	case Unknown, Assigned:
		return Unknown, s.transitionError("assign")
	default:
		return Unknown, s.transitionError("assign")
	}
}

// Defer transitions Pending or Deferred to Deferred.
func (s Status) Defer() (Status, error) {
	switch s {
	case Pending, Deferred:
		return Deferred, nil
	case Unknown, Assigned:
		return Unknown, s.transitionError("defer")
	default:
		return Unknown, s.transitionError("defer")
	}
}

func (s Status) transitionError(action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s.String(), action),
	)
}
