package warehouse

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status tells whether the allocation engine processes the warehouse.
type Status int

const (
	Unknown Status = iota
	Operational
	Inactive
)

func (s Status) Validate() error {
	switch s {
	case Operational, Inactive:
		return nil
	case Unknown:
		return errs.NewValueIsInvalidErrorWithCause("warehouse status is invalid", fmt.Errorf("%d is not a valid status", s))
	default:
		return errs.NewValueIsInvalidErrorWithCause("warehouse status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
}

func (s Status) String() string {
	switch s {
	case Operational:
		return "Operational"
	case Inactive:
		return "Inactive"
	case Unknown:
		return "Unknown"
	default:
		return "Unknown"
	}
}

// StatusFromString parses the persisted representation.
func StatusFromString(value string) (Status, error) {
	switch value {
	case Operational.String():
		return Operational, nil
	case Inactive.String():
		return Inactive, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("warehouse status is invalid", fmt.Errorf("%q is not a valid status", value))
	}
}

// Deactivate is allowed only from Operational.
func (s Status) Deactivate() (Status, error) {
	switch s {
	case Operational:
		return Inactive, nil
	case Unknown, Inactive:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"warehouse status is invalid",
			fmt.Errorf("%s is not a valid status to deactivate", s.String()),
		)
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"warehouse status is invalid",
			fmt.Errorf("%s is not a valid status to deactivate", s.String()),
		)
	}
}
