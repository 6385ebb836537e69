package agent

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Status is the availability of an agent.
//
//	Offline ──CheckIn──> CheckedIn ──Assign──> Assigned
//	   ^                   │   ^                  │
//	   └─────CheckOut──────┘   └─────Release──────┘
type Status int

const (
	Unknown Status = iota
	Offline
	CheckedIn
	Assigned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Offline:   "Offline",
		CheckedIn: "CheckedIn",
		Assigned:  "Assigned",
	}
}

func (s Status) Validate() error {
	switch s {
	case Offline, CheckedIn, Assigned:
		return nil
	case Unknown:
		return errs.NewValueIsInvalidErrorWithCause("agent status is invalid", fmt.Errorf("%d is not a valid status", s))
	default:
		return errs.NewValueIsInvalidErrorWithCause("agent status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
}

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

	return Unknown, errs.NewValueIsInvalidErrorWithCause("agent status is invalid", fmt.Errorf("%q is not a valid status", value))
}

// CheckIn is allowed from Offline and CheckedIn (repeated daily check-in).
// An Assigned agent has to be released first.
func (s Status) CheckIn() (Status, error) {
	switch s {
	case Offline, CheckedIn:
		return CheckedIn, nil
	case Unknown, Assigned:
		return Unknown, s.transitionError("check in")
	default:
		return Unknown, s.transitionError("check in")
	}
}

func (s Status) CheckOut() (Status, error) {
	switch s {
	case CheckedIn:
		return Offline, nil
	case Unknown, Offline, Assigned:
		return Unknown, s.transitionError("check out")
	default:
		return Unknown, s.transitionError("check out")
	}
}

func (s Status) Assign() (Status, error) {
	switch s {
	case CheckedIn:
		return Assigned, nil
	case Unknown, Offline, Assigned:
		return Unknown, s.transitionError("assign")
	default:
		return Unknown, s.transitionError("assign")
	}
}

// Release returns an agent to the pool after a delivery.
func (s Status) Release() (Status, error) {
	switch s {
	case Assigned:
		return CheckedIn, nil
	case Unknown, Offline, CheckedIn:
		return Unknown, s.transitionError("release")
	default:
		return Unknown, s.transitionError("release")
	}
}

func (s Status) transitionError(action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"agent status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s.String(), action),
	)
}
