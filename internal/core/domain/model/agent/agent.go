package agent

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// Domain errors for agent operations.
var (
	ErrNameIsRequired  = errs.NewValueIsRequiredError("name")
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrAgentIsNotConstructed is returned when using an improperly initialized Agent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent constructor")
	// ErrCheckInTimeIsRequired is returned when a check-in carries a zero timestamp.
	ErrCheckInTimeIsRequired = errs.NewValueIsRequiredError("check-in time")
)

// Agent is a delivery agent attached to one warehouse. It is an aggregate root.
//
// An agent is created Offline, becomes CheckedIn at its daily check-in and Assigned
// once the allocation engine pairs it with an order. Only CheckedIn agents enter
// the agent pool of a run.
type Agent struct {
	id          kernel.UUID
	name        string
	phone       string
	warehouseID kernel.UUID
	location    kernel.Location
	status      Status
	checkedInAt *time.Time
	guard       guard.ConstructorGuard
}

// NewAgent creates an Offline agent positioned at location, usually its warehouse.
//
// Example:
//
//	location, _ := kernel.NewLocation(28.7041, 77.1025)
//	a, err := agent.NewAgent(kernel.NewUUID(), "Ravi", "+91-98100-00000", warehouseID, location)
func NewAgent(id kernel.UUID, name, phone string, warehouseID kernel.UUID, location kernel.Location) (*Agent, error) {
	a := &Agent{
		status: Offline,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
		a.setWarehouseID(warehouseID),
		a.setLocation(location),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAgent reconstructs an Agent from persistent storage.
func RestoreAgent(
	id kernel.UUID,
	name, phone string,
	warehouseID kernel.UUID,
	location kernel.Location,
	status Status,
	checkedInAt *time.Time,
) (*Agent, error) {
	a := &Agent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
		a.setWarehouseID(warehouseID),
		a.setLocation(location),
		a.setStatus(status),
	); err != nil {
		return nil, err
	}

	if checkedInAt != nil {
		at := checkedInAt.UTC()
		a.checkedInAt = &at
	}

	return a, nil
}

// IsEqual compares agents by id.
func (a *Agent) IsEqual(other *Agent) bool {
	if other == nil {
		return false
	}
	return a.id.IsEqual(other.id)
}

// Validate returns ErrAgentIsNotConstructed for nil or zero-value agents.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

func (a *Agent) ID() kernel.UUID {
	return a.id
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Phone() string {
	return a.phone
}

func (a *Agent) WarehouseID() kernel.UUID {
	return a.warehouseID
}

// Location is the position used for distance computation.
func (a *Agent) Location() kernel.Location {
	return a.location
}

func (a *Agent) Status() Status {
	return a.status
}

// CheckedInAt returns the last check-in time or nil if the agent never checked in.
func (a *Agent) CheckedInAt() *time.Time {
	if a.checkedInAt == nil {
		return nil
	}
	at := *a.checkedInAt
	return &at
}

// IsAvailable reports whether the agent can enter an allocation pool.
func (a *Agent) IsAvailable() bool {
	return a.status == CheckedIn
}

// CheckIn marks the agent available and records the check-in time.
func (a *Agent) CheckIn(at time.Time) error {
	if at.IsZero() {
		return ErrCheckInTimeIsRequired
	}

	newStatus, err := a.status.CheckIn()
	if err != nil {
		return err
	}

	utc := at.UTC()
	a.status = newStatus
	a.checkedInAt = &utc
	return nil
}

func (a *Agent) CheckOut() error {
	newStatus, err := a.status.CheckOut()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// Assign marks the agent as busy with an assignment.
func (a *Agent) Assign() error {
	newStatus, err := a.status.Assign()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// Release frees an Assigned agent after delivery.
func (a *Agent) Release() error {
	newStatus, err := a.status.Release()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// MoveTo updates the agent position, e.g. at check-in.
func (a *Agent) MoveTo(location kernel.Location) error {
	return a.setLocation(location)
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}

	a.name = name
	return nil
}

func (a *Agent) setPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return ErrPhoneIsRequired
	}

	a.phone = phone
	return nil
}

func (a *Agent) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	a.warehouseID = id
	return nil
}

func (a *Agent) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	a.location = location
	return nil
}

func (a *Agent) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	a.status = status
	return nil
}
