package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCheckInAgentCommandIsNotConstructed = errors.New(
	"CheckInAgentCommand must be created via NewCheckInAgentCommand constructor",
)

// CheckInAgentCommand makes an agent available for the next allocation run.
// A reported location replaces the stored one; nil keeps it.
type CheckInAgentCommand struct { //nolint:recvcheck //using for validation
	agentID  kernel.UUID
	location *kernel.Location

	guard guard.ConstructorGuard
}

func NewCheckInAgentCommand(agentID kernel.UUID, location *kernel.Location) (CheckInAgentCommand, error) {
	command := CheckInAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setLocation(location),
	); err != nil {
		return CheckInAgentCommand{}, err
	}

	return command, nil
}

func (c CheckInAgentCommand) Validate() error {
	return c.guard.Validate(ErrCheckInAgentCommandIsNotConstructed)
}

func (c CheckInAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Location returns the reported position, or nil when none was sent.
func (c CheckInAgentCommand) Location() *kernel.Location {
	if c.location == nil {
		return nil
	}
	loc := *c.location
	return &loc
}

func (c *CheckInAgentCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.agentID = id
	return nil
}

func (c *CheckInAgentCommand) setLocation(location *kernel.Location) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	loc := *location
	c.location = &loc
	return nil
}
