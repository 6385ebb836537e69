package commands

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrChangeAgentStatusCommandIsNotConstructed = errors.New(
	"ChangeAgentStatusCommand must be created via NewChangeAgentStatusCommand constructor",
)

// AgentStatusChange names a transition requested outside allocation runs.
type AgentStatusChange int

const (
	// Release returns an Assigned agent to CheckedIn after a delivery.
	Release AgentStatusChange = iota + 1
	// CheckOut takes a CheckedIn agent Offline at the end of a shift.
	CheckOut
)

func (c AgentStatusChange) String() string {
	switch c {
	case Release:
		return "release"
	case CheckOut:
		return "check out"
	default:
		return "unknown"
	}
}

// ChangeAgentStatusCommand releases or checks out an agent.
type ChangeAgentStatusCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	change  AgentStatusChange

	guard guard.ConstructorGuard
}

func NewChangeAgentStatusCommand(agentID kernel.UUID, change AgentStatusChange) (ChangeAgentStatusCommand, error) {
	command := ChangeAgentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setChange(change),
	); err != nil {
		return ChangeAgentStatusCommand{}, err
	}

	return command, nil
}

func (c ChangeAgentStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeAgentStatusCommandIsNotConstructed)
}

func (c ChangeAgentStatusCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c ChangeAgentStatusCommand) Change() AgentStatusChange {
	return c.change
}

func (c *ChangeAgentStatusCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.agentID = id
	return nil
}

func (c *ChangeAgentStatusCommand) setChange(change AgentStatusChange) error {
	switch change {
	case Release, CheckOut:
		c.change = change
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status change", fmt.Errorf("%d is not a known change", change))
	}
}
