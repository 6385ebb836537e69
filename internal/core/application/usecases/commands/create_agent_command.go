package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateAgentCommandIsNotConstructed = errors.New(
		"CreateAgentCommand must be created via NewCreateAgentCommand constructor",
	)
	ErrAgentNameIsRequired  = errors.New("agent name is required")
	ErrAgentPhoneIsRequired = errors.New("agent phone is required")
)

// CreateAgentCommand registers a delivery agent with a warehouse. The agent starts
// Offline and joins allocation runs only after checking in.
//
// Example:
//
//	cmd, err := NewCreateAgentCommand(kernel.NewUUID(), "Asha", "+911234567890", warehouseID, loc)
//	if err != nil {
//	    return err
//	}
//	err = NewCreateAgentCommandHandler(uowFactory).Handle(ctx, cmd)
type CreateAgentCommand struct { //nolint:recvcheck //using for validation
	agentID     kernel.UUID
	name        string
	phone       string
	warehouseID kernel.UUID
	location    kernel.Location

	guard guard.ConstructorGuard
}

func NewCreateAgentCommand(
	agentID kernel.UUID,
	name, phone string,
	warehouseID kernel.UUID,
	location kernel.Location,
) (CreateAgentCommand, error) {
	command := CreateAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setName(name),
		command.setPhone(phone),
		command.setWarehouseID(warehouseID),
		command.setLocation(location),
	); err != nil {
		return CreateAgentCommand{}, err
	}

	return command, nil
}

func (c CreateAgentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAgentCommandIsNotConstructed)
}

func (c CreateAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c CreateAgentCommand) Name() string {
	return c.name
}

func (c CreateAgentCommand) Phone() string {
	return c.phone
}

func (c CreateAgentCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c CreateAgentCommand) Location() kernel.Location {
	return c.location
}

func (c *CreateAgentCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.agentID = id
	return nil
}

func (c *CreateAgentCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrAgentNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateAgentCommand) setPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return ErrAgentPhoneIsRequired
	}

	c.phone = phone
	return nil
}

func (c *CreateAgentCommand) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.warehouseID = id
	return nil
}

func (c *CreateAgentCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
