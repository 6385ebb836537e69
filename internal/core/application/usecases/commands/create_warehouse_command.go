package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateWarehouseCommandIsNotConstructed = errors.New(
		"CreateWarehouseCommand must be created via NewCreateWarehouseCommand constructor",
	)
	ErrWarehouseNameIsRequired = errors.New("warehouse name is required")
)

// CreateWarehouseCommand registers a new Operational warehouse.
//
// Example:
//
//	loc, _ := kernel.NewLocation(19.0760, 72.8777)
//	cmd, err := NewCreateWarehouseCommand(kernel.NewUUID(), "Mumbai Central", loc)
//	if err != nil {
//	    return fmt.Errorf("invalid warehouse data: %w", err)
//	}
//
//	handler := NewCreateWarehouseCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create warehouse: %w", err)
//	}
type CreateWarehouseCommand struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	name        string
	location    kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateWarehouseCommand validates the id, a non-blank name and the location.
func NewCreateWarehouseCommand(warehouseID kernel.UUID, name string, location kernel.Location) (CreateWarehouseCommand, error) {
	command := CreateWarehouseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setWarehouseID(warehouseID),
		command.setName(name),
		command.setLocation(location),
	); err != nil {
		return CreateWarehouseCommand{}, err
	}

	return command, nil
}

func (c CreateWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrCreateWarehouseCommandIsNotConstructed)
}

func (c CreateWarehouseCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c CreateWarehouseCommand) Name() string {
	return c.name
}

func (c CreateWarehouseCommand) Location() kernel.Location {
	return c.location
}

func (c *CreateWarehouseCommand) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.warehouseID = id
	return nil
}

func (c *CreateWarehouseCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrWarehouseNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateWarehouseCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
