package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrDeactivateWarehouseCommandIsNotConstructed = errors.New(
	"DeactivateWarehouseCommand must be created via NewDeactivateWarehouseCommand constructor",
)

// DeactivateWarehouseCommand takes a warehouse out of future allocation runs.
// Its agents and orders are kept.
type DeactivateWarehouseCommand struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeactivateWarehouseCommand(warehouseID kernel.UUID) (DeactivateWarehouseCommand, error) {
	if err := warehouseID.Validate(); err != nil {
		return DeactivateWarehouseCommand{}, err
	}

	return DeactivateWarehouseCommand{
		warehouseID: warehouseID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c DeactivateWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateWarehouseCommandIsNotConstructed)
}

func (c DeactivateWarehouseCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}
