package commands

import (
	"context"

	"logistics/internal/core/domain/model/warehouse"
)

// CreateWarehouseCommandHandler persists new warehouses.
type CreateWarehouseCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

func NewCreateWarehouseCommandHandler(uowFactory WarehouseUoWFactory) CreateWarehouseCommandHandler {
	return CreateWarehouseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the warehouse in Operational status.
func (h CreateWarehouseCommandHandler) Handle(ctx context.Context, cmd CreateWarehouseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	w, err := warehouse.NewWarehouse(cmd.WarehouseID(), cmd.Name(), cmd.Location())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WarehouseRepository().Add(ctx, w); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
