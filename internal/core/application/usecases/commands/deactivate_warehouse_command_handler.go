package commands

import (
	"context"
)

type DeactivateWarehouseCommandHandler struct {
	uowFactory WarehouseUoWFactory
}

func NewDeactivateWarehouseCommandHandler(uowFactory WarehouseUoWFactory) DeactivateWarehouseCommandHandler {
	return DeactivateWarehouseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle moves the warehouse to Inactive. Deactivating an Inactive warehouse fails
// with a status error from the domain.
func (h DeactivateWarehouseCommandHandler) Handle(ctx context.Context, cmd DeactivateWarehouseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WarehouseRepository()
	w, err := repo.Get(ctx, cmd.WarehouseID())
	if err != nil {
		return err
	}

	if err = w.Deactivate(); err != nil {
		return err
	}

	if err = repo.Update(ctx, w); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
