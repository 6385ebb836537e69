package commands

import (
	"context"

	"logistics/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Orders are stamped with the handler clock so allocation runs see them in arrival order.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle checks that the warehouse is Operational and stores the order as Pending.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	w, err := uow.WarehouseRepository().Get(ctx, cmd.WarehouseID())
	if err != nil {
		return err
	}
	if !w.IsOperational() {
		return ErrWarehouseIsNotOperational
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.WarehouseID(),
		cmd.CustomerName(),
		cmd.Address(),
		cmd.Location(),
		h.clock.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
