package allocation

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

type (
	// AssignmentUoW is the transaction an assignment is written in.
	AssignmentUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		AgentRepository() ports.AgentRepository
		OrderRepository() ports.OrderRepository
		AssignmentRepository() ports.AssignmentRepository
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}
)

// AssignmentWriter persists the outcome of the matcher.
//
// Each match is written in its own transaction: the assignment row, the agent moving to
// Assigned and the order moving to Assigned commit together or not at all. Both status
// changes are conditional on the stored status still matching the run snapshot, so an
// agent that checked out mid-run makes the write fail instead of being reassigned.
type AssignmentWriter struct {
	uowFactory AssignmentUoWFactory
	orders     ports.OrderRepository
}

// NewAssignmentWriter takes the factory for per-match transactions and an order repository
// bound outside any transaction for deferrals.
func NewAssignmentWriter(uowFactory AssignmentUoWFactory, orders ports.OrderRepository) *AssignmentWriter {
	return &AssignmentWriter{
		uowFactory: uowFactory,
		orders:     orders,
	}
}

// Write stores m atomically. Any failure is returned as *AssignmentPersistError after
// the transaction has been rolled back.
func (w *AssignmentWriter) Write(ctx context.Context, m services.Match) (err error) {
	orderID, agentID := m.Order.ID(), m.Agent.ID()
	defer func() {
		if err != nil {
			err = NewAssignmentPersistError(orderID, agentID, err)
		}
	}()

	uow := w.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AssignmentRepository().Add(ctx, m.Assignment); err != nil {
		return err
	}

	if err = uow.AgentRepository().ClaimForAssignment(ctx, m.Agent); err != nil {
		return err
	}

	if err = uow.OrderRepository().ClaimForAssignment(ctx, m.Order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// Defer marks the given orders Deferred in a single statement outside any assignment
// transaction and returns how many rows changed.
func (w *AssignmentWriter) Defer(ctx context.Context, orderIDs []kernel.UUID) (int, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}

	n, err := w.orders.DeferAll(ctx, orderIDs)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
