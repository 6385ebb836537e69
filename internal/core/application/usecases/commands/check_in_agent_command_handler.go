package commands

import (
	"context"
)

// CheckInAgentCommandHandler records a check-in. Agents of an Inactive warehouse
// cannot check in since no run would pick them up.
type CheckInAgentCommandHandler struct {
	uowFactory AgentUoWFactory
	clock      Clock
}

func NewCheckInAgentCommandHandler(uowFactory AgentUoWFactory, clock Clock) CheckInAgentCommandHandler {
	return CheckInAgentCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h CheckInAgentCommandHandler) Handle(ctx context.Context, cmd CheckInAgentCommand) error {
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

	agentRepo := uow.AgentRepository()
	a, err := agentRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	w, err := uow.WarehouseRepository().Get(ctx, a.WarehouseID())
	if err != nil {
		return err
	}
	if !w.IsOperational() {
		return ErrWarehouseIsNotOperational
	}

	if loc := cmd.Location(); loc != nil {
		if err = a.MoveTo(*loc); err != nil {
			return err
		}
	}

	if err = a.CheckIn(h.clock.Now()); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
