package commands

import (
	"context"

	"logistics/internal/core/domain/model/agent"
)

// CreateAgentCommandHandler adds agents to Operational warehouses only.
type CreateAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewCreateAgentCommandHandler(uowFactory AgentUoWFactory) CreateAgentCommandHandler {
	return CreateAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateAgentCommandHandler) Handle(ctx context.Context, cmd CreateAgentCommand) error {
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

	a, err := agent.NewAgent(cmd.AgentID(), cmd.Name(), cmd.Phone(), cmd.WarehouseID(), cmd.Location())
	if err != nil {
		return err
	}

	if err = uow.AgentRepository().Add(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
