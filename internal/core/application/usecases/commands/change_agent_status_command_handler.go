package commands

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/pkg/errs"
)

type ChangeAgentStatusCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewChangeAgentStatusCommandHandler(uowFactory AgentUoWFactory) ChangeAgentStatusCommandHandler {
	return ChangeAgentStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the transition. Invalid transitions, such as releasing an agent
// that holds no assignment, surface the domain status error.
func (h ChangeAgentStatusCommandHandler) Handle(ctx context.Context, cmd ChangeAgentStatusCommand) error {
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

	repo := uow.AgentRepository()
	a, err := repo.Get(ctx, cmd.AgentID())
	if err != nil {
		return err
	}

	if err = apply(a, cmd.Change()); err != nil {
		return err
	}

	if err = repo.Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func apply(a *agent.Agent, change AgentStatusChange) error {
	switch change {
	case Release:
		return a.Release()
	case CheckOut:
		return a.CheckOut()
	default:
		return errs.NewValueIsInvalidErrorWithCause("status change", fmt.Errorf("%d is not a known change", change))
	}
}
