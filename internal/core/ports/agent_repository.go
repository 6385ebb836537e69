package ports

import (
	"context"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for agent aggregates.
type AgentRepository interface {
	Add(ctx context.Context, aggregate *agent.Agent) error
	Update(ctx context.Context, aggregate *agent.Agent) error
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// ClaimForAssignment stores aggregate, already moved to Assigned, only while the
	// stored agent is still CheckedIn. Only the status column is written. An agent that
	// checked out or was claimed since it was read yields an ObjectNotFound error.
	ClaimForAssignment(ctx context.Context, aggregate *agent.Agent) error

	// GetCheckedInByWarehouse returns the CheckedIn agents of one warehouse, ordered by id.
	GetCheckedInByWarehouse(ctx context.Context, warehouseID kernel.UUID) ([]*agent.Agent, error)
}
