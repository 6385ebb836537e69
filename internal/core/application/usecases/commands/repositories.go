// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/ports"
)

// ErrWarehouseIsNotOperational rejects agents and orders for an Inactive warehouse.
var ErrWarehouseIsNotOperational = errors.New("warehouse is not operational")

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	WarehouseRepoFactory interface {
		WarehouseRepository() ports.WarehouseRepository
	}

	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// WarehouseUoW manages transactions for warehouse-only operations.
	WarehouseUoW interface {
		TxManager
		WarehouseRepoFactory
	}

	WarehouseUoWFactory interface {
		Create() WarehouseUoW
	}

	// AgentUoW reads the owning warehouse and writes the agent in one transaction.
	AgentUoW interface {
		TxManager
		WarehouseRepoFactory
		AgentRepoFactory
	}

	AgentUoWFactory interface {
		Create() AgentUoW
	}

	// OrderUoW reads the owning warehouse and writes the order in one transaction.
	OrderUoW interface {
		TxManager
		WarehouseRepoFactory
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// Clock supplies check-in and creation timestamps.
	Clock interface {
		Now() time.Time
	}
)
