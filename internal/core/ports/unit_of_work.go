package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command or allocation pair.
// A UnitOfWork is never shared between goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups repository writes into one database transaction.
//
// Repositories fetched between Begin and Commit/Rollback share the transaction;
// fetched at any other time they talk to the database directly. The allocation
// reader relies on the latter to load snapshots without holding a transaction open.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	// Commit fails when no transaction is open.
	Commit(ctx context.Context) error
	// Rollback fails when no transaction is open. Handlers defer it right after
	// Begin, so an error after a successful Commit is expected and ignored.
	Rollback(ctx context.Context) error

	WarehouseRepository() WarehouseRepository
	AgentRepository() AgentRepository
	OrderRepository() OrderRepository
	AssignmentRepository() AssignmentRepository
}
