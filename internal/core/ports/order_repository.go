package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ClaimForAssignment stores the status and agent of an Assigned order only while the
	// stored order is still Pending or Deferred. Otherwise it returns an ObjectNotFound error.
	ClaimForAssignment(ctx context.Context, aggregate *order.Order) error

	// GetEligibleByWarehouse returns the Pending and Deferred orders of a warehouse,
	// oldest first with ties broken by id.
	GetEligibleByWarehouse(ctx context.Context, warehouseID kernel.UUID) ([]*order.Order, error)

	// DeferAll moves the given orders to Deferred in one statement. Orders that are no
	// longer Pending or Deferred are left untouched. It returns the number of rows changed.
	DeferAll(ctx context.Context, ids []kernel.UUID) (int64, error)
}
