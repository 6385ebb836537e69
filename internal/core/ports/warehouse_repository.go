// Package ports defines the persistence contracts of the logistics domain.
// Adapters implement them; the application layer depends only on these interfaces.
package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/warehouse"
)

// WarehouseRepository defines the persistence contract for warehouse aggregates.
type WarehouseRepository interface {
	// Add persists a new warehouse.
	Add(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Update persists changes to an existing warehouse.
	Update(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Get retrieves a warehouse by id or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error)

	// GetAllOperational returns every Operational warehouse ordered by id,
	// so allocation runs visit warehouses in a stable order.
	GetAllOperational(ctx context.Context) ([]*warehouse.Warehouse, error)
}
