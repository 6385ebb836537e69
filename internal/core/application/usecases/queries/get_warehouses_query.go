package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetWarehousesQueryIsNotConstructed = errors.New(
	"GetWarehousesQuery must be created via NewGetWarehousesQuery constructor",
)

// GetWarehousesQuery lists every warehouse with agent and open-order counts.
type GetWarehousesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetWarehousesQuery() GetWarehousesQuery {
	return GetWarehousesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetWarehousesQuery) Validate() error {
	return q.guard.Validate(ErrGetWarehousesQueryIsNotConstructed)
}

// GetWarehousesQueryResponse is the read model of one warehouse. EligibleOrders counts
// the Pending and Deferred orders the next run will try to allocate.
type GetWarehousesQueryResponse struct {
	ID              kernel.UUID
	Name            string
	Location        kernel.Location
	Status          string
	CheckedInAgents int
	EligibleOrders  int
}
