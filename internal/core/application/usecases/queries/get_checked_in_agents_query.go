package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetCheckedInAgentsQueryIsNotConstructed = errors.New(
	"GetCheckedInAgentsQuery must be created via NewGetCheckedInAgentsQuery constructor",
)

// GetCheckedInAgentsQuery lists the agents that the next allocation run will consider.
type GetCheckedInAgentsQuery struct {
	warehouseID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCheckedInAgentsQuery optionally narrows the listing to one warehouse.
func NewGetCheckedInAgentsQuery(warehouseID *kernel.UUID) (GetCheckedInAgentsQuery, error) {
	if warehouseID != nil {
		if err := warehouseID.Validate(); err != nil {
			return GetCheckedInAgentsQuery{}, err
		}
	}

	return GetCheckedInAgentsQuery{warehouseID: warehouseID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCheckedInAgentsQuery) Validate() error {
	return q.guard.Validate(ErrGetCheckedInAgentsQueryIsNotConstructed)
}

func (q GetCheckedInAgentsQuery) WarehouseID() *kernel.UUID {
	return q.warehouseID
}

// GetCheckedInAgentsQueryResponse is the read model of one available agent.
type GetCheckedInAgentsQueryResponse struct {
	ID          kernel.UUID
	Name        string
	Phone       string
	WarehouseID kernel.UUID
	Location    kernel.Location
	CheckedInAt time.Time
}
