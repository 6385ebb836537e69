// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	DefaultAssignmentsLimit = 100
	MaxAssignmentsLimit     = 1000
)

var ErrGetAssignmentsQueryIsNotConstructed = errors.New(
	"GetAssignmentsQuery must be created via NewGetAssignmentsQuery constructor",
)

// GetAssignmentsQuery lists assignments, newest first, optionally for one warehouse.
//
// Example:
//
//	query, err := NewGetAssignmentsQuery(nil, 50)
//	if err != nil {
//	    return err
//	}
//	assignments, err := NewGetAssignmentsQueryHandler(db).Handle(ctx, query)
type GetAssignmentsQuery struct {
	warehouseID *kernel.UUID
	limit       int

	guard guard.ConstructorGuard
}

// NewGetAssignmentsQuery builds the query. A limit of 0 means DefaultAssignmentsLimit.
func NewGetAssignmentsQuery(warehouseID *kernel.UUID, limit int) (GetAssignmentsQuery, error) {
	if warehouseID != nil {
		if err := warehouseID.Validate(); err != nil {
			return GetAssignmentsQuery{}, err
		}
	}
	if limit == 0 {
		limit = DefaultAssignmentsLimit
	}
	if limit < 1 || limit > MaxAssignmentsLimit {
		return GetAssignmentsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxAssignmentsLimit)
	}

	return GetAssignmentsQuery{
		warehouseID: warehouseID,
		limit:       limit,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentsQueryIsNotConstructed)
}

func (q GetAssignmentsQuery) WarehouseID() *kernel.UUID {
	return q.warehouseID
}

func (q GetAssignmentsQuery) Limit() int {
	return q.limit
}

// GetAssignmentsQueryResponse is one assignment joined with the names of the
// agent, customer and warehouse involved.
type GetAssignmentsQueryResponse struct {
	AssignmentID     kernel.UUID
	OrderID          kernel.UUID
	AgentID          kernel.UUID
	WarehouseID      kernel.UUID
	AgentName        string
	CustomerName     string
	WarehouseName    string
	DistanceKm       float64
	EstimatedMinutes int
	CreatedAt        time.Time
}
