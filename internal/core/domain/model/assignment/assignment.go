package assignment

import (
	"errors"
	"fmt"
	"math"
	"time"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	// HandlingMinutes is the fixed time spent per delivery.
	HandlingMinutes = 30
	// TravelMinutesPerKm converts the assignment cost into travel time.
	TravelMinutesPerKm = 5
)

var (
	// ErrAssignmentIsNotConstructed is returned when using an improperly initialized Assignment.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
	// ErrWarehouseMismatch is returned when the order and the agent belong to different warehouses.
	ErrWarehouseMismatch = errs.NewValueIsInvalidError("order and agent belong to different warehouses")
)

// Assignment records that an order was handed to an agent. It is created exactly once
// per successful match and never mutated afterwards.
type Assignment struct {
	id               kernel.UUID
	orderID          kernel.UUID
	agentID          kernel.UUID
	warehouseID      kernel.UUID
	cost             float64
	estimatedMinutes int
	createdAt        time.Time
	guard            guard.ConstructorGuard
}

// NewAssignment pairs o with a. cost is the distance between them in kilometres;
// the estimated delivery time is derived from it.
func NewAssignment(id kernel.UUID, o *order.Order, a *agent.Agent, cost float64, createdAt time.Time) (*Assignment, error) {
	if err := errors.Join(o.Validate(), a.Validate()); err != nil {
		return nil, err
	}

	if !o.WarehouseID().IsEqual(a.WarehouseID()) {
		return nil, ErrWarehouseMismatch
	}

	return RestoreAssignment(id, o.ID(), a.ID(), o.WarehouseID(), cost, EstimateMinutes(cost), createdAt)
}

// RestoreAssignment reconstructs an Assignment from persistent storage.
func RestoreAssignment(
	id, orderID, agentID, warehouseID kernel.UUID,
	cost float64,
	estimatedMinutes int,
	createdAt time.Time,
) (*Assignment, error) {
	as := &Assignment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		agentID.Validate(),
		warehouseID.Validate(),
		validateCost(cost),
		validateMinutes(estimatedMinutes),
	); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created at")
	}

	as.id = id
	as.orderID = orderID
	as.agentID = agentID
	as.warehouseID = warehouseID
	as.cost = cost
	as.estimatedMinutes = estimatedMinutes
	as.createdAt = createdAt.UTC()
	return as, nil
}

// EstimateMinutes returns the handling time plus travel time for a distance in km,
// rounded up to whole minutes.
func EstimateMinutes(km float64) int {
	return HandlingMinutes + int(math.Ceil(km*TravelMinutesPerKm))
}

func (as *Assignment) Validate() error {
	if as == nil {
		return ErrAssignmentIsNotConstructed
	}
	return as.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (as *Assignment) ID() kernel.UUID {
	return as.id
}

func (as *Assignment) OrderID() kernel.UUID {
	return as.orderID
}

func (as *Assignment) AgentID() kernel.UUID {
	return as.agentID
}

func (as *Assignment) WarehouseID() kernel.UUID {
	return as.warehouseID
}

// Cost is the Haversine distance in kilometres between the order and the agent.
func (as *Assignment) Cost() float64 {
	return as.cost
}

func (as *Assignment) EstimatedMinutes() int {
	return as.estimatedMinutes
}

func (as *Assignment) CreatedAt() time.Time {
	return as.createdAt
}

func validateCost(cost float64) error {
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cost", fmt.Errorf("%v is not a non-negative distance", cost))
	}
	return nil
}

func validateMinutes(minutes int) error {
	if minutes < HandlingMinutes {
		return errs.NewValueIsInvalidErrorWithCause("estimated minutes",
			fmt.Errorf("%d is less than the %d minute handling time", minutes, HandlingMinutes))
	}
	return nil
}
