package allocation

import (
	"context"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/warehouse"
	"logistics/internal/core/ports"
)

// Snapshot is what one warehouse looks like at the start of its unit of work.
type Snapshot struct {
	Warehouse *warehouse.Warehouse
	Agents    []*agent.Agent
	Orders    []*order.Order
}

// WarehouseAggregator reads the data an allocation run works on.
type WarehouseAggregator struct {
	warehouses ports.WarehouseRepository
	agents     ports.AgentRepository
	orders     ports.OrderRepository
}

func NewWarehouseAggregator(
	warehouses ports.WarehouseRepository,
	agents ports.AgentRepository,
	orders ports.OrderRepository,
) *WarehouseAggregator {
	return &WarehouseAggregator{
		warehouses: warehouses,
		agents:     agents,
		orders:     orders,
	}
}

// OperationalWarehouses lists the warehouses a run visits, ordered by id.
func (a *WarehouseAggregator) OperationalWarehouses(ctx context.Context) ([]*warehouse.Warehouse, error) {
	warehouses, err := a.warehouses.GetAllOperational(ctx)
	if err != nil {
		return nil, &DataFetchError{Resource: "warehouses", Err: err}
	}
	return warehouses, nil
}

// Snapshot fetches the checked-in agents and the eligible orders of w.
// Failures come back as *DataFetchError.
func (a *WarehouseAggregator) Snapshot(ctx context.Context, w *warehouse.Warehouse) (Snapshot, error) {
	agents, err := a.agents.GetCheckedInByWarehouse(ctx, w.ID())
	if err != nil {
		return Snapshot{}, NewDataFetchError(w.ID(), "agents", err)
	}

	orders, err := a.EligibleOrders(ctx, w)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Warehouse: w, Agents: agents, Orders: orders}, nil
}

// EligibleOrders fetches only the Pending and Deferred orders of w.
func (a *WarehouseAggregator) EligibleOrders(ctx context.Context, w *warehouse.Warehouse) ([]*order.Order, error) {
	orders, err := a.orders.GetEligibleByWarehouse(ctx, w.ID())
	if err != nil {
		return nil, NewDataFetchError(w.ID(), "orders", err)
	}
	return orders, nil
}
