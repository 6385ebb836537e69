// Package mocks holds testify mocks of the ports interfaces shared by the
// application layer tests.
package mocks

import (
	"context"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/assignment"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/warehouse"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var (
	_ ports.WarehouseRepository  = (*WarehouseRepository)(nil)
	_ ports.AgentRepository      = (*AgentRepository)(nil)
	_ ports.OrderRepository      = (*OrderRepository)(nil)
	_ ports.AssignmentRepository = (*AssignmentRepository)(nil)
	_ ports.UnitOfWork           = (*UnitOfWork)(nil)
)

type WarehouseRepository struct{ mock.Mock }

func (m *WarehouseRepository) Add(ctx context.Context, w *warehouse.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *WarehouseRepository) Update(ctx context.Context, w *warehouse.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *WarehouseRepository) Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Warehouse), args.Error(1)
}

func (m *WarehouseRepository) GetAllOperational(ctx context.Context) ([]*warehouse.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*warehouse.Warehouse), args.Error(1)
}

type AgentRepository struct{ mock.Mock }

func (m *AgentRepository) Add(ctx context.Context, a *agent.Agent) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AgentRepository) Update(ctx context.Context, a *agent.Agent) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AgentRepository) ClaimForAssignment(ctx context.Context, a *agent.Agent) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

func (m *AgentRepository) GetCheckedInByWarehouse(ctx context.Context, warehouseID kernel.UUID) ([]*agent.Agent, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agent.Agent), args.Error(1)
}

type OrderRepository struct{ mock.Mock }

func (m *OrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *OrderRepository) ClaimForAssignment(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *OrderRepository) GetEligibleByWarehouse(ctx context.Context, warehouseID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *OrderRepository) DeferAll(ctx context.Context, ids []kernel.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

type AssignmentRepository struct{ mock.Mock }

func (m *AssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

// UnitOfWork is a mock unit of work handing out the repository mocks it holds.
// Unset repositories are returned as nil interfaces.
type UnitOfWork struct {
	mock.Mock

	Warehouses  *WarehouseRepository
	Agents      *AgentRepository
	Orders      *OrderRepository
	Assignments *AssignmentRepository
}

func (m *UnitOfWork) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *UnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *UnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *UnitOfWork) WarehouseRepository() ports.WarehouseRepository {
	if m.Warehouses == nil {
		return nil
	}
	return m.Warehouses
}

func (m *UnitOfWork) AgentRepository() ports.AgentRepository {
	if m.Agents == nil {
		return nil
	}
	return m.Agents
}

func (m *UnitOfWork) OrderRepository() ports.OrderRepository {
	if m.Orders == nil {
		return nil
	}
	return m.Orders
}

func (m *UnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	if m.Assignments == nil {
		return nil
	}
	return m.Assignments
}

// UnitOfWorkFactory returns the same mock unit of work on every Create.
type UnitOfWorkFactory struct {
	UoW *UnitOfWork
}

func (f UnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.UoW
}
