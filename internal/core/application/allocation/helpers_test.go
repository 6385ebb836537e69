package allocation_test

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"logistics/internal/core/application/allocation"
	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/warehouse"
	"logistics/internal/core/ports/mocks"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var runStart = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type uowFactoryFunc func() allocation.AssignmentUoW

func (f uowFactoryFunc) Create() allocation.AssignmentUoW {
	return f()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func kmNorth(km float64) float64 {
	return km / kernel.EarthRadiusKm * 180 / math.Pi
}

func location(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func newWarehouse(t *testing.T, name string) *warehouse.Warehouse {
	t.Helper()
	w, err := warehouse.NewWarehouse(kernel.NewUUID(), name, location(t, 10, 20))
	require.NoError(t, err)
	return w
}

func newAgent(t *testing.T, w *warehouse.Warehouse, kmFromOrigin float64) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), "agent", "+91", w.ID(), location(t, 10+kmNorth(kmFromOrigin), 20))
	require.NoError(t, err)
	require.NoError(t, a.CheckIn(runStart.Add(-time.Hour)))
	return a
}

func newOrder(t *testing.T, w *warehouse.Warehouse, kmFromOrigin float64, age time.Duration) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), w.ID(), "customer", "address", location(t, 10+kmNorth(kmFromOrigin), 20), runStart.Add(-age))
	require.NoError(t, err)
	return o
}

// fixture wires an engine to fresh mocks.
type fixture struct {
	clock       *fakeClock
	warehouses  *mocks.WarehouseRepository
	agents      *mocks.AgentRepository
	orders      *mocks.OrderRepository
	uow         *mocks.UnitOfWork
	assignments *mocks.AssignmentRepository
	txAgents    *mocks.AgentRepository
	txOrders    *mocks.OrderRepository
	engine      *allocation.Engine
}

func newFixture(cfg allocation.EngineConfig) *fixture {
	f := &fixture{
		clock:       newFakeClock(runStart),
		warehouses:  &mocks.WarehouseRepository{},
		agents:      &mocks.AgentRepository{},
		orders:      &mocks.OrderRepository{},
		assignments: &mocks.AssignmentRepository{},
		txAgents:    &mocks.AgentRepository{},
		txOrders:    &mocks.OrderRepository{},
	}
	f.uow = &mocks.UnitOfWork{
		Agents:      f.txAgents,
		Orders:      f.txOrders,
		Assignments: f.assignments,
	}

	aggregator := allocation.NewWarehouseAggregator(f.warehouses, f.agents, f.orders)
	writer := allocation.NewAssignmentWriter(uowFactoryFunc(func() allocation.AssignmentUoW { return f.uow }), f.orders)
	f.engine = allocation.NewEngine(aggregator, writer, f.clock, cfg, discardLogger())
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.warehouses.AssertExpectations(t)
	f.agents.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.assignments.AssertExpectations(t)
	f.txAgents.AssertExpectations(t)
	f.txOrders.AssertExpectations(t)
}

func idsOf(orders ...*order.Order) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids
}

// newPassingUoW returns a unit of work on which every write succeeds.
func newPassingUoW() *mocks.UnitOfWork {
	assignments := &mocks.AssignmentRepository{}
	assignments.On("Add", mock.Anything, mock.Anything).Return(nil)
	agents := &mocks.AgentRepository{}
	agents.On("ClaimForAssignment", mock.Anything, mock.Anything).Return(nil)
	orders := &mocks.OrderRepository{}
	orders.On("ClaimForAssignment", mock.Anything, mock.Anything).Return(nil)

	uow := &mocks.UnitOfWork{Agents: agents, Orders: orders, Assignments: assignments}
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	return uow
}
