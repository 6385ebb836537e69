package allocation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"logistics/internal/core/application/allocation"
	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/assignment"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/warehouse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEngine_Run(t *testing.T) {
	cfg := allocation.EngineConfig{MaxRunDuration: 10 * time.Minute, WarehouseConcurrency: 1}

	t.Run("assigns the nearest agent", func(t *testing.T) {
		f := newFixture(cfg)
		w := newWarehouse(t, "Delhi North")
		a1 := newAgent(t, w, 1)
		a2 := newAgent(t, w, 5)
		o1 := newOrder(t, w, 0, time.Hour)

		f.warehouses.On("GetAllOperational", mock.Anything).Return([]*warehouse.Warehouse{w}, nil)
		f.agents.On("GetCheckedInByWarehouse", mock.Anything, w.ID()).Return([]*agent.Agent{a2, a1}, nil)
		f.orders.On("GetEligibleByWarehouse", mock.Anything, w.ID()).Return([]*order.Order{o1}, nil)
		f.uow.On("Begin", mock.Anything).Return(nil)
		f.uow.On("Commit", mock.Anything).Return(nil)
		f.uow.On("Rollback", mock.Anything).Return(nil)
		f.assignments.On("Add", mock.Anything, mock.MatchedBy(func(as *assignment.Assignment) bool {
			return as.OrderID().IsEqual(o1.ID()) && as.AgentID().IsEqual(a1.ID())
		})).Return(nil).Once()
		f.txAgents.On("ClaimForAssignment", mock.Anything, a1).Return(nil).Once()
		f.txOrders.On("ClaimForAssignment", mock.Anything, o1).Return(nil).Once()

		summary := f.engine.Run(context.Background(), allocation.TriggerManual)

		f.assertExpectations(t)
		f.orders.AssertNotCalled(t, "DeferAll", mock.Anything, mock.Anything)
		assert.Equal(t, 1, summary.AssignmentsCreated)
		assert.Equal(t, 0, summary.DeferredOrders)
		assert.InDelta(t, 1.0, summary.TotalCost, 1e-6)
		assert.InDelta(t, 0.5, summary.AgentUtilization, 1e-9)
		assert.Equal(t, allocation.TriggerManual, summary.Trigger)
		assert.Equal(t, "Order allocation completed", summary.Message)
		assert.NotEmpty(t, summary.RunID)
		assert.Equal(t, order.Assigned, o1.Status())
		assert.Equal(t, agent.Assigned, a1.Status())
		assert.Equal(t, agent.CheckedIn, a2.Status())
	})

	t.Run("defers every order when no agent checked in", func(t *testing.T) {
		f := newFixture(cfg)
		w := newWarehouse(t, "Empty")
		o1 := newOrder(t, w, 1, 3*time.Hour)
		o2 := newOrder(t, w, 1, 2*time.Hour)
		o3 := newOrder(t, w, 1, time.Hour)

		f.warehouses.On("GetAllOperational", mock.Anything).Return([]*warehouse.Warehouse{w}, nil)
		f.agents.On("GetCheckedInByWarehouse", mock.Anything, w.ID()).Return([]*agent.Agent{}, nil)
		f.orders.On("GetEligibleByWarehouse", mock.Anything, w.ID()).Return([]*order.Order{o3, o1, o2}, nil)
		f.orders.On("DeferAll", mock.Anything, idsOf(o1, o2, o3)).Return(int64(3), nil).Once()

		summary := f.engine.Run(context.Background(), allocation.TriggerScheduled)

		f.assertExpectations(t)
		assert.Equal(t, 0, summary.AssignmentsCreated)
		assert.Equal(t, 3, summary.DeferredOrders)
		assert.InDelta(t, 0.0, summary.AgentUtilization, 0)
		require.Len(t, summary.Warehouses, 1)
		assert.Equal(t, allocation.OutcomeProcessed, summary.Warehouses[0].Outcome)
		assert.Equal(t, 3, summary.Warehouses[0].EligibleOrders)
		for _, o := range []*order.Order{o1, o2, o3} {
			assert.Equal(t, order.Deferred, o.Status())
		}
	})

	t.Run("a consumed agent is not offered to later orders", func(t *testing.T) {
		f := newFixture(cfg)
		w := newWarehouse(t, "Single agent")
		a1 := newAgent(t, w, 0)
		o1 := newOrder(t, w, 1, 2*time.Hour)
		o2 := newOrder(t, w, 2, time.Hour)

		f.warehouses.On("GetAllOperational", mock.Anything).Return([]*warehouse.Warehouse{w}, nil)
		f.agents.On("GetCheckedInByWarehouse", mock.Anything, w.ID()).Return([]*agent.Agent{a1}, nil)
		f.orders.On("GetEligibleByWarehouse", mock.Anything, w.ID()).Return([]*order.Order{o2, o1}, nil)
		f.uow.On("Begin", mock.Anything).Return(nil)
		f.uow.On("Commit", mock.Anything).Return(nil)
		f.uow.On("Rollback", mock.Anything).Return(nil)
		f.assignments.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
		f.txAgents.On("ClaimForAssignment", mock.Anything, a1).Return(nil).Once()
		f.txOrders.On("ClaimForAssignment", mock.Anything, o1).Return(nil).Once()
		f.orders.On("DeferAll", mock.Anything, idsOf(o2)).Return(int64(1), nil).Once()

		summary := f.engine.Run(context.Background(), allocation.TriggerScheduled)

		f.assertExpectations(t)
		assert.Equal(t, 1, summary.AssignmentsCreated)
		assert.Equal(t, 1, summary.DeferredOrders)
		assert.InDelta(t, 1.0, summary.TotalCost, 1e-6)
		assert.InDelta(t, 1.0, summary.AgentUtilization, 1e-9)
	})

	t.Run("fetch failure is scoped to its warehouse", func(t *testing.T) {
		f := newFixture(cfg)
		broken := newWarehouse(t, "Broken")
		healthy := newWarehouse(t, "Healthy")
		a1 := newAgent(t, healthy, 0)
		o1 := newOrder(t, healthy, 2, time.Hour)

		f.warehouses.On("GetAllOperational", mock.Anything).Return([]*warehouse.Warehouse{broken, healthy}, nil)
		f.agents.On("GetCheckedInByWarehouse", mock.Anything, broken.ID()).Return(nil, errors.New("connection reset"))
		f.agents.On("GetCheckedInByWarehouse", mock.Anything, healthy.ID()).Return([]*agent.Agent{a1}, nil)
		f.orders.On("GetEligibleByWarehouse", mock.Anything, healthy.ID()).Return([]*order.Order{o1}, nil)
		f.uow.On("Begin", mock.Anything).Return(nil)
		f.uow.On("Commit", mock.Anything).Return(nil)
		f.uow.On("Rollback", mock.Anything).Return(nil)
		f.assignments.On("Add", mock.Anything, mock.Anything).Return(nil)
		f.txAgents.On("ClaimForAssignment", mock.Anything, a1).Return(nil)
		f.txOrders.On("ClaimForAssignment", mock.Anything, o1).Return(nil)

		summary := f.engine.Run(context.Background(), allocation.TriggerScheduled)

		f.assertExpectations(t)
		f.orders.AssertNotCalled(t, "GetEligibleByWarehouse", mock.Anything, broken.ID())
		assert.Equal(t, 1, summary.FetchFailures)
		assert.Equal(t, 1, summary.AssignmentsCreated)
		assert.InDelta(t, 1.0, summary.AgentUtilization, 1e-9)

		byID := map[string]allocation.WarehouseSummary{}
		for _, ws := range summary.Warehouses {
			byID[ws.WarehouseID] = ws
		}
		assert.Equal(t, allocation.OutcomeFetchFailed, byID[broken.ID().String()].Outcome)
		assert.Contains(t, byID[broken.ID().String()].Error, "connection reset")
		assert.Equal(t, allocation.OutcomeProcessed, byID[healthy.ID().String()].Outcome)
	})

	t.Run("persist failure defers the order and retires the agent", func(t *testing.T) {
		f := newFixture(cfg)
		w := newWarehouse(t, "Flaky")
		a1 := newAgent(t, w, 0)
		o1 := newOrder(t, w, 1, 2*time.Hour)
		o2 := newOrder(t, w, 1, time.Hour)

		f.warehouses.On("GetAllOperational", mock.Anything).Return([]*warehouse.Warehouse{w}, nil)
		f.agents.On("GetCheckedInByWarehouse", mock.Anything, w.ID()).Return([]*agent.Agent{a1}, nil)
		f.orders.On("GetEligibleByWarehouse", mock.Anything, w.ID()).Return([]*order.Order{o1, o2}, nil)
		f.uow.On("Begin", mock.Anything).Return(nil).Once()
		f.uow.On("Rollback", mock.Anything).Return(nil).Once()
		f.assignments.On("Add", mock.Anything, mock.Anything).Return(errors.New("duplicate key")).Once()
		f.orders.On("DeferAll", mock.Anything, idsOf(o1, o2)).Return(int64(2), nil).Once()

		summary := f.engine.Run(context.Background(), allocation.TriggerScheduled)

		f.assertExpectations(t)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		assert.Equal(t, 0, summary.AssignmentsCreated)
		assert.Equal(t, 1, summary.PersistFailures)
		assert.Equal(t, 2, summary.DeferredOrders)
		assert.InDelta(t, 0.0, summary.TotalCost, 0)
		assert.Equal(t, order.Deferred, o2.Status())
	})

	t.Run("deadline defers the rest of the warehouse", func(t *testing.T) {
		f := newFixture(cfg)
		w := newWarehouse(t, "Slow")
		a1 := newAgent(t, w, 0)
		a2 := newAgent(t, w, 0.5)
		o1 := newOrder(t, w, 1, 3*time.Hour)
		o2 := newOrder(t, w, 1, 2*time.Hour)
		o3 := newOrder(t, w, 1, time.Hour)

		f.warehouses.On("GetAllOperational", mock.Anything).Return([]*warehouse.Warehouse{w}, nil)
		f.agents.On("GetCheckedInByWarehouse", mock.Anything, w.ID()).Return([]*agent.Agent{a1, a2}, nil)
		f.orders.On("GetEligibleByWarehouse", mock.Anything, w.ID()).Return([]*order.Order{o1, o2, o3}, nil)
		f.uow.On("Begin", mock.Anything).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once().Run(func(mock.Arguments) {
			f.clock.Advance(15 * time.Minute)
		})
		f.uow.On("Rollback", mock.Anything).Return(nil)
		f.assignments.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
		f.txAgents.On("ClaimForAssignment", mock.Anything, mock.Anything).Return(nil).Once()
		f.txOrders.On("ClaimForAssignment", mock.Anything, o1).Return(nil).Once()
		f.orders.On("DeferAll", mock.Anything, idsOf(o2, o3)).Return(int64(2), nil).Once()

		summary := f.engine.Run(context.Background(), allocation.TriggerScheduled)

		f.assertExpectations(t)
		assert.True(t, summary.TimedOut)
		assert.Equal(t, 1, summary.AssignmentsCreated)
		assert.Equal(t, 2, summary.DeferredOrders)
		assert.Contains(t, summary.Message, "deadline")
		require.Len(t, summary.Warehouses, 1)
		assert.Equal(t, allocation.OutcomeTimedOut, summary.Warehouses[0].Outcome)
	})

	t.Run("warehouses reached after the deadline are deferred whole", func(t *testing.T) {
		f := newFixture(cfg)
		first := newWarehouse(t, "First")
		late := newWarehouse(t, "Late")
		a1 := newAgent(t, first, 0)
		o1 := newOrder(t, first, 1, time.Hour)
		lateOrder1 := newOrder(t, late, 1, time.Hour)
		lateOrder2 := newOrder(t, late, 1, 2*time.Hour)

		f.warehouses.On("GetAllOperational", mock.Anything).Return([]*warehouse.Warehouse{first, late}, nil)
		f.agents.On("GetCheckedInByWarehouse", mock.Anything, first.ID()).Return([]*agent.Agent{a1}, nil)
		f.orders.On("GetEligibleByWarehouse", mock.Anything, first.ID()).Return([]*order.Order{o1}, nil)
		f.orders.On("GetEligibleByWarehouse", mock.Anything, late.ID()).Return([]*order.Order{lateOrder1, lateOrder2}, nil)
		f.uow.On("Begin", mock.Anything).Return(nil)
		f.uow.On("Commit", mock.Anything).Return(nil).Run(func(mock.Arguments) {
			f.clock.Advance(time.Hour)
		})
		f.uow.On("Rollback", mock.Anything).Return(nil)
		f.assignments.On("Add", mock.Anything, mock.Anything).Return(nil)
		f.txAgents.On("ClaimForAssignment", mock.Anything, a1).Return(nil)
		f.txOrders.On("ClaimForAssignment", mock.Anything, o1).Return(nil)
		f.orders.On("DeferAll", mock.Anything, idsOf(lateOrder1, lateOrder2)).Return(int64(2), nil).Once()

		summary := f.engine.Run(context.Background(), allocation.TriggerScheduled)

		f.assertExpectations(t)
		f.agents.AssertNotCalled(t, "GetCheckedInByWarehouse", mock.Anything, late.ID())
		assert.True(t, summary.TimedOut)
		assert.Equal(t, 1, summary.AssignmentsCreated)
		assert.Equal(t, 2, summary.DeferredOrders)
		assert.Equal(t, 1, summary.CheckedInAgents)
	})

	t.Run("cancelled context leaves warehouses unprocessed", func(t *testing.T) {
		f := newFixture(cfg)
		w1 := newWarehouse(t, "One")
		w2 := newWarehouse(t, "Two")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f.warehouses.On("GetAllOperational", mock.Anything).Return([]*warehouse.Warehouse{w1, w2}, nil)

		summary := f.engine.Run(ctx, allocation.TriggerScheduled)

		f.assertExpectations(t)
		f.agents.AssertNotCalled(t, "GetCheckedInByWarehouse", mock.Anything, mock.Anything)
		f.orders.AssertNotCalled(t, "DeferAll", mock.Anything, mock.Anything)
		assert.True(t, summary.Interrupted)
		assert.Equal(t, 2, summary.UnprocessedWarehouses)
		assert.Equal(t, "Order allocation interrupted by shutdown", summary.Message)
	})

	t.Run("listing failure yields an empty summary", func(t *testing.T) {
		f := newFixture(cfg)
		f.warehouses.On("GetAllOperational", mock.Anything).Return(nil, errors.New("db down"))

		summary := f.engine.Run(context.Background(), allocation.TriggerScheduled)

		f.assertExpectations(t)
		assert.Equal(t, 1, summary.FetchFailures)
		assert.Empty(t, summary.Warehouses)
		require.Len(t, summary.Errors, 1)
		assert.Contains(t, summary.Errors[0], "db down")
		assert.Contains(t, summary.Message, "failed")
	})
}

func TestEngine_Run_ConcurrentWarehouses(t *testing.T) {
	cfg := allocation.EngineConfig{MaxRunDuration: time.Hour, WarehouseConcurrency: 3}
	f := newFixture(cfg)

	var all []*warehouse.Warehouse
	for range 6 {
		w := newWarehouse(t, "parallel")
		a := newAgent(t, w, 0)
		o := newOrder(t, w, 1, time.Hour)
		all = append(all, w)
		f.agents.On("GetCheckedInByWarehouse", mock.Anything, w.ID()).Return([]*agent.Agent{a}, nil)
		f.orders.On("GetEligibleByWarehouse", mock.Anything, w.ID()).Return([]*order.Order{o}, nil)
	}
	f.warehouses.On("GetAllOperational", mock.Anything).Return(all, nil)

	// each warehouse gets its own unit of work
	aggregator := allocation.NewWarehouseAggregator(f.warehouses, f.agents, f.orders)
	writer := allocation.NewAssignmentWriter(uowFactoryFunc(func() allocation.AssignmentUoW {
		return newPassingUoW()
	}), f.orders)
	engine := allocation.NewEngine(aggregator, writer, f.clock, cfg, discardLogger())

	summary := engine.Run(context.Background(), allocation.TriggerScheduled)

	assert.Equal(t, 6, summary.AssignmentsCreated)
	assert.Equal(t, 6, summary.CheckedInAgents)
	assert.InDelta(t, 6.0, summary.TotalCost, 1e-6)
	require.Len(t, summary.Warehouses, 6)
	for i := 1; i < len(summary.Warehouses); i++ {
		assert.Less(t, summary.Warehouses[i-1].WarehouseID, summary.Warehouses[i].WarehouseID)
	}
}

func TestEngine_Run_RunLimitBoundsBlockedIO(t *testing.T) {
	cfg := allocation.EngineConfig{MaxRunDuration: 50 * time.Millisecond, WarehouseConcurrency: 1}

	blockUntilDone := func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		select {
		case <-ctx.Done():
		case <-time.After(2 * time.Second):
		}
	}
	liveContext := func(t *testing.T) func(mock.Arguments) {
		return func(args mock.Arguments) {
			assert.NoError(t, args.Get(0).(context.Context).Err(), "deferral runs on its own context")
		}
	}

	t.Run("blocked assignment write", func(t *testing.T) {
		f := newFixture(cfg)
		w := newWarehouse(t, "Stalled writes")
		a1 := newAgent(t, w, 0)
		a2 := newAgent(t, w, 1)
		o1 := newOrder(t, w, 1, 2*time.Hour)
		o2 := newOrder(t, w, 1, time.Hour)

		f.warehouses.On("GetAllOperational", mock.Anything).Return([]*warehouse.Warehouse{w}, nil)
		f.agents.On("GetCheckedInByWarehouse", mock.Anything, w.ID()).Return([]*agent.Agent{a1, a2}, nil)
		f.orders.On("GetEligibleByWarehouse", mock.Anything, w.ID()).Return([]*order.Order{o1, o2}, nil)
		f.uow.On("Begin", mock.Anything).Return(nil).Once()
		f.uow.On("Rollback", mock.Anything).Return(nil).Once()
		f.assignments.On("Add", mock.Anything, mock.Anything).Run(blockUntilDone).Return(context.DeadlineExceeded).Once()
		f.orders.On("DeferAll", mock.Anything, idsOf(o1, o2)).Run(liveContext(t)).Return(int64(2), nil).Once()

		started := time.Now()
		summary := f.engine.Run(context.Background(), allocation.TriggerManual)

		assert.Less(t, time.Since(started), time.Second)
		f.assertExpectations(t)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		assert.True(t, summary.TimedOut)
		assert.Equal(t, 0, summary.AssignmentsCreated)
		assert.Equal(t, 0, summary.PersistFailures)
		assert.Equal(t, 2, summary.DeferredOrders)
		require.Len(t, summary.Warehouses, 1)
		assert.Equal(t, allocation.OutcomeTimedOut, summary.Warehouses[0].Outcome)
		assert.Equal(t, order.Deferred, o2.Status())
	})

	t.Run("blocked snapshot read", func(t *testing.T) {
		f := newFixture(cfg)
		w := newWarehouse(t, "Stalled reads")
		o1 := newOrder(t, w, 1, time.Hour)

		f.warehouses.On("GetAllOperational", mock.Anything).Return([]*warehouse.Warehouse{w}, nil)
		f.agents.On("GetCheckedInByWarehouse", mock.Anything, w.ID()).Run(blockUntilDone).
			Return(nil, context.DeadlineExceeded).Once()
		f.orders.On("GetEligibleByWarehouse", mock.Anything, w.ID()).Run(liveContext(t)).
			Return([]*order.Order{o1}, nil).Once()
		f.orders.On("DeferAll", mock.Anything, idsOf(o1)).Run(liveContext(t)).Return(int64(1), nil).Once()

		started := time.Now()
		summary := f.engine.Run(context.Background(), allocation.TriggerScheduled)

		assert.Less(t, time.Since(started), time.Second)
		f.assertExpectations(t)
		assert.True(t, summary.TimedOut)
		assert.Equal(t, 0, summary.FetchFailures)
		assert.Equal(t, 1, summary.DeferredOrders)
		require.Len(t, summary.Warehouses, 1)
		assert.Equal(t, allocation.OutcomeTimedOut, summary.Warehouses[0].Outcome)
	})
}
