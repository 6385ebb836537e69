package allocation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/warehouse"
	"logistics/internal/core/domain/services"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxRunDuration       = 10 * time.Minute
	DefaultWarehouseConcurrency = 4

	deferTimeout = 30 * time.Second
)

// Clock supplies the current time to the engine.
type Clock interface {
	Now() time.Time
}

// EngineConfig bounds a run.
type EngineConfig struct {
	// MaxRunDuration is checked between orders and also bounds every read and write of a
	// warehouse unit. Orders not reached in time are deferred.
	MaxRunDuration time.Duration
	// WarehouseConcurrency is how many warehouses are processed at once. Orders inside
	// a warehouse are always processed one by one.
	WarehouseConcurrency int
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.MaxRunDuration <= 0 {
		c.MaxRunDuration = DefaultMaxRunDuration
	}
	if c.WarehouseConcurrency <= 0 {
		c.WarehouseConcurrency = DefaultWarehouseConcurrency
	}
	return c
}

// Engine runs one allocation pass over every operational warehouse.
//
// Warehouses run concurrently up to the configured limit. A warehouse that has started
// finishes its current unit of work even when ctx is cancelled, so no assignment is left
// half written. Warehouses not yet started when ctx is cancelled are skipped and their
// orders keep their status.
type Engine struct {
	aggregator *WarehouseAggregator
	matcher    services.ProximityMatcher
	writer     *AssignmentWriter
	clock      Clock
	cfg        EngineConfig
	logger     *slog.Logger
}

func NewEngine(
	aggregator *WarehouseAggregator,
	writer *AssignmentWriter,
	clock Clock,
	cfg EngineConfig,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		aggregator: aggregator,
		matcher:    services.NewProximityMatcher(),
		writer:     writer,
		clock:      clock,
		cfg:        cfg.withDefaults(),
		logger:     logger.With("component", "allocation_engine"),
	}
}

// Run performs a full allocation pass and returns its summary. It never fails as a
// whole: every problem is recorded in the summary.
func (e *Engine) Run(ctx context.Context, trigger Trigger) Summary {
	runID := kernel.NewUUID().String()
	startedAt := e.clock.Now()
	deadline := startedAt.Add(e.cfg.MaxRunDuration)
	collector := NewMetricsCollector(runID, trigger, startedAt)
	logger := e.logger.With("run_id", runID, "trigger", string(trigger))

	warehouses, err := e.aggregator.OperationalWarehouses(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list operational warehouses", "error", err)
		collector.RecordError(err)
		return collector.Finish(e.clock.Now())
	}

	logger.InfoContext(ctx, "Allocation run started", "warehouses", len(warehouses))

	// Started warehouses survive shutdown but not the run limit: a read or write still
	// blocked when MaxRunDuration elapses is abandoned and its transaction rolled back.
	unitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.MaxRunDuration)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(e.cfg.WarehouseConcurrency)

	for _, w := range warehouses {
		g.Go(func() error {
			if ctx.Err() != nil {
				collector.Add(unprocessed(w))
				return nil
			}
			collector.Add(e.processWarehouse(unitCtx, logger, w, deadline))
			return nil
		})
	}

	_ = g.Wait()

	return collector.Finish(e.clock.Now())
}

func (e *Engine) processWarehouse(
	ctx context.Context,
	logger *slog.Logger,
	w *warehouse.Warehouse,
	deadline time.Time,
) WarehouseSummary {
	logger = logger.With("warehouse_id", w.ID().String())
	ws := WarehouseSummary{
		WarehouseID:   w.ID().String(),
		WarehouseName: w.Name(),
		Outcome:       OutcomeProcessed,
	}

	if e.timedOut(ctx, deadline) {
		return e.deferWholeWarehouse(ctx, logger, w, ws)
	}

	snapshot, err := e.aggregator.Snapshot(ctx, w)
	if err != nil && e.timedOut(ctx, deadline) {
		logger.WarnContext(ctx, "Run deadline exceeded while fetching warehouse snapshot", "error", err)
		return e.deferWholeWarehouse(ctx, logger, w, ws)
	}
	if err != nil {
		logger.ErrorContext(ctx, "Failed to fetch warehouse snapshot", "error", err)
		ws.Outcome = OutcomeFetchFailed
		ws.Error = err.Error()
		return ws
	}

	pool, err := services.NewAgentPool(w.ID(), snapshot.Agents)
	if err != nil {
		logger.ErrorContext(ctx, "Invalid agent snapshot", "error", err)
		ws.Outcome = OutcomeFetchFailed
		ws.Error = NewDataFetchError(w.ID(), "agents", err).Error()
		return ws
	}

	ws.CheckedInAgents = pool.Len()
	ws.EligibleOrders = len(snapshot.Orders)

	var unassigned deferrals
	sequence := e.matcher.Sequence(snapshot.Orders)

	for i, o := range sequence {
		if e.timedOut(ctx, deadline) {
			ws.Outcome = OutcomeTimedOut
			unassigned.add(sequence[i:]...)
			logger.WarnContext(ctx, "Run deadline exceeded, deferring remaining orders", "remaining", len(sequence)-i)
			break
		}

		match, err := e.matcher.Dispatch(o, pool, kernel.NewUUID(), e.clock.Now())
		if errors.Is(err, services.ErrNoAgentAvailable) {
			unassigned.add(o)
			continue
		}
		if err != nil {
			logger.ErrorContext(ctx, "Failed to match order", "order_id", o.ID().String(), "error", err)
			unassigned.add(o)
			continue
		}

		if err = e.writer.Write(ctx, match); err != nil {
			if e.timedOut(ctx, deadline) {
				ws.Outcome = OutcomeTimedOut
				unassigned.add(sequence[i:]...)
				logger.WarnContext(ctx, "Run deadline exceeded while persisting assignment, deferring remaining orders",
					"order_id", o.ID().String(),
					"remaining", len(sequence)-i,
					"error", err,
				)
				break
			}

			logger.ErrorContext(ctx, "Failed to persist assignment",
				"order_id", o.ID().String(),
				"agent_id", match.Agent.ID().String(),
				"error", err,
			)
			ws.PersistFailures++
			unassigned.add(o)
			continue
		}

		ws.AssignmentsCreated++
		ws.TotalCost += match.Assignment.Cost()
		logger.DebugContext(ctx, "Order assigned",
			"order_id", o.ID().String(),
			"agent_id", match.Agent.ID().String(),
			"cost_km", match.Assignment.Cost(),
		)
	}

	deferCtx, cancel := deferContext(ctx)
	defer cancel()

	deferred, err := e.writer.Defer(deferCtx, unassigned.ids)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to defer orders", "orders", len(unassigned.ids), "error", err)
		ws.Error = err.Error()
	}
	ws.DeferredOrders = deferred

	logger.InfoContext(ctx, "Warehouse processed",
		"outcome", string(ws.Outcome),
		"assignments_created", ws.AssignmentsCreated,
		"deferred_orders", ws.DeferredOrders,
	)
	return ws
}

// deferWholeWarehouse handles a warehouse reached after the deadline: all of its eligible
// orders are deferred without matching.
func (e *Engine) deferWholeWarehouse(
	ctx context.Context,
	logger *slog.Logger,
	w *warehouse.Warehouse,
	ws WarehouseSummary,
) WarehouseSummary {
	ws.Outcome = OutcomeTimedOut

	deferCtx, cancel := deferContext(ctx)
	defer cancel()

	orders, err := e.aggregator.EligibleOrders(deferCtx, w)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to fetch orders to defer", "error", err)
		ws.Error = err.Error()
		return ws
	}
	ws.EligibleOrders = len(orders)

	var unassigned deferrals
	unassigned.add(orders...)

	deferred, err := e.writer.Defer(deferCtx, unassigned.ids)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to defer orders", "orders", len(orders), "error", err)
		ws.Error = err.Error()
	}
	ws.DeferredOrders = deferred

	logger.WarnContext(ctx, "Warehouse skipped after run deadline", "deferred_orders", deferred)
	return ws
}

// timedOut reports whether the run limit has passed, either on the engine clock or
// through the deadline of the unit context.
func (e *Engine) timedOut(ctx context.Context, deadline time.Time) bool {
	return e.deadlinePassed(deadline) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func (e *Engine) deadlinePassed(deadline time.Time) bool {
	return !e.clock.Now().Before(deadline)
}

func unprocessed(w *warehouse.Warehouse) WarehouseSummary {
	return WarehouseSummary{
		WarehouseID:   w.ID().String(),
		WarehouseName: w.Name(),
		Outcome:       OutcomeUnprocessed,
	}
}

// deferContext gives the closing bulk deferral its own budget, since the unit context
// may already be past the run deadline.
func deferContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), deferTimeout)
}

// deferrals collects the orders a warehouse leaves unassigned.
type deferrals struct {
	ids []kernel.UUID
}

// add moves eligible orders to Deferred in memory and queues them for the bulk update.
// An order whose assignment write failed is already Assigned in memory only; the stored
// row is still eligible, so it is queued without a transition.
func (d *deferrals) add(orders ...*order.Order) {
	for _, o := range orders {
		if o.Status().IsEligible() {
			_ = o.Defer()
		}
		d.ids = append(d.ids, o.ID())
	}
}
