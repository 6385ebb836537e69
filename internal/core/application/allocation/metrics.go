package allocation

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// Trigger tells what started a run.
type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

// WarehouseOutcome is how far a warehouse got in a run.
type WarehouseOutcome string

const (
	// OutcomeProcessed means every eligible order was either assigned or deferred.
	OutcomeProcessed WarehouseOutcome = "processed"
	// OutcomeFetchFailed means the snapshot could not be read; orders are unchanged.
	OutcomeFetchFailed WarehouseOutcome = "fetch_failed"
	// OutcomeTimedOut means the run deadline passed; the remaining orders were deferred.
	OutcomeTimedOut WarehouseOutcome = "timed_out"
	// OutcomeUnprocessed means shutdown began before the warehouse started; orders are unchanged.
	OutcomeUnprocessed WarehouseOutcome = "unprocessed"
)

const (
	messageCompleted   = "Order allocation completed"
	messageTimedOut    = "Order allocation completed partially: run deadline exceeded"
	messageInterrupted = "Order allocation interrupted by shutdown"
	messageFetchFailed = "Order allocation failed: warehouses could not be listed"
)

// WarehouseSummary is the share of one warehouse in a run.
type WarehouseSummary struct {
	WarehouseID        string           `json:"warehouse_id"`
	WarehouseName      string           `json:"warehouse_name"`
	Outcome            WarehouseOutcome `json:"outcome"`
	CheckedInAgents    int              `json:"checked_in_agents"`
	EligibleOrders     int              `json:"eligible_orders"`
	AssignmentsCreated int              `json:"assignments_created"`
	TotalCost          float64          `json:"total_cost"`
	DeferredOrders     int              `json:"deferred_orders"`
	PersistFailures    int              `json:"persist_failures"`
	Error              string           `json:"error,omitempty"`
}

// Summary is the structured report of one allocation run.
type Summary struct {
	RunID                 string             `json:"run_id"`
	Trigger               Trigger            `json:"trigger"`
	Message               string             `json:"message"`
	StartedAt             time.Time          `json:"started_at"`
	FinishedAt            time.Time          `json:"finished_at"`
	AssignmentsCreated    int                `json:"assignments_created"`
	TotalCost             float64            `json:"total_cost"`
	DeferredOrders        int                `json:"deferred_orders"`
	AgentUtilization      float64            `json:"agent_utilization"`
	CheckedInAgents       int                `json:"checked_in_agents"`
	FetchFailures         int                `json:"fetch_failures"`
	PersistFailures       int                `json:"persist_failures"`
	UnprocessedWarehouses int                `json:"unprocessed_warehouses"`
	TimedOut              bool               `json:"timed_out"`
	Interrupted           bool               `json:"interrupted"`
	Errors                []string           `json:"errors,omitempty"`
	Warehouses            []WarehouseSummary `json:"warehouses"`
}

// Duration is the wall time of the run.
func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// MetricsCollector folds warehouse results into a Summary. Warehouse units report from
// their own goroutines, so Add is safe for concurrent use.
type MetricsCollector struct {
	mu         sync.Mutex
	runID      string
	trigger    Trigger
	startedAt  time.Time
	warehouses []WarehouseSummary
	errors     []string
}

func NewMetricsCollector(runID string, trigger Trigger, startedAt time.Time) *MetricsCollector {
	return &MetricsCollector{
		runID:     runID,
		trigger:   trigger,
		startedAt: startedAt,
	}
}

// Add records the result of one warehouse.
func (c *MetricsCollector) Add(ws WarehouseSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.warehouses = append(c.warehouses, ws)
}

// RecordError keeps a run-level error that is not tied to a single warehouse.
func (c *MetricsCollector) RecordError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errors = append(c.errors, err.Error())
}

// Finish computes the totals. Agent utilization is assignments divided by the checked-in
// agents of the warehouses whose orders were matched, and 0 when there were none.
func (c *MetricsCollector) Finish(finishedAt time.Time) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{
		RunID:      c.runID,
		Trigger:    c.trigger,
		StartedAt:  c.startedAt,
		FinishedAt: finishedAt,
		Errors:     slices.Clone(c.errors),
		Warehouses: slices.Clone(c.warehouses),
	}

	slices.SortFunc(s.Warehouses, func(a, b WarehouseSummary) int {
		return strings.Compare(a.WarehouseID, b.WarehouseID)
	})

	for _, ws := range s.Warehouses {
		s.AssignmentsCreated += ws.AssignmentsCreated
		s.TotalCost += ws.TotalCost
		s.DeferredOrders += ws.DeferredOrders
		s.PersistFailures += ws.PersistFailures
		s.CheckedInAgents += ws.CheckedInAgents

		switch ws.Outcome {
		case OutcomeProcessed:
		case OutcomeFetchFailed:
			s.FetchFailures++
		case OutcomeTimedOut:
			s.TimedOut = true
		case OutcomeUnprocessed:
			s.UnprocessedWarehouses++
			s.Interrupted = true
		}
	}

	if len(c.errors) > 0 {
		s.FetchFailures += len(c.errors)
	}

	if s.CheckedInAgents > 0 {
		s.AgentUtilization = float64(s.AssignmentsCreated) / float64(s.CheckedInAgents)
	}

	switch {
	case len(c.errors) > 0 && len(s.Warehouses) == 0:
		s.Message = messageFetchFailed
	case s.Interrupted:
		s.Message = messageInterrupted
	case s.TimedOut:
		s.Message = messageTimedOut
	default:
		s.Message = messageCompleted
	}

	if s.Warehouses == nil {
		s.Warehouses = []WarehouseSummary{}
	}

	return s
}
