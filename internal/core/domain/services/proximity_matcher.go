package services

import (
	"cmp"
	"errors"
	"slices"
	"time"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/assignment"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// ErrNoAgentAvailable is returned when the pool has no agent left for an order.
// The caller defers the order.
var ErrNoAgentAvailable = errors.New("no agent available")

// Match is the outcome of a successful Dispatch: the order and the agent, both moved
// to Assigned, and the new assignment record. Nothing is persisted yet.
type Match struct {
	Order      *order.Order
	Agent      *agent.Agent
	Assignment *assignment.Assignment
}

// ProximityMatcher is the greedy nearest-agent matcher.
//
// Orders are served one at a time in Sequence order. Each order takes the closest agent
// still in the warehouse pool (lower agent id on equal distance) and that agent leaves
// the pool. The result is locally optimal per order but not a global min-cost matching.
//
// Cost is O(orders × agents) per warehouse, fine for tens of agents and hundreds of
// orders. There is no spatial index.
//
// Example usage:
//
//	matcher := services.NewProximityMatcher()
//	pool, _ := services.NewAgentPool(warehouseID, checkedInAgents)
//	for _, o := range matcher.Sequence(orders) {
//	    m, err := matcher.Dispatch(o, pool, kernel.NewUUID(), now)
//	    if errors.Is(err, services.ErrNoAgentAvailable) {
//	        // defer o
//	    }
//	}
type ProximityMatcher struct{}

func NewProximityMatcher() ProximityMatcher {
	return ProximityMatcher{}
}

// Sequence returns a copy of orders sorted by creation time, then by id.
// Later orders depend on which agents earlier orders consumed, so this order is
// what makes a run reproducible.
func (m ProximityMatcher) Sequence(orders []*order.Order) []*order.Order {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b *order.Order) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// Dispatch claims the nearest pooled agent for o and applies the domain transitions.
// assignmentID and at identify and timestamp the resulting assignment.
//
// When the pool is empty it returns ErrNoAgentAvailable and leaves o untouched.
func (m ProximityMatcher) Dispatch(o *order.Order, pool *AgentPool, assignmentID kernel.UUID, at time.Time) (Match, error) {
	if err := o.Validate(); err != nil {
		return Match{}, err
	}

	if !o.Status().IsEligible() {
		return Match{}, errs.NewValueIsInvalidError("order " + o.ID().String() + " is " + o.Status().String())
	}

	if !o.WarehouseID().IsEqual(pool.WarehouseID()) {
		return Match{}, assignment.ErrWarehouseMismatch
	}

	best, err := pool.ClaimNearest(o.Location())
	if errors.Is(err, ErrPoolIsEmpty) {
		return Match{}, ErrNoAgentAvailable
	}
	if err != nil {
		return Match{}, err
	}

	as, err := assignment.NewAssignment(assignmentID, o, best.Agent, best.Distance, at)
	if err != nil {
		return Match{}, err
	}

	if err = best.Agent.Assign(); err != nil {
		return Match{}, err
	}

	if err = o.Assign(best.Agent.ID()); err != nil {
		return Match{}, err
	}

	return Match{Order: o, Agent: best.Agent, Assignment: as}, nil
}

func sortCandidates(candidates []Candidate) {
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return a.Agent.ID().Compare(b.Agent.ID())
	})
}
