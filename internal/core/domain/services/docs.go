// Package services provides domain services that work across several aggregates.
//
// The package includes:
//   - AgentPool: the per-warehouse, per-run set of agents still free to take an order
//   - ProximityMatcher: greedy nearest-agent matching with deterministic tie-breaks
//
// Both are pure in-memory logic; persisting the outcome is left to the application layer.
//
// Matching is order-sequential, not globally cost-optimal. Each order scans the whole
// remaining pool, so a warehouse costs O(orders × agents) distance evaluations.
package services
