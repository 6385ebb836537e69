// Package allocation runs the daily order allocation.
//
// A run lists the operational warehouses and, per warehouse, takes a snapshot of the
// checked-in agents and the eligible orders (WarehouseAggregator). Orders are matched
// one by one with the nearest free agent (services.ProximityMatcher); every match is
// written in its own transaction (AssignmentWriter) and orders without an agent are
// deferred. MetricsCollector folds the per-warehouse results into a Summary.
//
// Failures stay local. A warehouse whose snapshot cannot be read is reported and
// skipped, a match that cannot be written is rolled back and its order deferred, and a
// run that outlives its deadline defers what is left.
package allocation
