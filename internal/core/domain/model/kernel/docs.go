// Package kernel provides the shared value objects of the logistics domain.
//
// The package includes:
//   - UUID: identifiers for warehouses, agents, orders and assignments, totally ordered by bytes
//   - Location: a latitude/longitude pair with the Haversine distance used for matching
//
// Both types are immutable and safe for concurrent use.
package kernel
