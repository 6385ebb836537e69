// Package warehouse provides the Warehouse aggregate. A warehouse owns agents and
// orders and is either Operational or Inactive.
package warehouse
