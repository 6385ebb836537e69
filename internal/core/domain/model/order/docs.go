// Package order provides the Order aggregate and its status state machine.
//
// The package includes:
//   - Order: a delivery request tied to a warehouse, with a delivery location and creation time
//   - Status: Pending, Assigned or Deferred, with checked transitions
//
// Key business rules:
//   - New orders start Pending
//   - Pending and Deferred orders are eligible for allocation; Assigned orders are not
//   - An order references an agent exactly when it is Assigned
//   - Orders are matched oldest first, ties broken by id
package order
