// Package assignment provides the append-only Assignment record created for every
// successful order/agent match.
//
// Key business rules:
//   - Order and agent belong to the same warehouse
//   - Cost is the non-negative distance in kilometres between them
//   - Estimated delivery time is 30 minutes of handling plus 5 minutes per kilometre
package assignment
