package ports

import (
	"context"

	"logistics/internal/core/domain/model/assignment"
	"logistics/internal/core/domain/model/kernel"
)

// AssignmentRepository stores the append-only assignment records. There is no Update:
// an assignment is never changed once written.
type AssignmentRepository interface {
	// Add persists a new assignment. A second assignment for the same order fails.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)
}
