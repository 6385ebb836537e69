// Package assignmentrepo stores the append-only assignment log.
package assignmentrepo

import (
	"time"

	"logistics/internal/core/domain/model/assignment"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is one row of the assignments table. The unique index on
// order_id makes a second assignment for the same order fail at the database.
type AssignmentDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AgentID          uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Cost             float64   `gorm:"type:double precision;not null"`
	EstimatedMinutes int       `gorm:"not null"`
	CreatedAt        time.Time `gorm:"not null;index"`
}

func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		AgentID:          aggregate.AgentID().Bytes(),
		WarehouseID:      aggregate.WarehouseID().Bytes(),
		Cost:             aggregate.Cost(),
		EstimatedMinutes: aggregate.EstimatedMinutes(),
		CreatedAt:        aggregate.CreatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.AgentID, dto.WarehouseID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return assignment.RestoreAssignment(ids[0], ids[1], ids[2], ids[3], dto.Cost, dto.EstimatedMinutes, dto.CreatedAt)
}
