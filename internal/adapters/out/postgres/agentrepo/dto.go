// Package agentrepo maps agent aggregates to the agents table.
package agentrepo

import (
	"time"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO is the persisted form of an agent. The composite index serves the
// per-warehouse lookup of checked-in agents.
type AgentDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name        string      `gorm:"not null"`
	Phone       string      `gorm:"not null"`
	WarehouseID uuid.UUID   `gorm:"type:uuid;not null;index:idx_agents_warehouse_status,priority:1"`
	Location    LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Status      string      `gorm:"type:varchar(16);not null;index:idx_agents_warehouse_status,priority:2"`
	CheckedInAt *time.Time
}

func (AgentDTO) TableName() string {
	return "agents"
}

// LocationDTO holds the agent's last known position.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

func fromDomain(aggregate *agent.Agent) AgentDTO {
	return AgentDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Phone:       aggregate.Phone(),
		WarehouseID: aggregate.WarehouseID().Bytes(),
		Location: LocationDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		Status:      aggregate.Status().String(),
		CheckedInAt: aggregate.CheckedInAt(),
	}
}

func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	status, err := agent.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return agent.RestoreAgent(id, dto.Name, dto.Phone, warehouseID, loc, status, dto.CheckedInAt)
}
