// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The composite index covers the eligible-orders scan of an allocation run.
type OrderDTO struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	WarehouseID  uuid.UUID   `gorm:"type:uuid;not null;index:idx_orders_warehouse_status,priority:1"`
	AgentID      *uuid.UUID  `gorm:"type:uuid;index"`
	CustomerName string      `gorm:"not null"`
	Address      string      `gorm:"not null"`
	Location     LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Status       string      `gorm:"type:varchar(16);not null;index:idx_orders_warehouse_status,priority:2"`
	CreatedAt    time.Time   `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents the embedded delivery location within the order table.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

// fromDomain converts an order domain aggregate to its database representation,
// including the optional agent assignment.
func fromDomain(aggregate *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := aggregate.Agent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		WarehouseID:  aggregate.WarehouseID().Bytes(),
		AgentID:      agentID,
		CustomerName: aggregate.CustomerName(),
		Address:      aggregate.Address(),
		Location: LocationDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain reconstructs the aggregate with RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	loc, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, warehouseID, dto.CustomerName, dto.Address, loc, status, agentID, dto.CreatedAt)
}
