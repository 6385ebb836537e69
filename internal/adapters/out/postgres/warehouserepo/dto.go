// Package warehouserepo persists warehouse aggregates with GORM.
package warehouserepo

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
)

// WarehouseDTO is the row shape of the warehouses table.
type WarehouseDTO struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name     string      `gorm:"not null"`
	Location LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Status   string      `gorm:"type:varchar(16);not null;index"`
}

func (WarehouseDTO) TableName() string {
	return "warehouses"
}

type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

func fromDomain(aggregate *warehouse.Warehouse) WarehouseDTO {
	return WarehouseDTO{
		ID:   aggregate.ID().Bytes(),
		Name: aggregate.Name(),
		Location: LocationDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		Status: aggregate.Status().String(),
	}
}

func toDomain(dto WarehouseDTO) (*warehouse.Warehouse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	status, err := warehouse.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return warehouse.RestoreWarehouse(id, dto.Name, loc, status)
}
