package queries

import (
	"context"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetWarehousesQueryHandler struct {
	db *gorm.DB
}

func NewGetWarehousesQueryHandler(db *gorm.DB) GetWarehousesQueryHandler {
	return GetWarehousesQueryHandler{db: db}
}

// Handle returns warehouses ordered by name with their allocation backlog.
func (h GetWarehousesQueryHandler) Handle(
	ctx context.Context,
	query GetWarehousesQuery,
) ([]GetWarehousesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			w.id,
			w.name,
			w.location_latitude,
			w.location_longitude,
			w.status,
			(SELECT COUNT(*) FROM agents ag WHERE ag.warehouse_id = w.id AND ag.status = ?),
			(SELECT COUNT(*) FROM orders o WHERE o.warehouse_id = w.id AND o.status IN ?)
		FROM warehouses w
		ORDER BY w.name, w.id
	`, agent.CheckedIn.String(), []string{order.Pending.String(), order.Deferred.String()}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	warehouses := make([]GetWarehousesQueryResponse, 0)
	for rows.Next() {
		var (
			resp     GetWarehousesQueryResponse
			id       uuid.UUID
			lat, lon float64
		)

		err = rows.Scan(&id, &resp.Name, &lat, &lon, &resp.Status, &resp.CheckedInAgents, &resp.EligibleOrders)
		if err != nil {
			return nil, err
		}

		warehouseID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = warehouseID

		location, locErr := kernel.NewLocation(lat, lon)
		if locErr != nil {
			return nil, locErr
		}
		resp.Location = location

		warehouses = append(warehouses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return warehouses, nil
}
