package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAssignmentsQueryHandler reads the assignment listing with a single join.
type GetAssignmentsQueryHandler struct {
	db *gorm.DB
}

func NewGetAssignmentsQueryHandler(db *gorm.DB) GetAssignmentsQueryHandler {
	return GetAssignmentsQueryHandler{db: db}
}

func (h GetAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentsQuery,
) ([]GetAssignmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			a.id,
			a.order_id,
			a.agent_id,
			a.warehouse_id,
			ag.name,
			o.customer_name,
			w.name,
			a.cost,
			a.estimated_minutes,
			a.created_at
		FROM assignments a
		JOIN agents ag ON ag.id = a.agent_id
		JOIN orders o ON o.id = a.order_id
		JOIN warehouses w ON w.id = a.warehouse_id`
	args := make([]any, 0, 2)
	if id := query.WarehouseID(); id != nil {
		sql += `
		WHERE a.warehouse_id = ?`
		args = append(args, id.Bytes())
	}
	sql += `
		ORDER BY a.created_at DESC, a.id
		LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]GetAssignmentsQueryResponse, 0)
	for rows.Next() {
		var (
			resp                              GetAssignmentsQueryResponse
			id, orderID, agentID, warehouseID uuid.UUID
			createdAt                         time.Time
		)

		err = rows.Scan(
			&id,
			&orderID,
			&agentID,
			&warehouseID,
			&resp.AgentName,
			&resp.CustomerName,
			&resp.WarehouseName,
			&resp.DistanceKm,
			&resp.EstimatedMinutes,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		ids, idErr := uuidsFromBytes(id, orderID, agentID, warehouseID)
		if idErr != nil {
			return nil, idErr
		}
		resp.AssignmentID, resp.OrderID, resp.AgentID, resp.WarehouseID = ids[0], ids[1], ids[2], ids[3]
		resp.CreatedAt = createdAt.UTC()

		assignments = append(assignments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func uuidsFromBytes(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
