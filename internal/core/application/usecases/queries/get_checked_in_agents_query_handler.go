package queries

import (
	"context"
	"database/sql"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCheckedInAgentsQueryHandler retrieves available agents ordered by warehouse and name.
//
// Example:
//
//	query, _ := NewGetCheckedInAgentsQuery(nil)
//	agents, err := NewGetCheckedInAgentsQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d agents ready for the next run\n", len(agents))
type GetCheckedInAgentsQueryHandler struct {
	db *gorm.DB
}

func NewGetCheckedInAgentsQueryHandler(db *gorm.DB) GetCheckedInAgentsQueryHandler {
	return GetCheckedInAgentsQueryHandler{db: db}
}

func (h GetCheckedInAgentsQueryHandler) Handle(
	ctx context.Context,
	query GetCheckedInAgentsQuery,
) ([]GetCheckedInAgentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := `
		SELECT
			id,
			name,
			phone,
			warehouse_id,
			location_latitude,
			location_longitude,
			checked_in_at
		FROM agents
		WHERE status = ?`
	args := []any{agent.CheckedIn.String()}
	if id := query.WarehouseID(); id != nil {
		stmt += ` AND warehouse_id = ?`
		args = append(args, id.Bytes())
	}
	stmt += `
		ORDER BY warehouse_id, name`

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := make([]GetCheckedInAgentsQueryResponse, 0)
	for rows.Next() {
		var (
			resp          GetCheckedInAgentsQueryResponse
			id, warehouse uuid.UUID
			lat, lon      float64
			checkedInAt   sql.NullTime
		)

		if err = rows.Scan(&id, &resp.Name, &resp.Phone, &warehouse, &lat, &lon, &checkedInAt); err != nil {
			return nil, err
		}

		ids, idErr := uuidsFromBytes(id, warehouse)
		if idErr != nil {
			return nil, idErr
		}
		resp.ID, resp.WarehouseID = ids[0], ids[1]

		location, locErr := kernel.NewLocation(lat, lon)
		if locErr != nil {
			return nil, locErr
		}
		resp.Location = location

		if checkedInAt.Valid {
			resp.CheckedInAt = checkedInAt.Time.UTC()
		}

		agents = append(agents, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}
