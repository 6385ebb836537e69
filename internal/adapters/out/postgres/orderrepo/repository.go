package orderrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// ClaimForAssignment records the agent of an Assigned order, provided the stored order
// is still Pending or Deferred.
func (r *GormOrderRepository) ClaimForAssignment(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	agentID := aggregate.Agent()
	if aggregate.Status() != order.Assigned || agentID == nil {
		return errs.NewValueIsInvalidError("order status " + aggregate.Status().String())
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status IN ?", aggregate.ID().Bytes(), eligibleStatuses()).
		Updates(map[string]any{
			"status":   aggregate.Status().String(),
			"agent_id": agentID.Bytes(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("eligible order", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetEligibleByWarehouse retrieves Pending and Deferred orders of a warehouse, oldest first.
func (r *GormOrderRepository) GetEligibleByWarehouse(ctx context.Context, warehouseID kernel.UUID) ([]*order.Order, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND status IN ?", warehouseID.Bytes(), eligibleStatuses()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// DeferAll marks the given orders Deferred with a single UPDATE. Orders already
// Assigned by a concurrent writer are excluded by the status predicate.
func (r *GormOrderRepository) DeferAll(ctx context.Context, ids []kernel.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return 0, err
		}
		raw = append(raw, id.String())
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ANY(?) AND status IN ?", pq.Array(raw), eligibleStatuses()).
		Update("status", order.Deferred.String())
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func eligibleStatuses() []string {
	return []string{order.Pending.String(), order.Deferred.String()}
}
