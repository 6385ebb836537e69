package agentrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAgentRepository implements AgentRepository using GORM.
type GormAgentRepository struct {
	db *gorm.DB
}

// NewGormAgentRepository creates a new GORM agent repository.
func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// Add saves a new agent to the database.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return nil
}

// Update saves an existing agent. All columns are written, including a cleared check-in time.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AgentDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agent", aggregate.ID().String())
	}

	return nil
}

// ClaimForAssignment flips a CheckedIn agent to Assigned. The status predicate keeps a
// check-out or a second claim that committed after the run snapshot from being overwritten.
func (r *GormAgentRepository) ClaimForAssignment(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.Status() != agent.Assigned {
		return errs.NewValueIsInvalidError("agent status " + aggregate.Status().String())
	}

	result := r.db.WithContext(ctx).
		Model(&AgentDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), agent.CheckedIn.String()).
		Update("status", aggregate.Status().String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("checked-in agent", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an agent by ID.
func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetCheckedInByWarehouse retrieves the CheckedIn agents of a warehouse ordered by id.
func (r *GormAgentRepository) GetCheckedInByWarehouse(ctx context.Context, warehouseID kernel.UUID) ([]*agent.Agent, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AgentDTO
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND status = ?", warehouseID.Bytes(), agent.CheckedIn.String()).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	agents := make([]*agent.Agent, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}

	return agents, nil
}
