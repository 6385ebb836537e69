package queries

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// HealthCheckQueryHandler reports whether the database answers a ping.
type HealthCheckQueryHandler struct {
	db *gorm.DB
}

func NewHealthCheckQueryHandler(db *gorm.DB) HealthCheckQueryHandler {
	return HealthCheckQueryHandler{db: db}
}

func (h HealthCheckQueryHandler) Handle(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}

	return nil
}
