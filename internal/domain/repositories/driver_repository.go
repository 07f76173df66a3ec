package repositories

import (
	"context"

	"f1-bets.backend/internal/domain/entities"
)

// DriverRepository reads the driver catalog. It never writes.
type DriverRepository interface {
	ListDistinctByName(ctx context.Context) ([]entities.DriverOption, error)
	CountExisting(ctx context.Context, ids []int64) (int64, error)
}
