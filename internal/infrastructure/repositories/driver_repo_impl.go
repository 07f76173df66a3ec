package repositories

import (
	"context"

	"gorm.io/gorm"

	"f1-bets.backend/internal/domain/entities"
	"f1-bets.backend/internal/infrastructure/models"
)

// DriverRepository reads the driver catalog
type DriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// ListDistinctByName returns one option per driver name, keyed by the lowest id
// carrying that name, ordered case-insensitively by name.
func (r *DriverRepository) ListDistinctByName(ctx context.Context) ([]entities.DriverOption, error) {
	options := make([]entities.DriverOption, 0)
	err := GetDB(ctx, r.db).
		Model(&models.Driver{}).
		Select("MIN(id) AS id, name").
		Group("name").
		Order("LOWER(name), MIN(id)").
		Scan(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

// CountExisting counts how many of ids are present
func (r *DriverRepository) CountExisting(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	if err := GetDB(ctx, r.db).Model(&models.Driver{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
