package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"f1-bets.backend/internal/domain/entities"
	domainerrors "f1-bets.backend/internal/domain/errors"
	"f1-bets.backend/internal/infrastructure/models"
	"f1-bets.backend/pkg/utils"
)

const betColumns = `a.id, a.user_id, a.top1_driver_id, a.top2_driver_id, a.top3_driver_id,
	a.status, a.created_at, d1.name AS top1_name, d2.name AS top2_name, d3.name AS top3_name`

// betRow is a bet joined with its three driver names
type betRow struct {
	ID           int64
	UserID       int64
	Top1DriverID int64
	Top2DriverID int64
	Top3DriverID int64
	Status       string
	CreatedAt    time.Time
	Top1Name     null.String
	Top2Name     null.String
	Top3Name     null.String
}

// BetRepository implements top-3 bet data operations
type BetRepository struct {
	db *gorm.DB
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *gorm.DB) *BetRepository {
	return &BetRepository{db: db}
}

// Create inserts the bet and refreshes it with the joined driver names
func (r *BetRepository) Create(ctx context.Context, bet *entities.Bet) error {
	status := bet.Status
	if status == "" {
		status = entities.BetStatusPending
	}
	m := &models.BetTop3{
		UserID:       bet.UserID,
		Top1DriverID: bet.Top1DriverID,
		Top2DriverID: bet.Top2DriverID,
		Top3DriverID: bet.Top3DriverID,
		Status:       string(status),
		CreatedAt:    bet.CreatedAt,
	}

	if err := GetDB(ctx, r.db).Omit("User", "Top1Driver", "Top2Driver", "Top3Driver").Create(m).Error; err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}

	created, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*bet = *created
	return nil
}

// GetByID gets a bet with driver names
func (r *BetRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	var rows []betRow
	if err := r.joined(ctx).Where("a.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return rows[0].toEntity(), nil
}

// ListByUser lists a user's bets newest first, ties broken by the higher id
func (r *BetRepository) ListByUser(ctx context.Context, userID int64, page utils.PaginationParams) ([]*entities.Bet, int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.BetTop3{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.joined(ctx).Where("a.user_id = ?", userID).Order("a.created_at DESC, a.id DESC")
	if !page.Unbounded() {
		query = query.Offset(page.CalculateOffset()).Limit(page.Limit)
	}

	var rows []betRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	bets := make([]*entities.Bet, 0, len(rows))
	for i := range rows {
		bets = append(bets, rows[i].toEntity())
	}
	return bets, total, nil
}

// UpdateStatus sets the bet status
func (r *BetRepository) UpdateStatus(ctx context.Context, id int64, status entities.BetStatus) error {
	result := GetDB(ctx, r.db).Model(&models.BetTop3{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes the bet permanently
func (r *BetRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).Where("id = ?", id).Delete(&models.BetTop3{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *BetRepository) joined(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).
		Table("apuestas_top3 AS a").
		Select(betColumns).
		Joins("LEFT JOIN drivers d1 ON d1.id = a.top1_driver_id").
		Joins("LEFT JOIN drivers d2 ON d2.id = a.top2_driver_id").
		Joins("LEFT JOIN drivers d3 ON d3.id = a.top3_driver_id")
}

func (b betRow) toEntity() *entities.Bet {
	return &entities.Bet{
		ID:           b.ID,
		UserID:       b.UserID,
		Top1DriverID: b.Top1DriverID,
		Top2DriverID: b.Top2DriverID,
		Top3DriverID: b.Top3DriverID,
		Top1:         b.Top1Name.String,
		Top2:         b.Top2Name.String,
		Top3:         b.Top3Name.String,
		Status:       entities.BetStatus(b.Status),
		CreatedAt:    b.CreatedAt,
	}
}
