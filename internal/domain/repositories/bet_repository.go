package repositories

import (
	"context"

	"f1-bets.backend/internal/domain/entities"
	"f1-bets.backend/pkg/utils"
)

// BetRepository defines top-3 bet data operations.
// Returned bets carry the joined driver names.
type BetRepository interface {
	Create(ctx context.Context, bet *entities.Bet) error
	GetByID(ctx context.Context, id int64) (*entities.Bet, error)
	ListByUser(ctx context.Context, userID int64, page utils.PaginationParams) ([]*entities.Bet, int64, error)
	UpdateStatus(ctx context.Context, id int64, status entities.BetStatus) error
	Delete(ctx context.Context, id int64) error
}
