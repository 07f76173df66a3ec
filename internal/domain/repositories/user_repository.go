package repositories

import (
	"context"

	"f1-bets.backend/internal/domain/entities"
)

// UserRepository defines user data operations.
// Emails are expected already normalized by the caller.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
