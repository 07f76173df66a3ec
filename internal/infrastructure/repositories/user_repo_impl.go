package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"f1-bets.backend/internal/domain/entities"
	domainerrors "f1-bets.backend/internal/domain/errors"
	"f1-bets.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and fills in the assigned id and creation time
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		Nombre:          user.Name,
		Apellido:        user.Surname,
		Email:           user.Email,
		Contrasena:      user.PasswordHash,
		FechaNacimiento: user.BirthDate,
		Monto:           user.Balance,
		CreatedAt:       user.CreatedAt,
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by its normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return toUserEntity(&m), nil
}

// UpdatePassword replaces the stored credential
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Update("contrasena", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Name:         m.Nombre,
		Surname:      m.Apellido,
		Email:        m.Email,
		PasswordHash: m.Contrasena,
		BirthDate:    m.FechaNacimiento,
		Balance:      m.Monto,
		CreatedAt:    m.CreatedAt,
	}
}
