package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"f1-bets.backend/internal/domain/entities"
	domainerrors "f1-bets.backend/internal/domain/errors"
	"f1-bets.backend/internal/domain/repositories"
	"f1-bets.backend/pkg/crypto"
	"f1-bets.backend/pkg/jwt"
)

const (
	msgMissingRegisterFields = "nombre, apellido, email and password are required"
	msgMissingLoginFields    = "email and password are required"
	msgWeakPassword          = "password must be at least 6 characters with one lowercase letter, one uppercase letter and one digit"
	msgInvalidBirthDate      = "fecha_nacimiento must use the YYYY-MM-DD format"
	msgEmailTaken            = "email already registered"
	msgBadCredentials        = "invalid email or password"
	msgWrongCurrentPassword  = "current password is incorrect"
	msgUserNotFound          = "user not found"
)

// AuthUsecase handles registration, login and credential changes
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	uow        repositories.UnitOfWork
	hasher     *crypto.Hasher
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	hasher *crypto.Hasher,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		uow:        uow,
		hasher:     hasher,
		jwtService: jwtService,
	}
}

// Register creates a user with a unique, normalized email
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	if input == nil {
		return nil, domainerrors.Validation(msgMissingRegisterFields)
	}
	name := strings.TrimSpace(input.Name)
	surname := strings.TrimSpace(input.Surname)
	email := entities.NormalizeEmail(input.Email)
	birthDate := strings.TrimSpace(input.BirthDate)

	if name == "" || surname == "" || email == "" || input.Password == "" {
		return nil, domainerrors.Validation(msgMissingRegisterFields)
	}
	if birthDate != "" {
		if _, err := time.Parse(entities.BirthDateLayout, birthDate); err != nil {
			return nil, domainerrors.Validation(msgInvalidBirthDate)
		}
	}
	if !entities.PasswordMeetsPolicy(input.Password) {
		return nil, domainerrors.Validation(msgWeakPassword)
	}

	passwordHash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:         name,
		Surname:      null.StringFrom(surname),
		Email:        email,
		PasswordHash: passwordHash,
		BirthDate:    null.NewString(birthDate, birthDate != ""),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		_, err := u.userRepo.GetByEmail(txCtx, email)
		if err == nil {
			return domainerrors.Conflict(msgEmailTaken)
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		if err := u.userRepo.Create(txCtx, user); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				return domainerrors.Conflict(msgEmailTaken)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and issues an access token.
// Unknown email and wrong password fail identically.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	if input == nil {
		return nil, domainerrors.Validation(msgMissingLoginFields)
	}
	email := entities.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.Validation(msgMissingLoginFields)
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials(msgBadCredentials)
		}
		return nil, err
	}

	if !u.hasher.Verify(user.PasswordHash, input.Password) {
		return nil, domainerrors.InvalidCredentials(msgBadCredentials)
	}

	token, err := u.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		User:  user,
		Token: token,
	}, nil
}

// ChangePassword replaces the credential after checking the current password
func (u *AuthUsecase) ChangePassword(ctx context.Context, input *entities.ChangePasswordInput) error {
	if input == nil || input.UserID <= 0 || input.CurrentPassword == "" || input.NewPassword == "" {
		return domainerrors.Validation("user_id, current_password and new_password are required")
	}
	if !entities.PasswordMeetsPolicy(input.NewPassword) {
		return domainerrors.Validation(msgWeakPassword)
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		user, err := u.userRepo.GetByID(txCtx, input.UserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound(msgUserNotFound)
			}
			return err
		}

		if !u.hasher.Verify(user.PasswordHash, input.CurrentPassword) {
			return domainerrors.InvalidCredentials(msgWrongCurrentPassword)
		}

		passwordHash, err := u.hasher.Hash(input.NewPassword)
		if err != nil {
			return err
		}
		return u.userRepo.UpdatePassword(txCtx, user.ID, passwordHash)
	})
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id int64) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgUserNotFound)
		}
		return nil, err
	}
	return user, nil
}
