package usecases

import (
	"context"
	"errors"
	"time"

	"f1-bets.backend/internal/domain/entities"
	domainerrors "f1-bets.backend/internal/domain/errors"
	"f1-bets.backend/internal/domain/repositories"
	"f1-bets.backend/pkg/utils"
)

const (
	msgBetNotFound      = "bet not found"
	msgPicksNotDistinct = "picks must be distinct"
	msgInvalidDriver    = "invalid driver"
	msgInvalidStatus    = "status must be one of pendiente, activa, rechazada"
)

// BetUsecase manages the top-3 bet ledger
type BetUsecase struct {
	betRepo    repositories.BetRepository
	userRepo   repositories.UserRepository
	driverRepo repositories.DriverRepository
	uow        repositories.UnitOfWork
	now        func() time.Time
}

// NewBetUsecase creates a new bet usecase
func NewBetUsecase(
	betRepo repositories.BetRepository,
	userRepo repositories.UserRepository,
	driverRepo repositories.DriverRepository,
	uow repositories.UnitOfWork,
) *BetUsecase {
	return &BetUsecase{
		betRepo:    betRepo,
		userRepo:   userRepo,
		driverRepo: driverRepo,
		uow:        uow,
		now:        time.Now,
	}
}

// WithClock replaces the creation timestamp source
func (u *BetUsecase) WithClock(now func() time.Time) *BetUsecase {
	u.now = now
	return u
}

// Create records a pending bet for userID
func (u *BetUsecase) Create(ctx context.Context, userID int64, picks entities.Picks) (*entities.Bet, error) {
	if userID <= 0 {
		return nil, domainerrors.Validation("user_id must be a positive integer")
	}
	if !picks.Positive() {
		return nil, domainerrors.Validation("top1, top2 and top3 must be positive driver ids")
	}
	if !picks.Distinct() {
		return nil, domainerrors.Validation(msgPicksNotDistinct)
	}

	bet := &entities.Bet{
		UserID:       userID,
		Top1DriverID: picks.Top1,
		Top2DriverID: picks.Top2,
		Top3DriverID: picks.Top3,
		Status:       entities.BetStatusPending,
		CreatedAt:    u.now().UTC().Truncate(time.Second),
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.userRepo.GetByID(txCtx, userID); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound(msgUserNotFound)
			}
			return err
		}

		found, err := u.driverRepo.CountExisting(txCtx, picks.IDs())
		if err != nil {
			return err
		}
		if found < int64(len(picks.IDs())) {
			return domainerrors.Validation(msgInvalidDriver)
		}

		return u.betRepo.Create(txCtx, bet)
	})
	if err != nil {
		return nil, err
	}

	return bet, nil
}

// ListForUser lists a user's bets newest first
func (u *BetUsecase) ListForUser(ctx context.Context, userID int64, page utils.PaginationParams) ([]*entities.Bet, int64, error) {
	if userID <= 0 {
		return nil, 0, domainerrors.Validation("user_id must be a positive integer")
	}
	return u.betRepo.ListByUser(ctx, userID, page)
}

// GetByID gets one bet with driver names
func (u *BetUsecase) GetByID(ctx context.Context, betID int64) (*entities.Bet, error) {
	if betID <= 0 {
		return nil, domainerrors.Validation("bet_id must be a positive integer")
	}
	bet, err := u.betRepo.GetByID(ctx, betID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgBetNotFound)
		}
		return nil, err
	}
	return bet, nil
}

// UpdateStatus changes the status of a bet owned by userID
func (u *BetUsecase) UpdateStatus(ctx context.Context, betID, userID int64, rawStatus string) (*entities.Bet, error) {
	if err := validateBetOwnerIDs(betID, userID); err != nil {
		return nil, err
	}
	status, ok := entities.ParseBetStatus(rawStatus)
	if !ok {
		return nil, domainerrors.Validation(msgInvalidStatus)
	}

	var updated *entities.Bet
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		bet, err := u.ownedBet(txCtx, betID, userID)
		if err != nil {
			return err
		}
		if !bet.Status.CanTransitionTo(status) {
			return domainerrors.Validation("bet is already " + string(bet.Status))
		}

		if err := u.betRepo.UpdateStatus(txCtx, betID, status); err != nil {
			return err
		}

		updated, err = u.betRepo.GetByID(txCtx, betID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a bet owned by userID
func (u *BetUsecase) Delete(ctx context.Context, betID, userID int64) error {
	if err := validateBetOwnerIDs(betID, userID); err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.ownedBet(txCtx, betID, userID); err != nil {
			return err
		}
		return u.betRepo.Delete(txCtx, betID)
	})
}

// ownedBet loads the bet; missing and foreign bets are indistinguishable
func (u *BetUsecase) ownedBet(ctx context.Context, betID, userID int64) (*entities.Bet, error) {
	bet, err := u.betRepo.GetByID(ctx, betID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgBetNotFound)
		}
		return nil, err
	}
	if !bet.OwnedBy(userID) {
		return nil, domainerrors.NotFound(msgBetNotFound)
	}
	return bet, nil
}

func validateBetOwnerIDs(betID, userID int64) error {
	if betID <= 0 {
		return domainerrors.Validation("bet_id must be a positive integer")
	}
	if userID <= 0 {
		return domainerrors.Validation("user_id must be a positive integer")
	}
	return nil
}
