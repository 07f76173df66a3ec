package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"f1-bets.backend/internal/domain/entities"
	"f1-bets.backend/internal/domain/repositories"
	"f1-bets.backend/pkg/logger"
	redispkg "f1-bets.backend/pkg/redis"
)

// DriverCatalogCacheKey holds the serialized choice list
const DriverCatalogCacheKey = "drivers:catalog"

var (
	cacheGet = redispkg.Get
	cacheSet = redispkg.Set
)

// DriverUsecase serves the driver choice list
type DriverUsecase struct {
	driverRepo repositories.DriverRepository
	cacheTTL   time.Duration
}

// NewDriverUsecase creates a new driver usecase. A non-positive ttl disables caching.
func NewDriverUsecase(driverRepo repositories.DriverRepository, cacheTTL time.Duration) *DriverUsecase {
	return &DriverUsecase{
		driverRepo: driverRepo,
		cacheTTL:   cacheTTL,
	}
}

// List returns distinct driver names with their canonical id
func (u *DriverUsecase) List(ctx context.Context) ([]entities.DriverOption, error) {
	if options, ok := u.fromCache(ctx); ok {
		return options, nil
	}

	options, err := u.driverRepo.ListDistinctByName(ctx)
	if err != nil {
		return nil, err
	}

	u.storeCache(ctx, options)
	return options, nil
}

// Refresh reloads the catalog from the store and overwrites the cached copy.
// It returns the number of distinct names cached.
func (u *DriverUsecase) Refresh(ctx context.Context) (int, error) {
	options, err := u.driverRepo.ListDistinctByName(ctx)
	if err != nil {
		return 0, err
	}
	u.storeCache(ctx, options)
	return len(options), nil
}

func (u *DriverUsecase) fromCache(ctx context.Context) ([]entities.DriverOption, bool) {
	if u.cacheTTL <= 0 {
		return nil, false
	}

	raw, err := cacheGet(ctx, DriverCatalogCacheKey)
	if err != nil {
		if !errors.Is(err, redispkg.ErrDisabled) && !errors.Is(err, redispkg.ErrNil) {
			logger.Warn(ctx, "Driver catalog cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var options []entities.DriverOption
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		logger.Warn(ctx, "Driver catalog cache entry is corrupt", zap.Error(err))
		return nil, false
	}
	return options, true
}

func (u *DriverUsecase) storeCache(ctx context.Context, options []entities.DriverOption) {
	if u.cacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(options)
	if err != nil {
		return
	}
	if err := cacheSet(ctx, DriverCatalogCacheKey, payload, u.cacheTTL); err != nil && !errors.Is(err, redispkg.ErrDisabled) {
		logger.Warn(ctx, "Driver catalog cache write failed", zap.Error(err))
	}
}
