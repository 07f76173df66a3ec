package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"f1-bets.backend/pkg/logger"
)

// CatalogRefresher rebuilds the cached driver catalog
type CatalogRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// DriverCatalogRefreshJob keeps the cached driver catalog in step with the
// drivers table, which the ETL rewrites outside this service
type DriverCatalogRefreshJob struct {
	refresher CatalogRefresher
	interval  time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewDriverCatalogRefreshJob creates a job that refreshes every interval
func NewDriverCatalogRefreshJob(refresher CatalogRefresher, interval time.Duration) *DriverCatalogRefreshJob {
	return &DriverCatalogRefreshJob{
		refresher: refresher,
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

// Start refreshes once, then on every tick until ctx ends or Stop is called
func (j *DriverCatalogRefreshJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting driver catalog refresh job", zap.Duration("interval", j.interval))

	j.refreshCatalog(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(context.Background(), "Driver catalog refresh job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Driver catalog refresh job stopped")
			return
		case <-ticker.C:
			j.refreshCatalog(ctx)
		}
	}
}

// Stop ends the job; calling it more than once is safe
func (j *DriverCatalogRefreshJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *DriverCatalogRefreshJob) refreshCatalog(ctx context.Context) {
	n, err := j.refresher.Refresh(ctx)
	if err != nil {
		logger.Error(ctx, "Error refreshing driver catalog", zap.Error(err))
		return
	}
	logger.Debug(ctx, "Driver catalog refreshed", zap.Int("drivers", n))
}
