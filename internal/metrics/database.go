package metrics

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	startKey           = "metrics:start"
	slowQueryThreshold = 100 * time.Millisecond
)

// DatabaseMetricsCollector times every gorm statement through callbacks and
// samples connection pool usage on an interval.
type DatabaseMetricsCollector struct {
	metrics *Metrics
	logger  *zap.Logger
	sqlDB   *sql.DB
	ticker  *time.Ticker
	stopCh  chan struct{}
}

func NewDatabaseMetricsCollector(metrics *Metrics, logger *zap.Logger, db *gorm.DB) (
	*DatabaseMetricsCollector, error) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get sql.DB from gorm.DB", zap.Error(err))
		metrics.RecordDBConnectionError()
		return nil, err
	}

	dmc := &DatabaseMetricsCollector{
		metrics: metrics,
		logger:  logger,
		sqlDB:   sqlDB,
		stopCh:  make(chan struct{}),
	}

	if err := dmc.registerCallbacks(db); err != nil {
		return nil, err
	}

	return dmc, nil
}

func (dmc *DatabaseMetricsCollector) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()

	return errors.Join(
		cb.Create().Before("gorm:create").Register("metrics:before_create", dmc.start),
		cb.Create().After("gorm:create").Register("metrics:after_create", dmc.finish("create")),
		cb.Query().Before("gorm:query").Register("metrics:before_query", dmc.start),
		cb.Query().After("gorm:query").Register("metrics:after_query", dmc.finish("query")),
		cb.Update().Before("gorm:update").Register("metrics:before_update", dmc.start),
		cb.Update().After("gorm:update").Register("metrics:after_update", dmc.finish("update")),
		cb.Delete().Before("gorm:delete").Register("metrics:before_delete", dmc.start),
		cb.Delete().After("gorm:delete").Register("metrics:after_delete", dmc.finish("delete")),
		cb.Row().Before("gorm:row").Register("metrics:before_row", dmc.start),
		cb.Row().After("gorm:row").Register("metrics:after_row", dmc.finish("row")),
		cb.Raw().Before("gorm:raw").Register("metrics:before_raw", dmc.start),
		cb.Raw().After("gorm:raw").Register("metrics:after_raw", dmc.finish("raw")),
	)
}

func (dmc *DatabaseMetricsCollector) start(db *gorm.DB) {
	db.InstanceSet(startKey, time.Now())
}

func (dmc *DatabaseMetricsCollector) finish(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		value, ok := db.InstanceGet(startKey)
		if !ok {
			return
		}
		started, ok := value.(time.Time)
		if !ok {
			return
		}

		duration := time.Since(started)
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}

		status := "success"
		switch {
		case errors.Is(db.Error, gorm.ErrRecordNotFound):
			status = "not_found"
		case db.Error != nil:
			status = "error"
		}

		dmc.metrics.RecordDBQuery(operation, table, status, duration)

		if duration > slowQueryThreshold {
			dmc.logger.Warn("Slow database query",
				zap.String("operation", operation),
				zap.String("table", table),
				zap.String("status", status),
				zap.Duration("duration", duration),
			)
		}
	}
}

func (dmc *DatabaseMetricsCollector) Start(interval time.Duration) {
	dmc.ticker = time.NewTicker(interval)
	go dmc.collectLoop()
	dmc.logger.Info("Database metrics collector started", zap.Duration("interval", interval))
}

func (dmc *DatabaseMetricsCollector) Stop() {
	if dmc.ticker != nil {
		dmc.ticker.Stop()
	}
	close(dmc.stopCh)
	dmc.logger.Info("Database metrics collector stopped")
}

func (dmc *DatabaseMetricsCollector) collectLoop() {
	dmc.collect()

	for {
		select {
		case <-dmc.ticker.C:
			dmc.collect()
		case <-dmc.stopCh:
			return
		}
	}
}

func (dmc *DatabaseMetricsCollector) collect() {
	stats := dmc.sqlDB.Stats()

	dmc.metrics.DBConnectionsInUse.Set(float64(stats.InUse))
	dmc.metrics.DBConnectionsIdle.Set(float64(stats.Idle))

	dmc.logger.Debug("Database connection stats",
		zap.Int("openConnections", stats.OpenConnections),
		zap.Int("inUse", stats.InUse),
		zap.Int("idle", stats.Idle),
		zap.Int64("waitCount", stats.WaitCount),
		zap.Duration("waitDuration", stats.WaitDuration),
	)
}

// HealthCheck pings the database; failures count as connection errors.
func (dmc *DatabaseMetricsCollector) HealthCheck(ctx context.Context) error {
	if err := dmc.sqlDB.PingContext(ctx); err != nil {
		dmc.metrics.RecordDBConnectionError()
		return err
	}
	return nil
}
