package database

import (
	"errors"
	"fmt"

	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/migrations"
	"github.com/YJ-0220/product-sub000/pkg/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

type Migrator struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// NewMigrator reads the embedded schema and points golang-migrate at the
// configured database.
func NewMigrator(cfg *config.Config, logger *zap.Logger) (*Migrator, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, MigrateURL(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migrations: %w", err)
	}
	m.Log = migrateLogger{logger: logger}

	return &Migrator{m: m, logger: logger}, nil
}

// MigrateURL is the golang-migrate URL for cfg. Migration files hold several
// statements each, so multiStatements is switched on.
func MigrateURL(cfg mysql.Config) string {
	return "mysql://" + mysql.BuildDSN(cfg) + "&multiStatements=true"
}

func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return mg.logVersion()
}

// Down rolls back the given number of migrations.
func (mg *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("down steps must be positive, got %d", steps)
	}
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return mg.logVersion()
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) logVersion() error {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		mg.logger.Info("Schema is empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	mg.logger.Info("Schema migrated", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

type migrateLogger struct {
	logger *zap.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Sugar().Infof(format, v...)
}

func (l migrateLogger) Verbose() bool {
	return false
}
