package database

import (
	"context"

	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"github.com/YJ-0220/product-sub000/pkg/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return mysql.NewConnection(context.Background(), cfg.Database, logger)
}

// NewTxManager bounds deadlock retries by database.maxRetries.
func NewTxManager(db *gorm.DB, cfg *config.Config) repository.TxManager {
	return repository.NewTransactionManager(db, cfg.Database.MaxRetries)
}
