package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

var ErrTxUnavailable = errors.New("TX_UNAVAILABLE")

type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

type TransactionManager struct {
	db         *gorm.DB
	maxRetries int
}

func NewTransactionManager(db *gorm.DB, maxRetries int) TxManager {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &TransactionManager{db: db, maxRetries: maxRetries}
}

// WithTx runs fn as one unit of work. A call made while a transaction is
// already bound to ctx joins it; only the outermost call commits or retries.
func (tm *TransactionManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= tm.maxRetries; attempt++ {
		err = tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(context.WithValue(ctx, txKey{}, tx))
		})
		if err == nil || !isRetryable(err) {
			return err
		}
	}

	return errors.Join(ErrTxUnavailable, err)
}

func GetTx(ctx context.Context, db *gorm.DB) *gorm.DB {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	if !ok {
		return db.WithContext(ctx)
	}
	return tx
}

// lockForUpdate adds a row lock when running inside a transaction. Dialects
// without row locks (sqlite) drop the clause.
func lockForUpdate(ctx context.Context, db *gorm.DB) *gorm.DB {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); !ok {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isRetryable(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == mysqlErrDeadlock || mysqlErr.Number == mysqlErrLockWaitTimeout
}

func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
