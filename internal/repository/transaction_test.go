package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func touch(ctx context.Context, db *gorm.DB) error {
	return GetTx(ctx, db).Exec("UPDATE points_accounts SET updated_at = NOW()").Error
}

func TestTransactionManager_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, 3)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE points_accounts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tm.WithTx(ctx, func(ctx context.Context) error { return touch(ctx, db) })

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, 3)
		failure := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := tm.WithTx(ctx, func(ctx context.Context) error { return failure })

		assert.ErrorIs(t, err, failure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retries a deadlock", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, 3)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE points_accounts").WillReturnError(&mysql.MySQLError{Number: mysqlErrDeadlock})
		mock.ExpectRollback()
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE points_accounts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		attempts := 0
		err := tm.WithTx(ctx, func(ctx context.Context) error {
			attempts++
			return touch(ctx, db)
		})

		require.NoError(t, err)
		assert.Equal(t, 2, attempts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, 2)

		for i := 0; i < 2; i++ {
			mock.ExpectBegin()
			mock.ExpectExec("UPDATE points_accounts").
				WillReturnError(&mysql.MySQLError{Number: mysqlErrLockWaitTimeout})
			mock.ExpectRollback()
		}

		err := tm.WithTx(ctx, func(ctx context.Context) error { return touch(ctx, db) })

		assert.ErrorIs(t, err, ErrTxUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call joins the outer transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, 3)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE points_accounts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE points_accounts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tm.WithTx(ctx, func(ctx context.Context) error {
			if err := touch(ctx, db); err != nil {
				return err
			}
			return tm.WithTx(ctx, func(ctx context.Context) error { return touch(ctx, db) })
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
