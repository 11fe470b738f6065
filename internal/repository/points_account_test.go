package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsAccount_GetByUserID(t *testing.T) {
	ctx := context.Background()
	columns := []string{"id", "user_id", "balance"}

	t.Run("locks the row inside a transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPointsAccountRepository(db)
		tm := NewTransactionManager(db, 1)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT \\* FROM `points_accounts` WHERE user_id = \\? .* FOR UPDATE").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(1, 10, "250.00"))
		mock.ExpectCommit()

		var account *model.PointsAccount
		err := tm.WithTx(ctx, func(ctx context.Context) error {
			var err error
			account, err = repo.GetByUserID(ctx, 10)
			return err
		})

		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("250")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("plain read outside a transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPointsAccountRepository(db)

		mock.ExpectQuery("SELECT \\* FROM `points_accounts` WHERE user_id = \\? ORDER BY .* LIMIT \\S+$").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByUserID(ctx, 10)

		assert.ErrorIs(t, err, ErrAccountNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPointsAccount_DecreaseBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("guards the balance in the update", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPointsAccountRepository(db)

		mock.ExpectExec("UPDATE `points_accounts` SET .* WHERE user_id = \\? AND balance >= CAST\\(\\? AS DECIMAL\\(20,2\\)\\)").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DecreaseBalance(ctx, 10, decimal.RequireFromString("400"))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matching row means insufficient points", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPointsAccountRepository(db)

		mock.ExpectExec("UPDATE `points_accounts`").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DecreaseBalance(ctx, 10, decimal.RequireFromString("400"))

		assert.ErrorIs(t, err, ErrInsufficientPoints)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPointsAccount_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPointsAccountRepository(db)

	mock.ExpectExec("INSERT INTO `points_accounts`").
		WillReturnError(&mysql.MySQLError{Number: mysqlErrDuplicateEntry, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), &model.PointsAccount{UserID: 10})

	assert.ErrorIs(t, err, ErrAccountExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
