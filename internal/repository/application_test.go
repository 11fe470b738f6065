package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplication_CountByOrderAndStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("locking read inside a transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewApplicationRepository(db)
		tm := NewTransactionManager(db, 1)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `order_applications` WHERE .*order_request_id = \\? AND status = \\?.* FOR UPDATE$").
			WithArgs(int64(7), model.ApplicationStatusAccepted).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectCommit()

		var count int64
		err := tm.WithTx(ctx, func(ctx context.Context) error {
			var err error
			count, err = repo.CountByOrderAndStatus(ctx, 7, model.ApplicationStatusAccepted)
			return err
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("plain read outside a transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewApplicationRepository(db)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `order_applications` WHERE .*status = \\?\\)?$").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		count, err := repo.CountByOrderAndStatus(ctx, 7, model.ApplicationStatusAccepted)

		require.NoError(t, err)
		assert.Zero(t, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
