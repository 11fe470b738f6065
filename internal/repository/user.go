package repository

import (
	"context"
	"errors"

	"github.com/YJ-0220/product-sub000/internal/model"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("USER_NOT_FOUND")

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type user struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &user{db: db}
}

func (r *user) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	err := GetTx(ctx, r.db).Where("id = ?", id).First(&u).Error
	if err == nil {
		return &u, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	return nil, err
}
