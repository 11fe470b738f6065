package service

import (
	"context"
	"errors"

	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"go.uber.org/zap"
)

var ErrUnknownActor = errors.New("UNKNOWN_ACTOR")

type UserService interface {
	// ResolveActor maps an authenticated subject to its stored role. Tokens
	// carry a role too, but the stored one wins.
	ResolveActor(ctx context.Context, userID int64) (Actor, error)
}

type user struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) UserService {
	return &user{userRepo: userRepo, logger: logger}
}

func (u *user) ResolveActor(ctx context.Context, userID int64) (Actor, error) {
	found, err := u.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return Actor{}, NewServiceError(constants.ErrCodeUnauthorized, ErrUnknownActor)
	}

	if err != nil {
		u.logger.Error("Failed to resolve actor", zap.Int64("userID", userID), zap.Error(err))
		return Actor{}, dbError(err)
	}

	if !found.Role.Valid() {
		u.logger.Warn("User has unknown role",
			zap.Int64("userID", userID),
			zap.String("role", string(found.Role)))
		return Actor{}, NewServiceError(constants.ErrCodeUnauthorized, ErrUnknownActor)
	}

	return Actor{UserID: found.ID, Role: found.Role}, nil
}
