package repository

import (
	"context"
	"errors"

	"github.com/wanderlands/backend/internal/entity"
	"github.com/wanderlands/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	IsUsernameTaken(ctx context.Context, username string) (bool, error)
	IsAdmin(ctx context.Context, username string) (bool, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	result := entity.User{}
	if err := xcontext.DB(ctx).Take(&result, "username=?", username).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Where("username=?", username).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *userRepository) IsAdmin(ctx context.Context, username string) (bool, error) {
	user, err := r.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return user.IsAdmin, nil
}
