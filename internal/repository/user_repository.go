package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"companyhub/internal/model"
)

// Verification flag columns settable through the workflow. Flags only move
// false to true; nothing in the current scope resets them.
const (
	FlagEmailVerified  = "is_email_verified"
	FlagMobileVerified = "is_mobile_verified"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetVerificationFlag(ctx context.Context, id uuid.UUID, flag string, value bool) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetVerificationFlag updates exactly one verification column and returns the
// updated record. gorm.ErrRecordNotFound is propagated when the user is missing.
func (r *userRepository) SetVerificationFlag(ctx context.Context, id uuid.UUID, flag string, value bool) (*model.User, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update(flag, value)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Update matched no row; distinguish missing user from a no-op write.
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}
