package database

import (
	"context"

	"socialfeed/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// UserRepositoryDatabase پیاده‌سازی UserRepository برای دیتابیس
type UserRepositoryDatabase struct {
	db *gorm.DB
}

// NewUserRepositoryDatabase سازنده UserRepositoryDatabase
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, user *user.User) (*user.User, error) {
	if err := conn(ctx, repo.db).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := conn(ctx, repo.db).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := conn(ctx, repo.db).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := conn(ctx, repo.db).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByEmailOrUsername(ctx context.Context, email, username string) (*user.User, error) {
	var u user.User
	if err := conn(ctx, repo.db).Where("email = ? OR username = ?", email, username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Update فقط فیلدهای داده‌شده را بروزرسانی می‌کند
func (repo *UserRepositoryDatabase) Update(ctx context.Context, u *user.User, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return conn(ctx, repo.db).Model(u).Updates(fields).Error
}
