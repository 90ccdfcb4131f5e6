package user

import (
	"context"

	"socialfeed/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*user.User, error)
	Update(ctx context.Context, user *user.User, fields map[string]any) error
}

// DTOها برای UseCase
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// ProfileUpdate فیلدهای nil تغییر نمی‌کنند
type ProfileUpdate struct {
	Email    *string
	Username *string
	Name     *string
	Password *string
}

func ToUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:       u.ID.String(),
		Email:    u.Email,
		Username: u.Username,
		Name:     u.Name,
	}
}
