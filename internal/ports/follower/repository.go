package follower

import (
	"context"

	"socialfeed/internal/core/follower"

	"github.com/gofrs/uuid"
)

// FollowerRepository پورت برای ذخیره‌سازی و بازیابی دنبال‌کنندگان
type FollowerRepository interface {
	AddFollower(ctx context.Context, follower *follower.Follower) error
	AddFollowing(ctx context.Context, following *follower.Following) error
	IsFollowing(ctx context.Context, followerID, targetID uuid.UUID) (bool, error)
	GetFollowersByUserID(ctx context.Context, userID uuid.UUID) ([]*follower.Follower, error)
	GetFollowingByUserID(ctx context.Context, userID uuid.UUID) ([]*follower.Following, error)
}

// DTOها برای UseCase
type FollowerDTO struct {
	ID           string `json:"id"`
	TargetUser   string `json:"target_user"`
	FollowerID   string `json:"follower_id"`
	FollowerName string `json:"follower_name"`
	CreatedAt    string `json:"created_at"`
}

type FollowingDTO struct {
	ID            string `json:"id"`
	User          string `json:"user"`
	FollowingID   string `json:"following_id"`
	FollowingName string `json:"following_name"`
	CreatedAt     string `json:"created_at"`
}
