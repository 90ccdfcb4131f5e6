package database

import (
	"context"

	"socialfeed/internal/core/follower"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// FollowerRepositoryDatabase پیاده‌سازی FollowerRepository برای دیتابیس
type FollowerRepositoryDatabase struct {
	db *gorm.DB
}

// NewFollowerRepositoryDatabase سازنده FollowerRepositoryDatabase
func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{db: db}
}

func (repo *FollowerRepositoryDatabase) AddFollower(ctx context.Context, f *follower.Follower) error {
	return conn(ctx, repo.db).Create(f).Error
}

func (repo *FollowerRepositoryDatabase) AddFollowing(ctx context.Context, f *follower.Following) error {
	return conn(ctx, repo.db).Create(f).Error
}

func (repo *FollowerRepositoryDatabase) IsFollowing(ctx context.Context, followerID, targetID uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx, repo.db).Model(&follower.Follower{}).
		Where("follower_id = ? AND target_user_id = ?", followerID, targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FollowerRepositoryDatabase) GetFollowersByUserID(ctx context.Context, userID uuid.UUID) ([]*follower.Follower, error) {
	var followers []*follower.Follower
	if err := conn(ctx, repo.db).Where("target_user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&followers).Error; err != nil {
		return nil, err
	}
	return followers, nil
}

func (repo *FollowerRepositoryDatabase) GetFollowingByUserID(ctx context.Context, userID uuid.UUID) ([]*follower.Following, error) {
	var following []*follower.Following
	if err := conn(ctx, repo.db).Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&following).Error; err != nil {
		return nil, err
	}
	return following, nil
}
