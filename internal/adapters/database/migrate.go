package database

import (
	"socialfeed/internal/core/follower"
	"socialfeed/internal/core/post"
	"socialfeed/internal/core/tag"
	"socialfeed/internal/core/user"

	"gorm.io/gorm"
)

// Migrate اعمال مایگریشن برای مدل‌ها
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&tag.Tag{},
		&post.Post{},
		&follower.Follower{},
		&follower.Following{},
	)
}
