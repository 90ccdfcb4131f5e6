package follower

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Follower یعنی FollowerID کاربر TargetUserID را دنبال می‌کند
type Follower struct {
	ID           uuid.UUID `gorm:"primary_key;type:char(36)"`
	TargetUserID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_target_follower"`
	FollowerID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_target_follower;index"`
	FollowerName string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (f *Follower) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

// Following تصویر آینه‌ای Follower از دید دنبال‌کننده
type Following struct {
	ID            uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID        uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_user_following"`
	FollowingID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_user_following"`
	FollowingName string    `gorm:"type:varchar(255);not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (f *Following) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

func (Following) TableName() string {
	return "followings"
}
