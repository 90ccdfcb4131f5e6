package user

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)"`
	Email       string    `gorm:"type:varchar(254);uniqueIndex;not null"`
	Username    string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Password    string    `gorm:"not null"` // فقط hash ذخیره می‌شود
	IsActive    bool      `gorm:"not null;default:true"`
	IsStaff     bool      `gorm:"not null;default:false"`
	IsSuperuser bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

// GetOwnerID هر کاربر مالک پروفایل خودش است
func (u *User) GetOwnerID() uuid.UUID {
	return u.ID
}
