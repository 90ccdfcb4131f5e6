package post

import (
	"time"

	"socialfeed/internal/core/tag"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)"`
	OwnerID     uuid.UUID `gorm:"type:char(36);not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	Image       string    `gorm:"type:varchar(255)"` // مسیر فایل در storage، خالی یعنی بدون تصویر
	Tags        []tag.Tag `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

func (p *Post) GetOwnerID() uuid.UUID {
	return p.OwnerID
}
