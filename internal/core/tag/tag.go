package tag

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Tag برچسب‌ها برای هر کاربر جداگانه هستند؛ (owner, name) یکتاست
type Tag struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:uniq_tag_owner_name"`
	OwnerID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_tag_owner_name"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (t *Tag) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

func (t *Tag) GetOwnerID() uuid.UUID {
	return t.OwnerID
}
