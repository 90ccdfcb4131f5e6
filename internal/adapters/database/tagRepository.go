package database

import (
	"context"
	"errors"

	"socialfeed/internal/core/tag"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TagRepositoryDatabase پیاده‌سازی TagRepository برای دیتابیس
type TagRepositoryDatabase struct {
	db *gorm.DB
}

func NewTagRepositoryDatabase(db *gorm.DB) *TagRepositoryDatabase {
	return &TagRepositoryDatabase{db: db}
}

// FirstOrCreate برچسب (owner, name) را برمی‌گرداند یا می‌سازد
func (repo *TagRepositoryDatabase) FirstOrCreate(ctx context.Context, ownerID uuid.UUID, name string) (*tag.Tag, error) {
	db := conn(ctx, repo.db)

	var t tag.Tag
	err := db.Where("owner_id = ? AND name = ?", ownerID, name).First(&t).Error
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t = tag.Tag{OwnerID: ownerID, Name: name}
	if err := db.Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (repo *TagRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	var t tag.Tag
	if err := conn(ctx, repo.db).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// List اگر assignedOnly باشد فقط برچسب‌هایی که به حداقل یک پست وصل‌اند
func (repo *TagRepositoryDatabase) List(ctx context.Context, assignedOnly bool) ([]*tag.Tag, error) {
	db := conn(ctx, repo.db)
	q := db.Model(&tag.Tag{})
	if assignedOnly {
		q = q.Where("id IN (?)", db.Table("post_tags").Select("tag_id"))
	}

	var tags []*tag.Tag
	if err := q.Order("name DESC").Order("id DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (repo *TagRepositoryDatabase) Rename(ctx context.Context, t *tag.Tag, name string) error {
	if err := conn(ctx, repo.db).Model(t).Update("name", name).Error; err != nil {
		return err
	}
	t.Name = name
	return nil
}
