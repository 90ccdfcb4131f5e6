package database

import (
	"context"

	"socialfeed/internal/core/post"
	"socialfeed/internal/core/tag"
	postPort "socialfeed/internal/ports/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// PostRepositoryDatabase پیاده‌سازی PostRepository برای دیتابیس
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase سازنده PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	// برچسب‌ها جداگانه با ReplaceTags وصل می‌شوند
	if err := conn(ctx, repo.db).Omit("Tags").Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := conn(ctx, repo.db).Preload("Tags", orderTags).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) List(ctx context.Context, filter postPort.ListFilter) ([]*post.Post, error) {
	db := conn(ctx, repo.db)
	q := db.Model(&post.Post{}).Preload("Tags", orderTags)
	if len(filter.TagIDs) > 0 {
		// subquery تا پستی که چند برچسب فیلترشده دارد تکراری نشود
		q = q.Where("id IN (?)", db.Table("post_tags").Select("post_id").Where("tag_id IN ?", filter.TagIDs))
	}
	if filter.Start > 0 {
		q = q.Offset(filter.Start)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var posts []*post.Post
	if err := q.Order("created_at DESC").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return conn(ctx, repo.db).Model(p).Omit("Tags").Updates(fields).Error
}

// ReplaceTags ارتباط‌های قبلی حذف می‌شوند؛ خود برچسب‌ها باقی می‌مانند
func (repo *PostRepositoryDatabase) ReplaceTags(ctx context.Context, p *post.Post, tags []*tag.Tag) error {
	assoc := conn(ctx, repo.db).Model(p).Association("Tags")
	if len(tags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(tags)
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, p *post.Post) error {
	db := conn(ctx, repo.db)
	if err := db.Model(p).Association("Tags").Clear(); err != nil {
		return err
	}
	return db.Delete(p).Error
}

func orderTags(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}
