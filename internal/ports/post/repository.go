package post

import (
	"context"

	"socialfeed/internal/core/post"
	"socialfeed/internal/core/tag"
	tagPort "socialfeed/internal/ports/tag"

	"github.com/gofrs/uuid"
)

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	List(ctx context.Context, filter ListFilter) ([]*post.Post, error)
	Update(ctx context.Context, post *post.Post, fields map[string]any) error
	ReplaceTags(ctx context.Context, post *post.Post, tags []*tag.Tag) error
	Delete(ctx context.Context, post *post.Post) error
}

// ListFilter اگر TagIDs خالی نباشد فقط پست‌های دارای حداقل یکی از آنها
type ListFilter struct {
	TagIDs []uuid.UUID
	Start  int
	Limit  int
}

type TagInput struct {
	Name string `json:"name"`
}

// PostInput ورودی ساخت/ویرایش پست؛ Tags == nil یعنی برچسب‌ها دست نخورند
type PostInput struct {
	Title       *string
	Description *string
	Tags        []TagInput
}

// ImageUpload فایل دریافتی از multipart
type ImageUpload struct {
	Filename string
	Content  []byte
}

// DTOها برای UseCase
type PostSummaryDTO struct {
	ID        string           `json:"id"`
	User      string           `json:"user"`
	Title     string           `json:"title"`
	Tags      []tagPort.TagDTO `json:"tags"`
	CreatedAt string           `json:"created_at"`
}

type PostDetailDTO struct {
	ID          string           `json:"id"`
	User        string           `json:"user"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Image       string           `json:"image,omitempty"`
	Tags        []tagPort.TagDTO `json:"tags"`
	CreatedAt   string           `json:"created_at"`
}

type PostImageDTO struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}
