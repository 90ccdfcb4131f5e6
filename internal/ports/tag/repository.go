package tag

import (
	"context"

	"socialfeed/internal/core/tag"

	"github.com/gofrs/uuid"
)

// TagRepository پورت برای ذخیره‌سازی و بازیابی برچسب‌ها
type TagRepository interface {
	FirstOrCreate(ctx context.Context, ownerID uuid.UUID, name string) (*tag.Tag, error)
	FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error)
	List(ctx context.Context, assignedOnly bool) ([]*tag.Tag, error)
	Rename(ctx context.Context, t *tag.Tag, name string) error
}

type TagDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	User string `json:"user"`
}

func ToTagDTO(t *tag.Tag) TagDTO {
	return TagDTO{
		ID:   t.ID.String(),
		Name: t.Name,
		User: t.OwnerID.String(),
	}
}
