package tagapp

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"socialfeed/internal/core/apperror"
	"socialfeed/internal/core/content"
	tagEntity "socialfeed/internal/core/tag"
	tagPort "socialfeed/internal/ports/tag"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const maxTagNameLength = 255

// TagResolver نام برچسب‌ها را به ردیف‌های Tag مالک تبدیل می‌کند
type TagResolver struct {
	TagRepository tagPort.TagRepository
	validator     *content.Validator
}

func NewTagResolver(repo tagPort.TagRepository, validator *content.Validator) *TagResolver {
	return &TagResolver{
		TagRepository: repo,
		validator:     validator,
	}
}

// Resolve همه نام‌ها قبل از هر نوشتنی اعتبارسنجی می‌شوند؛ فراخوان باید آن را داخل تراکنش اجرا کند
func (r *TagResolver) Resolve(ctx context.Context, ownerID uuid.UUID, names []string) ([]*tagEntity.Tag, error) {
	cleaned, err := r.Normalize(names)
	if err != nil {
		return nil, err
	}

	tags := make([]*tagEntity.Tag, 0, len(cleaned))
	for _, name := range cleaned {
		t, err := r.TagRepository.FirstOrCreate(ctx, ownerID, name)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// درخواست همزمان همین برچسب را ساخته است
			t, err = r.TagRepository.FirstOrCreate(ctx, ownerID, name)
		}
		if err != nil {
			return nil, apperror.Internal(err)
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// Normalize نام‌ها را trim و تکراری‌ها را حذف می‌کند
func (r *TagResolver) Normalize(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name, err := r.validateName(name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	return cleaned, nil
}

func (r *TagResolver) validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.FieldValidation("tags", "tag name may not be blank")
	}
	if utf8.RuneCountInString(name) > maxTagNameLength {
		return "", apperror.FieldValidation("tags", "tag name is too long")
	}
	if err := r.validator.Check("tags", name); err != nil {
		return "", err
	}
	return name, nil
}
