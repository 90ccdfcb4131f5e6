package postapp

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"socialfeed/internal/core/access"
	"socialfeed/internal/core/apperror"
	"socialfeed/internal/core/content"
	postEntity "socialfeed/internal/core/post"
	tagEntity "socialfeed/internal/core/tag"
	postPort "socialfeed/internal/ports/post"
	storagePort "socialfeed/internal/ports/storage"
	tagPort "socialfeed/internal/ports/tag"
	"socialfeed/internal/ports/transaction"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	maxTitleLength  = 255
)

// TagResolver تبدیل نام برچسب‌ها به Tag برای مالک پست
type TagResolver interface {
	Resolve(ctx context.Context, ownerID uuid.UUID, names []string) ([]*tagEntity.Tag, error)
}

type PostService struct {
	PostRepository postPort.PostRepository
	Transactor     transaction.Transactor
	Storage        storagePort.Storage
	tagResolver    TagResolver
	validator      *content.Validator
	guard          *access.Guard
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	transactor transaction.Transactor,
	storage storagePort.Storage,
	tagResolver TagResolver,
	validator *content.Validator,
	guard *access.Guard,
	maxUploadBytes int64,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository: postRepo,
		Transactor:     transactor,
		Storage:        storage,
		tagResolver:    tagResolver,
		validator:      validator,
		guard:          guard,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// CreatePost ایجاد پست و اتصال برچسب‌ها در یک تراکنش
func (s *PostService) CreatePost(ctx context.Context, actorID string, in postPort.PostInput) (*postPort.PostDetailDTO, error) {
	uid, err := uuid.FromString(actorID)
	if err != nil {
		return nil, apperror.Unauthenticated("invalid user")
	}

	if in.Title == nil {
		return nil, apperror.FieldValidation("title", "this field is required")
	}
	if in.Description == nil {
		return nil, apperror.FieldValidation("description", "this field is required")
	}
	fields, err := s.validateFields(in)
	if err != nil {
		return nil, err
	}

	p := &postEntity.Post{
		OwnerID:     uid,
		Title:       fields["title"].(string),
		Description: fields["description"].(string),
	}

	err = s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.PostRepository.Create(ctx, p); err != nil {
			return apperror.Internal(err)
		}
		return s.attachTags(ctx, p, in.Tags)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("✅ Post created", zap.String("postID", p.ID.String()), zap.String("userID", actorID))
	return s.reload(ctx, p.ID)
}

// ListPosts جدیدترین‌ها اول؛ فیلتر برچسب یعنی حداقل یکی از tagIDs
func (s *PostService) ListPosts(ctx context.Context, tagIDs []string, start, limit int) ([]*postPort.PostSummaryDTO, error) {
	filter := postPort.ListFilter{Start: start, Limit: limit}
	if filter.Start < 0 {
		filter.Start = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	for _, raw := range tagIDs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.FromString(raw)
		if err != nil {
			return nil, apperror.FieldValidation("tags", "invalid tag id "+raw)
		}
		filter.TagIDs = append(filter.TagIDs, id)
	}

	posts, err := s.PostRepository.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	dtos := make([]*postPort.PostSummaryDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, &postPort.PostSummaryDTO{
			ID:        p.ID.String(),
			User:      p.OwnerID.String(),
			Title:     p.Title,
			Tags:      toTagDTOs(p.Tags),
			CreatedAt: formatTime(p.CreatedAt),
		})
	}
	return dtos, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*postPort.PostDetailDTO, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDetailDTO(p), nil
}

// UpdatePost برای PUT (partial=false) عنوان و توضیحات الزامی است
func (s *PostService) UpdatePost(ctx context.Context, actorID, id string, in postPort.PostInput, partial bool) (*postPort.PostDetailDTO, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(uuid.FromStringOrNil(actorID), p); err != nil {
		s.logger.Warn("⚠️ Post update denied", zap.String("postID", id), zap.String("actorID", actorID))
		return nil, err
	}

	if !partial {
		if in.Title == nil {
			return nil, apperror.FieldValidation("title", "this field is required")
		}
		if in.Description == nil {
			return nil, apperror.FieldValidation("description", "this field is required")
		}
	}
	fields, err := s.validateFields(in)
	if err != nil {
		return nil, err
	}

	err = s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.PostRepository.Update(ctx, p, fields); err != nil {
			return apperror.Internal(err)
		}
		if in.Tags == nil {
			return nil
		}
		return s.attachTags(ctx, p, in.Tags)
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, p.ID)
}

// DeletePost برچسب‌ها حذف نمی‌شوند، فقط ارتباطشان
func (s *PostService) DeletePost(ctx context.Context, actorID, id string) error {
	p, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(uuid.FromStringOrNil(actorID), p); err != nil {
		return err
	}

	err = s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.PostRepository.Delete(ctx, p)
	})
	if err != nil {
		return apperror.Internal(err)
	}
	s.logger.Info("Post deleted", zap.String("postID", id), zap.String("userID", actorID))
	return nil
}

func (s *PostService) validateFields(in postPort.PostInput) (map[string]any, error) {
	fields := map[string]any{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperror.FieldValidation("title", "this field may not be blank")
		}
		if utf8.RuneCountInString(title) > maxTitleLength {
			return nil, apperror.FieldValidation("title", "ensure this field has no more than 255 characters")
		}
		fields["title"] = title
	}
	if in.Description != nil {
		if err := s.validator.Check("description", *in.Description); err != nil {
			return nil, err
		}
		fields["description"] = *in.Description
	}
	return fields, nil
}

func (s *PostService) attachTags(ctx context.Context, p *postEntity.Post, inputs []postPort.TagInput) error {
	names := make([]string, 0, len(inputs))
	for _, t := range inputs {
		names = append(names, t.Name)
	}
	tags, err := s.tagResolver.Resolve(ctx, p.OwnerID, names)
	if err != nil {
		return err
	}
	// لیست خالی یعنی ارتباط‌های قبلی پاک شوند
	if err := s.PostRepository.ReplaceTags(ctx, p, tags); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *PostService) find(ctx context.Context, id string) (*postEntity.Post, error) {
	postID, err := uuid.FromString(id)
	if err != nil {
		return nil, apperror.NotFound("post", id)
	}
	p, err := s.PostRepository.FindByID(ctx, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("post", id)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return p, nil
}

func (s *PostService) reload(ctx context.Context, id uuid.UUID) (*postPort.PostDetailDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return s.toDetailDTO(p), nil
}

func (s *PostService) toDetailDTO(p *postEntity.Post) *postPort.PostDetailDTO {
	dto := &postPort.PostDetailDTO{
		ID:          p.ID.String(),
		User:        p.OwnerID.String(),
		Title:       p.Title,
		Description: p.Description,
		Tags:        toTagDTOs(p.Tags),
		CreatedAt:   formatTime(p.CreatedAt),
	}
	if p.Image != "" {
		dto.Image = s.Storage.URL(p.Image)
	}
	return dto
}

func toTagDTOs(tags []tagEntity.Tag) []tagPort.TagDTO {
	dtos := make([]tagPort.TagDTO, 0, len(tags))
	for i := range tags {
		dtos = append(dtos, tagPort.ToTagDTO(&tags[i]))
	}
	return dtos
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
