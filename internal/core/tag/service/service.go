package tagapp

import (
	"context"
	"errors"

	"socialfeed/internal/core/access"
	"socialfeed/internal/core/apperror"
	tagEntity "socialfeed/internal/core/tag"
	tagPort "socialfeed/internal/ports/tag"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TagService struct {
	TagRepository tagPort.TagRepository
	resolver      *TagResolver
	guard         *access.Guard
	logger        *zap.Logger
}

func NewTagService(repo tagPort.TagRepository, resolver *TagResolver, guard *access.Guard, logger *zap.Logger) *TagService {
	return &TagService{
		TagRepository: repo,
		resolver:      resolver,
		guard:         guard,
		logger:        logger,
	}
}

func (s *TagService) ListTags(ctx context.Context, assignedOnly bool) ([]tagPort.TagDTO, error) {
	tags, err := s.TagRepository.List(ctx, assignedOnly)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	dtos := make([]tagPort.TagDTO, 0, len(tags))
	for _, t := range tags {
		dtos = append(dtos, tagPort.ToTagDTO(t))
	}
	return dtos, nil
}

func (s *TagService) GetTag(ctx context.Context, id string) (*tagPort.TagDTO, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := tagPort.ToTagDTO(t)
	return &dto, nil
}

// RenameTag فقط مالک برچسب می‌تواند نام آن را تغییر دهد
func (s *TagService) RenameTag(ctx context.Context, actorID, id, name string) (*tagPort.TagDTO, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(uuid.FromStringOrNil(actorID), t); err != nil {
		s.logger.Warn("⚠️ Tag rename denied", zap.String("tagID", id), zap.String("actorID", actorID))
		return nil, err
	}

	name, err = s.resolver.validateName(name)
	if err != nil {
		return nil, err
	}

	err = s.TagRepository.Rename(ctx, t, name)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperror.Conflict("tag with this name already exists")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	dto := tagPort.ToTagDTO(t)
	return &dto, nil
}

func (s *TagService) find(ctx context.Context, id string) (*tagEntity.Tag, error) {
	tagID, err := uuid.FromString(id)
	if err != nil {
		return nil, apperror.NotFound("tag", id)
	}
	t, err := s.TagRepository.FindByID(ctx, tagID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("tag", id)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return t, nil
}
