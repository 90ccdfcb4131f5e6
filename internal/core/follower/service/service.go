package followerapp

import (
	"context"
	"errors"
	"time"

	"socialfeed/internal/core/apperror"
	followerEntity "socialfeed/internal/core/follower"
	userEntity "socialfeed/internal/core/user"
	followerPort "socialfeed/internal/ports/follower"
	"socialfeed/internal/ports/transaction"
	userPort "socialfeed/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSelfFollow       = apperror.FieldValidation("target_user", "you can not follow yourself")
	ErrAlreadyFollowing = apperror.Conflict("you are already following this user")
)

// FollowerService مدیریت رابطه دنبال‌کردن؛ Follower و Following در یک تراکنش نوشته می‌شوند
type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
	Transactor         transaction.Transactor
	logger             *zap.Logger
}

func NewFollowerService(
	repo followerPort.FollowerRepository,
	userRepo userPort.UserRepository,
	transactor transaction.Transactor,
	logger *zap.Logger,
) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
		Transactor:         transactor,
		logger:             logger,
	}
}

// Follow کاربر actorID کاربر targetUsername را دنبال می‌کند
func (s *FollowerService) Follow(ctx context.Context, actorID, targetUsername string) (*followerPort.FollowerDTO, error) {
	actor, err := s.UserRepository.FindByID(ctx, uuid.FromStringOrNil(actorID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Unauthenticated("user not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	target, err := s.findUser(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if actor.ID == target.ID {
		s.logger.Warn("⚠️ Cannot follow yourself", zap.String("userID", actorID))
		return nil, ErrSelfFollow
	}

	exists, err := s.FollowerRepository.IsFollowing(ctx, actor.ID, target.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, ErrAlreadyFollowing
	}

	f := &followerEntity.Follower{
		TargetUserID: target.ID,
		FollowerID:   actor.ID,
		FollowerName: actor.Name,
	}
	err = s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.FollowerRepository.AddFollower(ctx, f); err != nil {
			return err
		}
		return s.FollowerRepository.AddFollowing(ctx, &followerEntity.Following{
			UserID:        actor.ID,
			FollowingID:   target.ID,
			FollowingName: target.Name,
		})
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrAlreadyFollowing
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("User followed", zap.String("followerID", actor.ID.String()), zap.String("targetID", target.ID.String()))
	return toFollowerDTO(f), nil
}

// ListFollowers کسانی که username را دنبال می‌کنند
func (s *FollowerService) ListFollowers(ctx context.Context, username string) ([]*followerPort.FollowerDTO, error) {
	u, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.FollowerRepository.GetFollowersByUserID(ctx, u.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	followerDTOs := make([]*followerPort.FollowerDTO, 0, len(followers))
	for _, f := range followers {
		followerDTOs = append(followerDTOs, toFollowerDTO(f))
	}
	return followerDTOs, nil
}

// ListFollowing کسانی که username دنبال می‌کند
func (s *FollowerService) ListFollowing(ctx context.Context, username string) ([]*followerPort.FollowingDTO, error) {
	u, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	following, err := s.FollowerRepository.GetFollowingByUserID(ctx, u.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	followingDTOs := make([]*followerPort.FollowingDTO, 0, len(following))
	for _, f := range following {
		followingDTOs = append(followingDTOs, &followerPort.FollowingDTO{
			ID:            f.ID.String(),
			User:          f.UserID.String(),
			FollowingID:   f.FollowingID.String(),
			FollowingName: f.FollowingName,
			CreatedAt:     f.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return followingDTOs, nil
}

func (s *FollowerService) findUser(ctx context.Context, username string) (*userEntity.User, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user", username)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

func toFollowerDTO(f *followerEntity.Follower) *followerPort.FollowerDTO {
	return &followerPort.FollowerDTO{
		ID:           f.ID.String(),
		TargetUser:   f.TargetUserID.String(),
		FollowerID:   f.FollowerID.String(),
		FollowerName: f.FollowerName,
		CreatedAt:    f.CreatedAt.UTC().Format(time.RFC3339),
	}
}
