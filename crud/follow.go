package crud

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"warbler/domain"
	"warbler/errs"
)

// FollowService manages the directed follow edges between users.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming Follow data.
// On success, it passes the data on to followGorm.
type followValidator struct {
	followGorm
}

// followGorm runs CRUD operations and queries on the follows table.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

var _ domain.FollowService = &FollowService{}

// Create inserts a follow edge. A duplicate (follower, followed) pair is not
// pre-checked here; the unique index on the pair rejects it at insert time,
// so the caller sees an integrity error rather than a silent no-op.
func (fv *followValidator) Create(follow *domain.Follow) error {
	err := runFollowValFns(follow,
		fv.followerIdValid,
		fv.followedIdValid,
		fv.followedUserExists)
	if err != nil {
		return err
	}
	return fv.followGorm.Create(follow)
}

// Delete removes a follow edge. Unfollowing someone you don't follow is a
// validation error.
func (fv *followValidator) Delete(follow *domain.Follow) error {
	err := runFollowValFns(follow,
		fv.followerIdValid,
		fv.followedIdValid,
		fv.followExists)
	if err != nil {
		return err
	}
	return fv.followGorm.Delete(follow)
}

// runFollowValFns runs any number of functions of type followValFn on the
// passed in Follow object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

type followValFn func(follow *domain.Follow) error

func (fv *followValidator) followerIdValid(follow *domain.Follow) error {
	if follow.FollowerID <= 0 {
		return errs.UserIdRequired
	}
	return nil
}

func (fv *followValidator) followedIdValid(follow *domain.Follow) error {
	if follow.FollowedID <= 0 {
		return errs.UserIdRequired
	}
	return nil
}

// followedUserExists makes sure that the user to be followed actually exists.
func (fv *followValidator) followedUserExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.User{}, "id = ?", follow.FollowedID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.FollowedDoesNotExist
		}
		return err
	}
	return nil
}

// followExists makes sure the edge to be deleted is actually there.
func (fv *followValidator) followExists(follow *domain.Follow) error {
	err := fv.db.
		Where("follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).
		First(&domain.Follow{}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.FollowNotFound
		}
		return err
	}
	return nil
}

func (fg *followGorm) Create(follow *domain.Follow) error {
	return fg.db.Create(follow).Error
}

func (fg *followGorm) Delete(follow *domain.Follow) error {
	return fg.db.
		Where("follower_id = ? AND followed_id = ?", follow.FollowerID, follow.FollowedID).
		Delete(&domain.Follow{}).Error
}

// IsFollowing reports whether an edge follower -> followed exists.
func (fg *followGorm) IsFollowing(ctx context.Context, followerID, followedID int) (bool, error) {
	var count int64
	err := fg.db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsFollowedBy reports whether an edge follower -> user exists. It's the
// mirror of IsFollowing seen from the followed side.
func (fg *followGorm) IsFollowedBy(ctx context.Context, userID, followerID int) (bool, error) {
	return fg.IsFollowing(ctx, followerID, userID)
}

// Followers returns all users following userID, newest edge first.
func (fg *followGorm) Followers(ctx context.Context, userID int) ([]domain.User, error) {
	var users []domain.User
	err := fg.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Following returns all users userID is following, newest edge first.
func (fg *followGorm) Following(ctx context.Context, userID int) ([]domain.User, error) {
	var users []domain.User
	err := fg.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
