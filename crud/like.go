package crud

import (
	"errors"

	"gorm.io/gorm"

	"warbler/domain"
	"warbler/errs"
)

// LikeService manages Likes.
// It implements the domain.LikeService interface.
type LikeService struct {
	likeValidator
}

// likeValidator runs validations on incoming Like data.
// On success, it passes the data on to likeGorm.
type likeValidator struct {
	likeGorm
}

// likeGorm runs CRUD operations and queries on the likes table.
type likeGorm struct {
	db *gorm.DB
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		likeValidator{
			likeGorm{
				db: db,
			},
		},
	}
}

var _ domain.LikeService = &LikeService{}

// Create inserts a like edge. Liking the same message twice violates the
// unique index on (user_id, message_id) and surfaces as an integrity error.
func (lv *likeValidator) Create(like *domain.Like) error {
	err := runLikeValFns(like,
		lv.userIdValid,
		lv.likedMessageExists)
	if err != nil {
		return err
	}
	return lv.likeGorm.Create(like)
}

// Delete removes a like edge. Unliking a message you don't like is a
// validation error.
func (lv *likeValidator) Delete(like *domain.Like) error {
	err := runLikeValFns(like, lv.likeExists)
	if err != nil {
		return err
	}
	return lv.likeGorm.Delete(like)
}

// runLikeValFns runs any number of functions of type likeValFn on the passed
// in Like object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runLikeValFns(like *domain.Like, fns ...likeValFn) error {
	for _, fn := range fns {
		if err := fn(like); err != nil {
			return err
		}
	}
	return nil
}

type likeValFn func(like *domain.Like) error

func (lv *likeValidator) userIdValid(like *domain.Like) error {
	if like.UserID <= 0 {
		return errs.UserIdRequired
	}
	return nil
}

// likedMessageExists makes sure that the message to be liked actually exists.
func (lv *likeValidator) likedMessageExists(like *domain.Like) error {
	err := lv.db.First(&domain.Message{}, "id = ?", like.MessageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.LikedMessageDoesNotExist
		}
		return err
	}
	return nil
}

// likeExists makes sure the like to be deleted is actually there.
func (lv *likeValidator) likeExists(like *domain.Like) error {
	err := lv.db.
		Where("user_id = ? AND message_id = ?", like.UserID, like.MessageID).
		First(&domain.Like{}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.LikeNotFound
		}
		return err
	}
	return nil
}

func (lg *likeGorm) Create(like *domain.Like) error {
	return lg.db.Create(like).Error
}

func (lg *likeGorm) Delete(like *domain.Like) error {
	return lg.db.
		Where("user_id = ? AND message_id = ?", like.UserID, like.MessageID).
		Delete(&domain.Like{}).Error
}

// ByUserID retrieves all of a user's likes, newest first.
func (lg *likeGorm) ByUserID(userID int) ([]domain.Like, error) {
	var likes []domain.Like
	err := lg.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// MessagesLikedBy retrieves the messages a user has liked, most recently
// liked first.
func (lg *likeGorm) MessagesLikedBy(userID int) ([]domain.Message, error) {
	var messages []domain.Message
	err := lg.db.
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CountForMessage returns how many users have liked a message.
func (lg *likeGorm) CountForMessage(messageID int) (int64, error) {
	var count int64
	err := lg.db.
		Model(&domain.Like{}).
		Where("message_id = ?", messageID).
		Count(&count).Error
	return count, err
}
