package crud

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"warbler/domain"
	"warbler/errs"
)

// MessageService manages Messages.
// It implements the domain.MessageService interface.
type MessageService struct {
	messageValidator
}

// messageValidator runs validations on incoming Message data.
// On success, it passes the data on to messageGorm.
// Otherwise, it returns the error of the validation that has failed.
type messageValidator struct {
	messageGorm
}

// messageGorm runs CRUD operations on the database using incoming Message
// data. It assumes that data has been validated.
type messageGorm struct {
	db *gorm.DB
}

// NewMessageService returns an instance of MessageService.
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{
		messageValidator{
			messageGorm{
				db: db,
			},
		},
	}
}

var _ domain.MessageService = &MessageService{}

// Create runs validations needed for creating new Message database records.
// The owning user must exist; that's the foreign key's job, so a dangling
// UserID comes back as an integrity error from the insert.
func (mv *messageValidator) Create(message *domain.Message) error {
	err := runMessageValFns(message,
		mv.userIdValid,
		mv.textMinLength,
		mv.textMaxLength)
	if err != nil {
		return err
	}
	return mv.messageGorm.Create(message)
}

// Delete runs validations needed for deleting existing Message database records.
func (mv *messageValidator) Delete(message *domain.Message) error {
	err := runMessageValFns(message, mv.idValid)
	if err != nil {
		return err
	}
	return mv.messageGorm.Delete(message)
}

// runMessageValFns runs any number of functions of type messageValFn on the
// passed in Message object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runMessageValFns(message *domain.Message, fns ...messageValFn) error {
	for _, fn := range fns {
		if err := fn(message); err != nil {
			return err
		}
	}
	return nil
}

// A messageValFn is any function that takes in a pointer to a domain.Message
// object and returns an error.
type messageValFn func(message *domain.Message) error

// textMinLength makes sure that the message's text is not empty.
func (mv *messageValidator) textMinLength(message *domain.Message) error {
	if strings.TrimSpace(message.Text) == "" {
		return errs.TextRequired
	}
	return nil
}

// textMaxLength makes sure that the message's text does not exceed the
// maximum text length.
func (mv *messageValidator) textMaxLength(message *domain.Message) error {
	if utf8.RuneCountInString(message.Text) > domain.MessageMaxLength {
		return errs.TextTooLong
	}
	return nil
}

// idValid makes sure that the passed in ID of a Message to be deleted is
// greater than 0.
func (mv *messageValidator) idValid(message *domain.Message) error {
	if message.ID <= 0 {
		return errs.IdInvalid
	}
	return nil
}

// userIdValid ensures that the userId is not empty.
func (mv *messageValidator) userIdValid(message *domain.Message) error {
	if message.UserID <= 0 {
		return errs.UserIdRequired
	}
	return nil
}

func (mg *messageGorm) Create(message *domain.Message) error {
	return mg.db.Create(message).Error
}

func (mg *messageGorm) Delete(message *domain.Message) error {
	return mg.db.Delete(&domain.Message{}, message.ID).Error
}

// ByID retrieves a single Message by ID, along with its owning user.
// If the record doesn't exist, it returns errs.NotFound.
func (mg *messageGorm) ByID(id int) (*domain.Message, error) {
	var message domain.Message
	err := mg.db.
		Preload("User").
		First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound
		}
		return nil, err
	}
	return &message, nil
}

// ByUserID retrieves all of a user's messages, newest first -
// the conventional display order.
func (mg *messageGorm) ByUserID(userID int) ([]domain.Message, error) {
	var messages []domain.Message
	err := mg.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Feed retrieves the home timeline for a user: their own messages plus
// those of everyone they follow, newest first.
func (mg *messageGorm) Feed(ctx context.Context, userID int) ([]domain.Message, error) {
	followed := mg.db.
		Table("follows").
		Select("followed_id").
		Where("follower_id = ?", userID)
	var messages []domain.Message
	err := mg.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? OR user_id IN (?)", userID, followed).
		Order("created_at desc").
		Limit(100).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
