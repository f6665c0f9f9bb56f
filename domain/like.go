package domain

import (
	"time"
)

// Like represents a many-to-many relationship between a User and a Message.
// A Like is created when a user decides to like a message. It's destroyed
// when the user unlikes it, or via cascade when either endpoint is deleted.
// The (user_id, message_id) pair is unique.
type Like struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id" gorm:"not null;index;uniqueIndex:idx_likes_user_message"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	MessageID int       `json:"message_id" gorm:"not null;uniqueIndex:idx_likes_user_message"`
	Message   Message   `json:"message" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeService is a set of methods to manipulate and work with the Like model.
type LikeService interface {
	Create(like *Like) error
	Delete(like *Like) error
	ByUserID(userID int) ([]Like, error)
	MessagesLikedBy(userID int) ([]Message, error)
	CountForMessage(messageID int) (int64, error)
}
