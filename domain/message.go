package domain

import (
	"context"
	"time"
)

// MessageMaxLength is the maximum number of runes in a message's text.
const MessageMaxLength = 140

// Message is a short post ("warble") belonging to exactly one User.
// It's destroyed explicitly or via cascade when the owning user is deleted.
type Message struct {
	ID     int    `json:"id"`
	Text   string `json:"text" gorm:"size:140;not null"`
	UserID int    `json:"user_id" gorm:"not null;index"`
	User   User   `json:"user" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageService is a set of methods to manipulate and work with the Message model.
type MessageService interface {
	Create(message *Message) error
	Delete(message *Message) error
	ByID(id int) (*Message, error)
	ByUserID(userID int) ([]Message, error)
	Feed(ctx context.Context, userID int) ([]Message, error)
}
