package domain

import (
	"context"
	"time"
)

// Default profile images assigned at signup when the user doesn't provide any.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username" gorm:"uniqueIndex;size:64;not null"`
	Email          string `json:"email" gorm:"uniqueIndex;size:128;not null"`
	ImageURL       string `json:"image_url"`
	HeaderImageURL string `json:"header_image_url"`
	Bio            string `json:"bio"`
	Location       string `json:"location"`

	// Password is the plaintext as submitted. It's never written to the
	// database, only its bcrypt digest in PasswordHash.
	Password     string `json:"password,omitempty" gorm:"-"`
	PasswordHash string `json:"-" gorm:"not null"`

	// Remember is the raw remember token for cookie auth. Only its
	// HMAC hash is stored.
	Remember     string `json:"-" gorm:"-"`
	RememberHash string `json:"-" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is a set of methods to manipulate and work with the User model.
// Signup builds an unpersisted User (hashing the password), Create persists
// it. The split lets callers set fields like the ID before the insert.
// Authenticate returns (nil, nil) on unknown username or wrong password;
// a non-nil error means the lookup itself failed.
type UserService interface {
	Signup(username, email, password, imageURL string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Authenticate(ctx context.Context, username, password string) (*User, error)
	ByID(ctx context.Context, id int) (*User, error)
	ByUsername(ctx context.Context, username string) (*User, error)
	ByRemember(token string) (*User, error)
	Search(ctx context.Context, q string) ([]User, error)
	Delete(ctx context.Context, id int) error
}
