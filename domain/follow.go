package domain

import (
	"context"
	"time"
)

// Follow represents a self-referential many-to-many relationship between two
// users. A Follow is created when one user decides to follow another user.
// The FollowerID is the ID of the user that follows, and the FollowedID is
// the ID of the user being followed. The (follower_id, followed_id) pair is
// unique, so inserting the same edge twice fails with a constraint violation.
type Follow struct {
	ID         int       `json:"id"`
	FollowerID int       `json:"follower_id" gorm:"not null;index;uniqueIndex:idx_follows_pair"`
	Follower   User      `json:"follower" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FollowedID int       `json:"followed_id" gorm:"not null;uniqueIndex:idx_follows_pair"`
	Followed   User      `json:"followed" gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow
// model. Followers and Following are explicit join queries rather than
// collections hanging off the User.
type FollowService interface {
	Create(follow *Follow) error
	Delete(follow *Follow) error
	IsFollowing(ctx context.Context, followerID, followedID int) (bool, error)
	IsFollowedBy(ctx context.Context, userID, followerID int) (bool, error)
	Followers(ctx context.Context, userID int) ([]User, error)
	Following(ctx context.Context, userID int) ([]User, error)
}
