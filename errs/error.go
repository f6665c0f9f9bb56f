package errs

import "strings"

const (
	// NotFound is returned when a resource cannot be found
	// in the database.
	NotFound modelError = "models: resource not found"
	// PasswordRequired is returned when a signup is attempted
	// without a user password provided.
	PasswordRequired modelError = "models: password is required"
	// UsernameRequired is returned when an operation that needs a
	// username gets the empty string.
	UsernameRequired modelError = "models: username is required"

	TextRequired modelError = "models: message text must not be empty"
	TextTooLong  modelError = "models: message text must not have more than 140 characters"

	// FollowNotFound is returned when an unfollow is attempted
	// on an edge that doesn't exist.
	FollowNotFound modelError = "models: you don't follow this user"
	// FollowedDoesNotExist is returned when the user to be followed
	// has no database record.
	FollowedDoesNotExist modelError = "models: user to be followed does not exist"

	// LikedMessageDoesNotExist is returned when a like is attempted
	// on a message that has no database record.
	LikedMessageDoesNotExist modelError = "models: message to be liked does not exist"
	// LikeNotFound is returned when an unlike is attempted on a
	// like that doesn't exist.
	LikeNotFound modelError = "models: you don't like this message"

	// IdInvalid is returned when an invalid ID is provided
	// to a method like Delete.
	IdInvalid privateError = "models: ID provided was invalid"
	// UserIdRequired is returned when a record that must belong to a
	// user is missing its user ID.
	UserIdRequired privateError = "models: user ID is required"
	// RememberRequired is returned when a create or update
	// is attempted without a user remember token hash.
	RememberRequired privateError = "models: remember token is required"
	// RememberTooShort is returned when a remember token is
	// not at least 32 bytes.
	RememberTooShort privateError = "models: remember token must be at least 32 bytes"
)

type modelError string

func (e modelError) Error() string {
	return string(e)
}

func (e modelError) Public() string {
	s := strings.Replace(string(e), "models: ", "", 1)
	split := strings.Split(s, " ")
	split[0] = strings.Title(split[0])
	return strings.Join(split, " ")
}

type privateError string

func (e privateError) Error() string {
	return string(e)
}

// PublicError is implemented by errors that carry a message safe
// to show to the end user.
type PublicError interface {
	error
	Public() string
}
