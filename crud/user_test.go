package crud_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warbler/crud"
	"warbler/domain"
	"warbler/errs"
)

// signupUser is a helper that signs up and persists a user under a fixed ID,
// the way the original test fixtures assign IDs before committing.
func signupUser(t *testing.T, services *crud.Services, id int, username, email, password string) *domain.User {
	t.Helper()
	user, err := services.User.Signup(username, email, password, "")
	require.NoError(t, err)
	user.ID = id
	require.NoError(t, services.User.Create(context.Background(), user))
	return user
}

func TestUserModel(t *testing.T) {
	services, db := setupServices(t)
	ctx := context.Background()

	// A bare user row with a pre-hashed password.
	user := &domain.User{
		Username:     "testuser1234",
		Email:        "test1234@test.com",
		PasswordHash: "HASHED_PASSWORD",
	}
	require.NoError(t, db.Create(user).Error)

	// A freshly created user has no messages and no followers.
	messages, err := services.Message.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 0)

	followers, err := services.Follow.Followers(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 0)
}

func TestSignup(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	user, err := services.User.Signup("test1", "test1@gmail.com", "topsecretpassword", "")
	require.NoError(t, err)
	user.ID = 43958
	require.NoError(t, services.User.Create(ctx, user))

	found, err := services.User.ByID(ctx, 43958)
	require.NoError(t, err)
	assert.Equal(t, "test1", found.Username)
	assert.Equal(t, "test1@gmail.com", found.Email)
	assert.NotEqual(t, "topsecretpassword", found.PasswordHash)
	assert.True(t, strings.HasPrefix(found.PasswordHash, "$2"))
	assert.Equal(t, domain.DefaultImageURL, found.ImageURL)
	assert.Empty(t, found.Password, "plaintext is cleared after hashing")
}

func TestSignupEmptyPassword(t *testing.T) {
	services, _ := setupServices(t)

	_, err := services.User.Signup("testtest", "email@email.com", "", "")
	assert.ErrorIs(t, err, errs.PasswordRequired)
}

func TestSignupDuplicateUsername(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")

	dup, err := services.User.Signup("testuser", "other@test.com", "password", "")
	require.NoError(t, err)
	err = services.User.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, errs.IsIntegrityViolation(err))
}

func TestSignupDuplicateEmail(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")

	dup, err := services.User.Signup("otheruser", "test@test.com", "password", "")
	require.NoError(t, err)
	err = services.User.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, errs.IsIntegrityViolation(err))
}

func TestSignupNullUsername(t *testing.T) {
	_, db := setupServices(t)

	err := db.Exec(
		"INSERT INTO users (username, email, password_hash) VALUES (NULL, ?, ?)",
		"test@test.com", "HASHED_PASSWORD",
	).Error
	require.Error(t, err)
	assert.True(t, errs.IsIntegrityViolation(err))
}

func TestSignupNullEmail(t *testing.T) {
	_, db := setupServices(t)

	err := db.Exec(
		"INSERT INTO users (username, email, password_hash) VALUES (?, NULL, ?)",
		"testtest", "HASHED_PASSWORD",
	).Error
	require.Error(t, err)
	assert.True(t, errs.IsIntegrityViolation(err))
}

func TestAuthenticateValid(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")

	user, err := services.User.Authenticate(ctx, "testuser", "testuser")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 9700, user.ID)
}

func TestAuthenticateUnknownUsername(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")

	user, err := services.User.Authenticate(ctx, "badusername", "password")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")

	user, err := services.User.Authenticate(ctx, "testuser", "badpassword")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestEmailNormalized(t *testing.T) {
	services, _ := setupServices(t)

	user, err := services.User.Signup("testuser", "  Test@TEST.com ", "testuser", "")
	require.NoError(t, err)
	assert.Equal(t, "test@test.com", user.Email)
}

func TestDeleteUserCascades(t *testing.T) {
	services, db := setupServices(t)
	ctx := context.Background()

	owner := signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")
	liker := signupUser(t, services, 8765, "testuser1", "test1@test.com", "testuser123")

	message := &domain.Message{Text: "testing", UserID: owner.ID}
	require.NoError(t, services.Message.Create(message))
	require.NoError(t, services.Like.Create(&domain.Like{UserID: liker.ID, MessageID: message.ID}))
	require.NoError(t, services.Follow.Create(&domain.Follow{FollowerID: liker.ID, FollowedID: owner.ID}))

	require.NoError(t, services.User.Delete(ctx, owner.ID))

	_, err := services.User.ByID(ctx, owner.ID)
	assert.ErrorIs(t, err, errs.NotFound)

	var messageCount, likeCount, followCount int64
	require.NoError(t, db.Model(&domain.Message{}).Count(&messageCount).Error)
	require.NoError(t, db.Model(&domain.Like{}).Count(&likeCount).Error)
	require.NoError(t, db.Model(&domain.Follow{}).Count(&followCount).Error)
	assert.Zero(t, messageCount, "owned messages cascade")
	assert.Zero(t, likeCount, "likes on owned messages cascade")
	assert.Zero(t, followCount, "follow edges cascade")
}
