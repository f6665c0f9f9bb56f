package crud_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warbler/domain"
	"warbler/errs"
)

func TestFollowsUser(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	u1 := signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")
	u2 := signupUser(t, services, 8765, "testuser1", "test1@test.com", "testuser123")

	require.NoError(t, services.Follow.Create(&domain.Follow{
		FollowerID: u1.ID,
		FollowedID: u2.ID,
	}))

	u1Following, err := services.Follow.Following(ctx, u1.ID)
	require.NoError(t, err)
	u2Followers, err := services.Follow.Followers(ctx, u2.ID)
	require.NoError(t, err)
	u1Followers, err := services.Follow.Followers(ctx, u1.ID)
	require.NoError(t, err)
	u2Following, err := services.Follow.Following(ctx, u2.ID)
	require.NoError(t, err)

	assert.Len(t, u1Following, 1)
	assert.Len(t, u2Followers, 1)
	assert.Len(t, u1Followers, 0)
	assert.Len(t, u2Following, 0)

	assert.Equal(t, u1.ID, u2Followers[0].ID)
}

func TestIsFollowing(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	u1 := signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")
	u2 := signupUser(t, services, 8765, "testuser1", "test1@test.com", "testuser123")

	require.NoError(t, services.Follow.Create(&domain.Follow{
		FollowerID: u1.ID,
		FollowedID: u2.ID,
	}))

	following, err := services.Follow.IsFollowing(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	assert.True(t, following)

	reverse, err := services.Follow.IsFollowing(ctx, u2.ID, u1.ID)
	require.NoError(t, err)
	assert.False(t, reverse, "follow edges are directed")
}

func TestIsFollowedBy(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	u1 := signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")
	u2 := signupUser(t, services, 8765, "testuser1", "test1@test.com", "testuser123")

	require.NoError(t, services.Follow.Create(&domain.Follow{
		FollowerID: u1.ID,
		FollowedID: u2.ID,
	}))

	followedBy, err := services.Follow.IsFollowedBy(ctx, u2.ID, u1.ID)
	require.NoError(t, err)
	assert.True(t, followedBy)

	reverse, err := services.Follow.IsFollowedBy(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestDuplicateFollow(t *testing.T) {
	services, _ := setupServices(t)

	u1 := signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")
	u2 := signupUser(t, services, 8765, "testuser1", "test1@test.com", "testuser123")

	require.NoError(t, services.Follow.Create(&domain.Follow{
		FollowerID: u1.ID,
		FollowedID: u2.ID,
	}))

	err := services.Follow.Create(&domain.Follow{
		FollowerID: u1.ID,
		FollowedID: u2.ID,
	})
	require.Error(t, err)
	assert.True(t, errs.IsIntegrityViolation(err), "duplicate edge hits the unique pair index")
}

func TestFollowUnknownUser(t *testing.T) {
	services, _ := setupServices(t)

	u1 := signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")

	err := services.Follow.Create(&domain.Follow{
		FollowerID: u1.ID,
		FollowedID: 123456789,
	})
	assert.ErrorIs(t, err, errs.FollowedDoesNotExist)
}

func TestUnfollow(t *testing.T) {
	services, _ := setupServices(t)
	ctx := context.Background()

	u1 := signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")
	u2 := signupUser(t, services, 8765, "testuser1", "test1@test.com", "testuser123")

	edge := domain.Follow{FollowerID: u1.ID, FollowedID: u2.ID}
	require.NoError(t, services.Follow.Create(&edge))
	require.NoError(t, services.Follow.Delete(&domain.Follow{FollowerID: u1.ID, FollowedID: u2.ID}))

	following, err := services.Follow.IsFollowing(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestUnfollowNotFollowing(t *testing.T) {
	services, _ := setupServices(t)

	u1 := signupUser(t, services, 9700, "testuser", "test@test.com", "testuser")
	u2 := signupUser(t, services, 8765, "testuser1", "test1@test.com", "testuser123")

	err := services.Follow.Delete(&domain.Follow{FollowerID: u1.ID, FollowedID: u2.ID})
	assert.ErrorIs(t, err, errs.FollowNotFound)
}
