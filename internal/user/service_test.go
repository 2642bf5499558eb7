package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopledger/internal/codec"
	"shopledger/internal/events"
	"shopledger/internal/kvstore"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(NewRepository(codec.New(kvstore.NewMemory())), events.NewBus())
}

func TestService_SignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	u, err := svc.Signup(ctx, "Ada@Shop.Test", "s3cret", "")
	require.NoError(t, err)
	assert.Equal(t, "ada@shop.test", u.Email)
	assert.Equal(t, "ada", u.DisplayName)
	assert.Equal(t, 1, u.LoginCount)
	assert.True(t, u.IsActive)
	assert.Empty(t, u.PasswordHash)

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svc.Signup(ctx, "ada@shop.test", "other", "")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("LoginBumpsCount", func(t *testing.T) {
		logged, err := svc.Login(ctx, "ada@shop.test", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, 2, logged.LoginCount)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, "ada@shop.test", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@shop.test", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_RecordLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.RecordLogin(ctx, "ext-1", "ext@shop.test", "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.LoginCount)
	assert.Equal(t, "ext", first.DisplayName)
	assert.True(t, first.IsActive)

	second, err := svc.RecordLogin(ctx, "ext-1", "ext@shop.test", "")
	require.NoError(t, err)
	assert.Equal(t, 2, second.LoginCount)
	assert.WithinDuration(t, first.CreatedAt, second.CreatedAt, time.Second)
}

func TestService_SetActive(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	u, err := svc.Signup(ctx, "ada@shop.test", "s3cret", "Ada")
	require.NoError(t, err)

	deactivated, err := svc.SetActive(ctx, u.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	// Deactivated accounts cannot log in.
	_, err = svc.Login(ctx, "ada@shop.test", "s3cret")
	assert.ErrorIs(t, err, ErrInactive)

	_, err = svc.SetActive(ctx, "ghost", true)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_GetAndList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	u, err := svc.Signup(ctx, "ada@shop.test", "s3cret", "Ada")
	require.NoError(t, err)

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.Empty(t, got.PasswordHash)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)

	_, err = svc.Get(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("other", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("u1", "ada@shop.test", true)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ada@shop.test", claims.Email)
	assert.True(t, claims.Admin)
}

func TestJWT_InvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)
}
