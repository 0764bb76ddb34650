package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dailywrite/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	svc    *AuthService
	tokens *TokenService
	users  *fakeUsers
	user   *model.User
	redis  interface {
		Exists(string) bool
		Get(string) (string, error)
	}
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	mr, sessions := newTestSessions(t)
	tokens := newTestTokens(t, sessions)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUsers{}
	user := users.add(model.User{LoginID: "writer", Email: "writer@daily.test", PasswordHash: string(hash), Nickname: "작가"})

	return &authFixture{
		svc:    NewAuthService(users, tokens, sessions, nil),
		tokens: tokens,
		users:  users,
		user:   user,
		redis:  mr,
	}
}

func TestLoginStoresSession(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.Login(context.Background(), "writer", "password123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.AccessToken, BearerPrefix))
	assert.True(t, strings.HasPrefix(resp.RefreshToken, BearerPrefix))
	assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
	assert.Equal(t, model.RoleUser, resp.Role)

	stored, err := f.redis.Get("session:1")
	require.NoError(t, err)
	assert.Equal(t, strings.TrimPrefix(resp.RefreshToken, BearerPrefix), stored)
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		password   string
		storeErr   error
		want       error
	}{
		{name: "empty", identifier: "", password: "x", want: ErrInvalidInput},
		{name: "unknown-identifier", identifier: "nobody", password: "password123", want: ErrNotFound},
		{name: "wrong-password", identifier: "writer", password: "wrong-password", want: ErrInvalidPassword},
		{name: "db-error", identifier: "writer", password: "password123", storeErr: errors.New("conn reset"), want: ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			f.users.err = tt.storeErr

			_, err := f.svc.Login(context.Background(), tt.identifier, tt.password)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, f.redis.Exists("session:1"))
		})
	}
}

func TestReissue(t *testing.T) {
	ctx := context.Background()

	t.Run("access-still-valid", func(t *testing.T) {
		f := newAuthFixture(t)
		login, err := f.svc.Login(ctx, "writer", "password123")
		require.NoError(t, err)
		before, _ := f.redis.Get("session:1")

		_, err = f.svc.Reissue(ctx, login.AccessToken, login.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenNotExpired)

		after, _ := f.redis.Get("session:1")
		assert.Equal(t, before, after)
	})

	t.Run("expired-with-matching-refresh", func(t *testing.T) {
		f := newAuthFixture(t)
		login, err := f.svc.Login(ctx, "writer", "password123")
		require.NoError(t, err)

		f.tokens.now = fixedClock(testNow.Add(3 * time.Hour))
		pair, err := f.svc.Reissue(ctx, login.AccessToken, login.RefreshToken)
		require.NoError(t, err)

		assert.NotEqual(t, login.AccessToken, pair.AccessToken)
		assert.Equal(t, login.RefreshToken, pair.RefreshToken)

		stored, _ := f.redis.Get("session:1")
		assert.Equal(t, BearerPrefix+stored, pair.RefreshToken)

		user, err := f.tokens.Verify(strings.TrimPrefix(pair.AccessToken, BearerPrefix))
		require.NoError(t, err)
		assert.Equal(t, f.user.ID, user.ID)
	})

	t.Run("expired-with-mismatched-refresh", func(t *testing.T) {
		f := newAuthFixture(t)
		login, err := f.svc.Login(ctx, "writer", "password123")
		require.NoError(t, err)

		other, err := f.tokens.Refresh()
		require.NoError(t, err)

		f.tokens.now = fixedClock(testNow.Add(3 * time.Hour))
		_, err = f.svc.Reissue(ctx, login.AccessToken, BearerPrefix+other)
		assert.ErrorIs(t, err, ErrReloginRequired)
	})

	t.Run("expired-after-logout", func(t *testing.T) {
		f := newAuthFixture(t)
		login, err := f.svc.Login(ctx, "writer", "password123")
		require.NoError(t, err)
		require.NoError(t, f.svc.Logout(ctx, login.AccessToken))

		f.tokens.now = fixedClock(testNow.Add(3 * time.Hour))
		_, err = f.svc.Reissue(ctx, login.AccessToken, login.RefreshToken)
		assert.ErrorIs(t, err, ErrReloginRequired)
	})

	t.Run("bad-headers", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Reissue(ctx, "", "Bearer x")
		assert.ErrorIs(t, err, ErrBadHeader)
		_, err = f.svc.Reissue(ctx, "Bearer x", "token")
		assert.ErrorIs(t, err, ErrBadHeader)
	})

	t.Run("undecodable-access", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Reissue(ctx, "Bearer garbage", "Bearer garbage")
		assert.ErrorIs(t, err, ErrTokenUndecodable)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes-session", func(t *testing.T) {
		f := newAuthFixture(t)
		login, err := f.svc.Login(ctx, "writer", "password123")
		require.NoError(t, err)

		require.NoError(t, f.svc.Logout(ctx, login.AccessToken))
		assert.False(t, f.redis.Exists("session:1"))

		// 이미 지워진 세션
		assert.NoError(t, f.svc.Logout(ctx, login.AccessToken))
	})

	t.Run("undecodable-keeps-other-sessions", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Login(ctx, "writer", "password123")
		require.NoError(t, err)

		err = f.svc.Logout(ctx, "Bearer eyJhbGciOiJIUzI1NiJ9.e30.invalid")
		assert.ErrorIs(t, err, ErrTokenUndecodable)
		assert.True(t, f.redis.Exists("session:1"))
	})

	t.Run("missing-header", func(t *testing.T) {
		f := newAuthFixture(t)
		assert.ErrorIs(t, f.svc.Logout(ctx, ""), ErrBadHeader)
	})
}
