package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-portal/models"
	"team-portal/testutil"
)

type authFixture struct {
	store    *testutil.UserStore
	tokens   *TokenService
	presence *PresenceService
	auth     *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := testutil.NewUserStore()
	tokens := NewTokenService([]byte("test-secret"))
	presence := NewPresenceService(store)
	return &authFixture{
		store:    store,
		tokens:   tokens,
		presence: presence,
		auth:     NewAuthService(store, tokens, presence),
	}
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)
	alice := testutil.SeedUser(t, f.store, "alice", "correct", models.RoleMember)

	resp, err := f.auth.Login(context.Background(), "alice", "correct")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resp.ID)
	assert.Equal(t, models.RoleMember, resp.Role)
	require.NotEmpty(t, resp.Token)

	claims, err := f.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.UserID)

	stored, _ := f.store.Get(alice.ID)
	assert.True(t, stored.IsOnline)
	require.NotNil(t, stored.LastSeen)
	assert.WithinDuration(t, time.Now(), *stored.LastSeen, time.Second)
}

func TestLogin_Failures(t *testing.T) {
	f := newAuthFixture(t)
	testutil.SeedUser(t, f.store, "alice", "correct", models.RoleMember)

	_, err := f.auth.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.auth.Login(context.Background(), "bob", "correct")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.auth.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"Bearer ", "", false},
		{"bearer abc", "", false},
		{"Basic abc", "", false},
		{"abc", "", false},
		{"Bearer a b", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	alice := testutil.SeedUser(t, f.store, "alice", "correct", models.RoleMember)
	token, err := f.tokens.Issue(alice.ID, alice.Role)
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		_, err := f.auth.Authenticate(context.Background(), "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("malformed header", func(t *testing.T) {
		_, err := f.auth.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := f.auth.Authenticate(context.Background(), "Bearer not.a.token")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("valid token marks online", func(t *testing.T) {
		id, err := f.auth.Authenticate(context.Background(), "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, id.UserID)
		assert.Equal(t, models.RoleMember, id.Role)
		assert.Equal(t, "alice", id.User.Username)

		stored, _ := f.store.Get(alice.ID)
		assert.True(t, stored.IsOnline)
		require.NotNil(t, stored.LastSeen)
		assert.WithinDuration(t, time.Now(), *stored.LastSeen, time.Second)
	})

	t.Run("user deleted after issue", func(t *testing.T) {
		ghost := testutil.SeedUser(t, f.store, "ghost", "pw", models.RoleMember)
		ghostToken, err := f.tokens.Issue(ghost.ID, ghost.Role)
		require.NoError(t, err)
		require.NoError(t, f.store.Delete(context.Background(), ghost.ID))

		_, err = f.auth.Authenticate(context.Background(), "Bearer "+ghostToken)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("store failure is not reported as unauthenticated", func(t *testing.T) {
		f.store.Err = errors.New("connection refused")
		defer func() { f.store.Err = nil }()

		_, err := f.auth.Authenticate(context.Background(), "Bearer "+token)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnauthenticated)
	})
}
