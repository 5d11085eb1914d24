package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedTestToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "8f14e45f-ea8a-4f3a-9f5a-111111111111",
		"username": "someone",
		"exp":      time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSessionLoginPersistsState(t *testing.T) {
	server := newTestServer(t)
	path := filepath.Join(t.TempDir(), "fitzer.json")

	session := NewSession(New(server.URL), NewStore(path))
	user, err := session.Login(context.Background(), "Session User", "sessionuser")
	require.NoError(t, err)
	assert.Equal(t, "sessionuser", user.Username)
	assert.True(t, session.Authenticated())

	// A fresh session over the same store restores the token and user.
	restored := NewSession(New(server.URL), NewStore(path))
	assert.True(t, restored.Authenticated())
	state := restored.State()
	require.NotNil(t, state.User)
	assert.Equal(t, user.ID, state.User.ID)

	// And the restored client can make authenticated calls.
	profile, err := restored.Client().Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sessionuser", profile.Username)
}

func TestSessionAuthenticatedFalseWithoutToken(t *testing.T) {
	session := NewSession(New("http://localhost:3001"), newTestStore(t))
	assert.False(t, session.Authenticated())
}

func TestSessionExpiredTokenReadsAsLoggedOut(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetToken(signedTestToken(t, -time.Hour)))

	session := NewSession(New("http://localhost:3001"), store)
	assert.False(t, session.Authenticated())
}

func TestSessionValidTokenReadsAsLoggedIn(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetToken(signedTestToken(t, time.Hour)))

	session := NewSession(New("http://localhost:3001"), store)
	assert.True(t, session.Authenticated())
}

func TestSessionGarbageTokenReadsAsLoggedOut(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetToken("not-a-jwt"))

	session := NewSession(New("http://localhost:3001"), store)
	assert.False(t, session.Authenticated())
}

func TestSessionLogoutClearsState(t *testing.T) {
	server := newTestServer(t)
	store := newTestStore(t)

	session := NewSession(New(server.URL), store)
	_, err := session.Login(context.Background(), "Leaving", "leavinguser")
	require.NoError(t, err)
	require.True(t, session.Authenticated())

	require.NoError(t, session.Logout())
	assert.False(t, session.Authenticated())
	assert.Empty(t, store.Token())
	_, hasUser := store.User()
	assert.False(t, hasUser)
}

func TestSessionPoints(t *testing.T) {
	store := newTestStore(t)
	session := NewSession(New("http://localhost:3001"), store)

	require.NoError(t, session.SetPoints(100))
	assert.Equal(t, 100, session.Points())

	require.NoError(t, session.SpendPoints(30))
	assert.Equal(t, 70, session.Points())

	err := session.SpendPoints(100)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 70, session.Points())

	// Balance survives a restart through the store.
	restored := NewSession(New("http://localhost:3001"), store)
	assert.Equal(t, 70, restored.Points())
}
