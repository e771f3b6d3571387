package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-portal/models"
	"team-portal/response"
	"team-portal/services"
	"team-portal/testutil"
)

type fixture struct {
	store  *testutil.UserStore
	tokens *services.TokenService
	router *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutil.NewUserStore()
	tokens := services.NewTokenService([]byte("test-secret"))
	auth := services.NewAuthService(store, tokens, services.NewPresenceService(store))

	r := gin.New()
	ok := func(c *gin.Context) {
		id, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": id.UserID, "role": c.GetString(RoleKey)})
	}
	r.GET("/protected", JWTAuthMiddleware(auth), ok)
	r.GET("/admin", JWTAuthMiddleware(auth), RequireAdmin(), ok)
	r.GET("/misconfigured", RequireAdmin(), ok)

	return &fixture{store: store, tokens: tokens, router: r}
}

func (f *fixture) do(t *testing.T, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) bearer(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := f.tokens.Issue(u.ID, u.Role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.Error {
	t.Helper()
	var body response.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "/protected", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", decodeError(t, rec).Code)
}

func TestJWTAuthMiddleware_BadTokens(t *testing.T) {
	f := newFixture(t)
	u := testutil.SeedUser(t, f.store, "alice", "pw", models.RoleMember)
	tok, err := f.tokens.Issue(u.ID, u.Role)
	require.NoError(t, err)

	for _, header := range []string{tok, "Token " + tok, "Bearer", "Bearer garbage"} {
		rec := f.do(t, "/protected", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestJWTAuthMiddleware_MarksOnline(t *testing.T) {
	f := newFixture(t)
	u := testutil.SeedUser(t, f.store, "alice", "pw", models.RoleMember)

	rec := f.do(t, "/protected", f.bearer(t, u))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, _ := f.store.Get(u.ID)
	assert.True(t, stored.IsOnline)
	assert.NotNil(t, stored.LastSeen)
}

func TestRequireAdmin(t *testing.T) {
	f := newFixture(t)
	member := testutil.SeedUser(t, f.store, "alice", "pw", models.RoleMember)
	admin := testutil.SeedUser(t, f.store, "boss", "pw", models.RoleAdmin)

	rec := f.do(t, "/admin", f.bearer(t, member))
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeError(t, rec).Code)

	rec = f.do(t, "/admin", f.bearer(t, admin))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "authentication failure propagates unchanged")

	rec = f.do(t, "/misconfigured", f.bearer(t, admin))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
