package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/auth"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/post"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/testutil"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/user"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutil.SetupDB(t, &user.User{}, &auth.Token{}, &post.Post{}, &post.ImagePrompt{})
	return Setup(auth.NewDBTokenService("router-test"), auth.BcryptHasher{Cost: bcrypt.MinCost})
}

func call(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := call(t, r, http.MethodPost, "/api/auth/register/", "", map[string]string{
		"username": username,
		"email":    username + "@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)

	w := call(t, r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestEndToEndScenario(t *testing.T) {
	r := setupRouter(t)

	register(t, r, "alice")

	w := call(t, r, http.MethodPost, "/api/auth/login/", "", map[string]string{
		"username": "alice", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = call(t, r, http.MethodPost, "/api/posts/", login.Token, map[string]string{
		"caption": "hi", "platform": "LinkedIn", "status": "Draft",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created post.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "linkedin", created.Platform)
	assert.Equal(t, "draft", created.Status)

	w = call(t, r, http.MethodGet, "/api/dashboard/stats/", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"total_posts": 1,
		"draft_posts": 1,
		"scheduled_posts": 0,
		"ready_to_post_posts": 0,
		"posted_posts": 0,
		"platforms": {"instagram": 0, "linkedin": 1, "twitter": 0}
	}`, w.Body.String())

	w = call(t, r, http.MethodGet, "/api/auth/me/", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)

	w = call(t, r, http.MethodPost, "/api/auth/logout/", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodGet, "/api/posts/", login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token."}`, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{
		"/api/posts/",
		"/api/posts/1/",
		"/api/posts/status/draft/",
		"/api/dashboard/stats/",
		"/api/auth/me/",
		"/api/admin/stats/",
	} {
		w := call(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCrossUserIsolation(t *testing.T) {
	r := setupRouter(t)
	alice := register(t, r, "alice")
	bob := register(t, r, "bob")

	w := call(t, r, http.MethodPost, "/api/posts/", alice, map[string]string{
		"caption": "private", "platform": "twitter",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created post.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := fmt.Sprintf("/api/posts/%d/", created.ID)

	assert.Equal(t, http.StatusNotFound, call(t, r, http.MethodGet, path, bob, nil).Code)

	w = call(t, r, http.MethodGet, "/api/posts/", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = call(t, r, http.MethodGet, "/api/dashboard/stats/", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"total_posts":0`))
}

func TestAdminRoutesRequireStaff(t *testing.T) {
	r := setupRouter(t)
	alice := register(t, r, "alice")

	w := call(t, r, http.MethodGet, "/api/admin/stats/", alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	u, err := user.FindByUsername("alice")
	require.NoError(t, err)
	require.NoError(t, user.SetStaff(u.ID, true))

	w = call(t, r, http.MethodGet, "/api/admin/stats/", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_users":1,"staff_users":1,"total_posts":0,"posts_with_prompt":0}`, w.Body.String())

	w = call(t, r, http.MethodGet, "/api/admin/posts/", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupRouter(t)
	call(t, r, http.MethodGet, "/", "", nil)

	w := call(t, r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
