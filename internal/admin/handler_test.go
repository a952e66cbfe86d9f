package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/post"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/testutil"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/user"
)

func setupAdmin(t *testing.T) *gin.Engine {
	t.Helper()
	testutil.SetupDB(t, &user.User{}, &post.Post{}, &post.ImagePrompt{})

	staff := &user.User{Username: "admin", Email: "admin@x.com", PasswordHash: "h", IsStaff: true}
	alice := &user.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, user.Create(staff))
	require.NoError(t, user.Create(alice))

	posts := []struct {
		owner    uint
		caption  string
		platform string
		status   string
		prompt   string
	}{
		{alice.ID, "Summer launch", post.PlatformInstagram, post.StatusDraft, "beach"},
		{alice.ID, "Hiring now", post.PlatformLinkedIn, post.StatusScheduled, ""},
		{staff.ID, "Release notes", post.PlatformTwitter, post.StatusPosted, ""},
	}
	for _, p := range posts {
		require.NoError(t, post.Create(&post.Post{
			UserID: p.owner, Caption: p.caption, Platform: p.platform, Status: p.status,
		}, p.prompt))
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/posts/", ListPosts)
	r.GET("/admin/stats/", GetStats)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetStats(t *testing.T) {
	r := setupAdmin(t)

	w := get(r, "/admin/stats/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_users":2,"staff_users":1,"total_posts":3,"posts_with_prompt":1}`, w.Body.String())
}

type pageResponse struct {
	Posts []post.View `json:"posts"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Total int64       `json:"total"`
}

func TestListPosts(t *testing.T) {
	r := setupAdmin(t)

	tests := []struct {
		name  string
		query string
		count int
		total int64
		page  int
		limit int
	}{
		{name: "all", query: "", count: 3, total: 3, page: 1, limit: defaultLimit},
		{name: "platform", query: "?platform=LinkedIn", count: 1, total: 1, page: 1, limit: defaultLimit},
		{name: "status", query: "?status=posted", count: 1, total: 1, page: 1, limit: defaultLimit},
		{name: "search", query: "?search=LAUNCH", count: 1, total: 1, page: 1, limit: defaultLimit},
		{name: "second page", query: "?page=2&limit=2", count: 1, total: 3, page: 2, limit: 2},
		{name: "limit capped", query: "?limit=500", count: 3, total: 3, page: 1, limit: defaultLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/admin/posts/"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			var body pageResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Len(t, body.Posts, tt.count)
			assert.Equal(t, tt.total, body.Total)
			assert.Equal(t, tt.page, body.Page)
			assert.Equal(t, tt.limit, body.Limit)
		})
	}
}

func TestListPostsInvalidFilter(t *testing.T) {
	r := setupAdmin(t)

	w := get(r, "/admin/posts/?platform=facebook")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/admin/posts/?status=archived")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPostsPageOutOfRange(t *testing.T) {
	r := setupAdmin(t)

	w := get(r, "/admin/posts/?page=9223372036854775807&limit=2")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid page."}`, w.Body.String())

	// Page valide mais au-delà des résultats : liste vide, total conservé
	w = get(r, "/admin/posts/?page=50&limit=2")
	require.Equal(t, http.StatusOK, w.Code)
	var body pageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Posts)
	assert.EqualValues(t, 3, body.Total)
}
