package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/database"
)

func mockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	original := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = original
		_ = sqlDB.Close()
	})
	return mock
}

func staffRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
		c.Next()
	}, StaffOnlyMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestStaffOnlyMiddleware(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT "is_staff" FROM "users"`)

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		staffRouter(0).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non staff", func(t *testing.T) {
		mock := mockDB(t)
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"is_staff"}).AddRow(false))

		w := httptest.NewRecorder()
		staffRouter(3).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("staff", func(t *testing.T) {
		mock := mockDB(t)
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"is_staff"}).AddRow(true))

		w := httptest.NewRecorder()
		staffRouter(1).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
