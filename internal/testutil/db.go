// Package testutil fournit une base SQLite en mémoire branchée sur database.DB.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/database"
)

// SetupDB remplace database.DB par une base isolée pour le test courant
func SetupDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := database.SQLiteDSN(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))

	db, err := database.Open(sqlite.Open(dsn), "silent")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Une seule connexion : la base mémoire disparaît avec la dernière
	sqlDB.SetMaxOpenConns(1)

	original := database.DB
	database.DB = db
	require.NoError(t, database.Migrate(models...))

	t.Cleanup(func() {
		database.DB = original
		_ = sqlDB.Close()
	})
	return db
}
