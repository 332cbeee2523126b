package store

import (
	"path/filepath"
	"testing"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的 sqlite 文件库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.SavedQuery{},
		&models.SearchLog{},
	))
	return db
}

func seedUsers(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{ID: 1, Username: "u1"}).Error)
	require.NoError(t, db.Create(&models.User{ID: 2, Username: "u2"}).Error)
}
