package repositories

import (
	"fmt"
	"testing"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database per test
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.ChatRoom{},
		&models.ChatMembership{},
		&models.ChatMessage{},
		&models.Friendship{},
		&models.Notification{},
		&models.Comment{},
		&models.Like{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    username + "@playhaven.gg",
		Username: username,
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
