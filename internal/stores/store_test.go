package stores

import (
	"fmt"
	"testing"

	"github.com/lorecanvas/lorecanvas/db"
	"github.com/lorecanvas/lorecanvas/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database so every pooled connection sees the
	// same in-memory store.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	return conn
}

func createTestUser(t *testing.T, conn *gorm.DB, email string) *models.User {
	t.Helper()

	user, err := RegisterUser(conn, "Test User", email, "password1")
	require.NoError(t, err)

	return user
}

func createTestProject(t *testing.T, conn *gorm.DB, userID uint, name string) *models.Project {
	t.Helper()

	project, err := CreateProject(conn, userID, name, "")
	require.NoError(t, err)

	return project
}

func createTestCharacter(t *testing.T, conn *gorm.DB, projectID uint, name string) *models.Character {
	t.Helper()

	character, err := CreateCharacter(conn, projectID, CharacterInput{Name: name})
	require.NoError(t, err)

	return character
}
