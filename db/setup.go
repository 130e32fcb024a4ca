package db

import (
	"github.com/lorecanvas/lorecanvas/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// TranslateError turns driver-level unique violations into
	// gorm.ErrDuplicatedKey, which the stores rely on for Conflict handling.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	return Migrate(DB)
}

func Migrate(conn *gorm.DB) error {
	models := []interface{}{
		&models.User{},
		&models.Project{},
		&models.RelationshipType{},
		&models.Character{},
		&models.Relationship{},
	}

	migrator := conn.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := conn.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
