package database

import (
	"fmt"
	"log/slog"

	"pinboard/internal/middleware"
	"pinboard/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Ticket{},
		&models.NewsPost{},
		&models.MediaAsset{},
	}
}

// Migrate brings the schema in sync with the registered models.
func Migrate(db *gorm.DB) error {
	for _, model := range PersistentModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	middleware.Logger.Info("Database migration completed",
		slog.Int("models", len(PersistentModels())),
	)
	return nil
}
