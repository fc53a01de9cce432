package db

import (
	"fmt"

	"feedbackhub/internal/model"

	"gorm.io/gorm"
)

// Migrate creates the schema. With reset the tables are dropped first,
// children before parents.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		if err := db.Migrator().DropTable(&model.Feedback{}, &model.User{}); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
	}
	if err := db.AutoMigrate(&model.User{}, &model.Feedback{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
