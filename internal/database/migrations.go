package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for browse filters and sorting
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_category", "category"},
		{"tasks", "idx_tasks_location", "location"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Profile rating lookups
		{"ratings", "idx_ratings_rated_user_id", "rated_user_id"},

		// Photo review queue
		{"task_photos", "idx_task_photos_status", "status"},

		// Unread notification counts
		{"notifications", "idx_notifications_user_read", "user_id, is_read"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs AutoMigrate plus the index bootstrap. The index
// existence check reads pg_indexes, so it only runs on postgres; mysql and
// sqlite rely on the indexes declared in model tags.
func MigrateDatabase(db *gorm.DB) error {
	if err := Migrate(); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
