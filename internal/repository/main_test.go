package repository

import (
	"snapfeed/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database")
	}

	if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		panic("failed to migrate test database")
	}

	return db
}
