package crud_test

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"warbler/crud"
	"warbler/database"
)

const (
	testHMACKey = "test-hmac-key"
	testPepper  = "test-pepper"
)

// setupTestDB opens an in-memory sqlite database with foreign key
// enforcement on and the full schema migrated. The connection pool is capped
// at one because each sqlite :memory: connection is its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// setupServices builds the full crud service set over a fresh test database.
func setupServices(t *testing.T) (*crud.Services, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	services, err := crud.NewServices(
		db,
		crud.WithUser(testHMACKey, testPepper),
		crud.WithMessage(),
		crud.WithFollow(),
		crud.WithLike(),
	)
	if err != nil {
		t.Fatalf("failed to build services: %v", err)
	}
	return services, db
}
