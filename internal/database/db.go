package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/commerceblock/mainstay-api/internal/logger"
	"github.com/commerceblock/mainstay-api/internal/models"
)

// Open opens the SQLite database at dbPath and migrates the Mainstay
// collections.
func Open(dbPath string) (*gorm.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %v", err)
		}
	}

	// Configure GORM to be less verbose
	config := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	}

	db, err := gorm.Open(sqlite.Open(dbPath), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("SQLite database initialized successfully")
	return db, nil
}

// Migrate creates or updates the schema for every collection the service
// reads or writes.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Attestation{},
		&models.AttestationInfo{},
		&models.ClientCommitment{},
		&models.ClientDetails{},
		&models.MerkleCommitment{},
		&models.MerkleProof{},
		&models.ClientSignup{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}
	return nil
}
