package config

import (
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Andyflow28/SolTech-RESTAPI/models"
)

// ConnectDB opens the PostgreSQL connection and runs migrations. The pool is
// kept small: 5 steady connections with overflow headroom of 10 more.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.DatabaseURL
	// Some hosting providers hand out postgres:// URLs
	if strings.HasPrefix(dsn, "postgres://") {
		dsn = strings.Replace(dsn, "postgres://", "postgresql://", 1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(15)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := MigrateModels(db); err != nil {
		return nil, err
	}
	return db, nil
}

// MigrateModels runs the database migrations
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Station{}, &models.Reading{})
}
