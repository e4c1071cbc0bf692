package db

import (
	"log"
	"time"

	"github.com/HestiaEstates/listing-api/internal/config"
	"github.com/HestiaEstates/listing-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.ListingProgress{},
		&models.Document{},
		&models.LawyerDelegation{},
		&models.VisitSettings{},
		&models.Appointment{},
		&models.PropertyImage{},
		&models.DomainEvent{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// One active appointment per (property, buyer); AutoMigrate cannot
	// express the partial predicate.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_pair
		 ON appointments (property_id, buyer_id)
		 WHERE status IN ('pending', 'accepted')`,
	).Error; err != nil {
		log.Fatalf("failed to create appointment pair index: %v", err)
	}

	return db
}
