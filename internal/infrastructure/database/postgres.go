package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/prince-yadav810/taponce-api/internal/config"
	"github.com/prince-yadav810/taponce-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.CardDesign{},
		&entity.Agent{},
		&entity.Order{},
		&entity.Customer{},
		&entity.Expense{},
		&entity.Payout{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the catalog and the admin account on first boot
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Default card design catalog. BaseMSP in paise.
	designs := []entity.CardDesign{
		{Name: "Classic Black", Description: "Matte black PVC with white imprint", BaseMSP: 60000},
		{Name: "Brushed Metal", Description: "Stainless steel with laser engraving", BaseMSP: 120000},
		{Name: "Bamboo", Description: "Sustainably sourced bamboo", BaseMSP: 90000},
		{Name: "Transparent", Description: "Frosted acrylic", BaseMSP: 75000},
	}
	for i := range designs {
		var existing entity.CardDesign
		if err := db.Where("name = ?", designs[i].Name).First(&existing).Error; err != nil {
			designs[i].Active = true
			if err := db.Create(&designs[i]).Error; err != nil {
				log.Printf("Warning: failed to create card design %s: %v", designs[i].Name, err)
			}
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Admin"
				}
				adminUser := entity.User{
					ID:       uuid.New(),
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
					Role:     entity.RoleAdmin,
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
