package database

import (
	"fmt"
	"log"

	"github.com/sulayman101/puntrms/internal/config"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Lets repositories map unique-index violations to domain errors
		// via gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Staff{},
		&entity.Item{},
		&entity.Order{},
		&entity.OrderLine{},
		&entity.LoanCustomer{},
		&entity.LoanEntry{},
		&entity.IdempotencyKey{},
		&entity.Counter{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedDefaultData creates the order-number counter row and a default admin
// staff account when the database is empty.
func SeedDefaultData(db *gorm.DB, adminPhone, adminPIN string) error {
	var counter entity.Counter
	if err := db.Where("name = ?", entity.CounterOrderNumber).First(&counter).Error; err != nil {
		if err := db.Create(&entity.Counter{Name: entity.CounterOrderNumber}).Error; err != nil {
			return fmt.Errorf("failed to seed order number counter: %w", err)
		}
	}

	var count int64
	if err := db.Model(&entity.Staff{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPIN), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin PIN: %w", err)
	}

	admin := entity.Staff{
		Name:    "Admin",
		Phone:   adminPhone,
		PINHash: string(hash),
		Role:    entity.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin staff: %w", err)
	}

	log.Printf("Seeded default admin staff (phone %s)", adminPhone)
	return nil
}
