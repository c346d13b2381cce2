package database

import (
	"log"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.Event{},
		&models.Venue{},
		&models.Section{},
		&models.Seat{},
		&models.Order{},
		&models.Ticket{},
		&models.SecurityLog{},
		&models.EmailVerificationToken{},
		&models.PasswordResetToken{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: at most one live ticket per seat
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_ticket_live_seat
		ON tickets (seat_id)
		WHERE status NOT IN ('cancelled', 'refunded')
	`)

	return db
}
