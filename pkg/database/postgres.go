package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/staywell/reservation-service/internal/models"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Room{}, &models.Reservation{}, &models.RoomLock{}, &models.Payment{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Overlap queries scan active reservations per room; keep them indexed.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_room_active
		ON reservations (room_id, check_in, check_out)
		WHERE status IN ('pending', 'confirmed')
	`)

	return db
}
