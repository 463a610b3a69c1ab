package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Room struct {
	ID           string          `gorm:"primaryKey" json:"id"`
	Number       string          `gorm:"size:20" json:"number"`
	MaxOccupancy int             `gorm:"not null" json:"max_occupancy"`
	BaseRate     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_rate"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RoomLock is a held availability range for a room. A row exists while the
// range is locked; unlock deletes it.
type RoomLock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    string    `gorm:"index;not null" json:"room_id"`
	CheckIn   time.Time `gorm:"not null" json:"check_in"`
	CheckOut  time.Time `gorm:"not null" json:"check_out"`
	CreatedAt time.Time `json:"created_at"`
}
