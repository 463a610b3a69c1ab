package rooms

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/staywell/reservation-service/internal/models"
)

var ErrRoomNotFound = errors.New("room not found")

// Catalog is the room inventory collaborator: lookups, availability checks
// and lock bookkeeping. Lock state lives in the room_locks table so that it
// survives restarts and is visible to every instance sharing the database.
type Catalog interface {
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)
	CheckAvailability(ctx context.Context, roomID string, r models.DateRange) (bool, error)
	Lock(ctx context.Context, roomID string, r models.DateRange) error
	Unlock(ctx context.Context, roomID string, r models.DateRange) error
}

type gormCatalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) Catalog {
	return &gormCatalog{db: db}
}

func (c *gormCatalog) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	var room models.Room
	if err := c.db.WithContext(ctx).First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// CheckAvailability reports whether the half-open range is free of both held
// locks and blocking (pending/confirmed) reservations. Back-to-back stays
// where one checkout equals the next check-in do not conflict.
func (c *gormCatalog) CheckAvailability(ctx context.Context, roomID string, r models.DateRange) (bool, error) {
	var locks int64
	err := c.db.WithContext(ctx).
		Model(&models.RoomLock{}).
		Where("room_id = ? AND check_in < ? AND check_out > ?", roomID, r.End, r.Start).
		Count(&locks).Error
	if err != nil {
		return false, err
	}
	if locks > 0 {
		return false, nil
	}

	var blocking int64
	err = c.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
			roomID, []models.ReservationStatus{models.StatusPending, models.StatusConfirmed}, r.End, r.Start).
		Count(&blocking).Error
	if err != nil {
		return false, err
	}
	return blocking == 0, nil
}

func (c *gormCatalog) Lock(ctx context.Context, roomID string, r models.DateRange) error {
	lock := models.RoomLock{RoomID: roomID, CheckIn: r.Start, CheckOut: r.End}
	return c.db.WithContext(ctx).Create(&lock).Error
}

// Unlock deletes the lock rows for the exact range. Deleting nothing is a
// no-op success: compensation paths may race with concurrent unlocks.
func (c *gormCatalog) Unlock(ctx context.Context, roomID string, r models.DateRange) error {
	return c.db.WithContext(ctx).
		Where("room_id = ? AND check_in = ? AND check_out = ?", roomID, r.Start, r.End).
		Delete(&models.RoomLock{}).Error
}
