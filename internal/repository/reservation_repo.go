package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staywell/reservation-service/internal/models"
)

type ReservationRepository interface {
	Save(ctx context.Context, res *models.Reservation) error
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	FindByGuest(ctx context.Context, guestID string) ([]models.Reservation, error)
	AddPayment(ctx context.Context, p *models.Payment) error
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// Save persists the reservation, assigning an id on first save. A record
// with an id already present is updated in full.
func (r *reservationRepository) Save(ctx context.Context, res *models.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
		return r.db.WithContext(ctx).Create(res).Error
	}
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&res, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) FindByGuest(ctx context.Context, guestID string) ([]models.Reservation, error) {
	var out []models.Reservation
	err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reservationRepository) AddPayment(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(p).Error
}
