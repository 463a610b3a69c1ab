package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxStayNights is the longest stay a single reservation may cover.
const MaxStayNights = 30

type Reservation struct {
	ID             string            `gorm:"primaryKey;type:uuid" json:"id"`
	GuestID        string            `gorm:"not null;index" json:"guest_id"`
	RoomID         string            `gorm:"not null;index" json:"room_id"`
	CheckIn        time.Time         `gorm:"not null" json:"check_in"`
	CheckOut       time.Time         `gorm:"not null" json:"check_out"`
	Guests         int               `gorm:"not null" json:"guests"`
	SpecialRequest string            `gorm:"size:500" json:"special_request,omitempty"`
	TotalAmount    decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status         ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	CancelledAt    *time.Time        `json:"cancelled_at,omitempty"`

	// Payments are ordered by creation; the first capture is the payment
	// of record for refunds.
	Payments []Payment `gorm:"foreignKey:ReservationID" json:"payments,omitempty"`
}

// Range returns the reservation's stay as a DateRange.
func (r *Reservation) Range() DateRange {
	return DateRange{Start: r.CheckIn, End: r.CheckOut}
}

// FirstCapture returns the first successful capture payment, or nil.
func (r *Reservation) FirstCapture() *Payment {
	for i := range r.Payments {
		if r.Payments[i].Kind == PaymentCapture {
			return &r.Payments[i]
		}
	}
	return nil
}
