package dto

import (
	"time"

	"github.com/staywell/reservation-service/internal/models"
	"github.com/staywell/reservation-service/internal/payment"
)

type PaymentInstructions struct {
	Method   string `json:"method"`
	Currency string `json:"currency,omitempty"`
}

type CreateReservationRequest struct {
	RoomID         string               `json:"room_id"`
	GuestID        string               `json:"guest_id"`
	CheckIn        string               `json:"check_in"`  // YYYY-MM-DD
	CheckOut       string               `json:"check_out"` // YYYY-MM-DD
	Guests         int                  `json:"guests"`
	SpecialRequest string               `json:"special_request,omitempty"`
	Payment        *PaymentInstructions `json:"payment"`
}

type ReservationResponse struct {
	ID             string                   `json:"id"`
	RoomID         string                   `json:"room_id"`
	GuestID        string                   `json:"guest_id"`
	CheckIn        string                   `json:"check_in"`
	CheckOut       string                   `json:"check_out"`
	Guests         int                      `json:"guests"`
	SpecialRequest string                   `json:"special_request,omitempty"`
	TotalAmount    string                   `json:"total_amount"`
	Status         models.ReservationStatus `json:"status"`
	CreatedAt      time.Time                `json:"created_at"`
	CancelledAt    *time.Time               `json:"cancelled_at,omitempty"`
}

type CreateReservationResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Payment     *payment.Outcome    `json:"payment,omitempty"`
}

type CancelReservationResponse struct {
	Reservation  ReservationResponse `json:"reservation"`
	RefundAmount string              `json:"refund_amount"`
	Refund       *payment.Outcome    `json:"refund,omitempty"`
	Warning      string              `json:"warning,omitempty"`
}

type ValidationErrorResponse struct {
	Message string                   `json:"message"`
	Errors  []models.ValidationError `json:"errors"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:             r.ID,
		RoomID:         r.RoomID,
		GuestID:        r.GuestID,
		CheckIn:        r.CheckIn.Format("2006-01-02"),
		CheckOut:       r.CheckOut.Format("2006-01-02"),
		Guests:         r.Guests,
		SpecialRequest: r.SpecialRequest,
		TotalAmount:    r.TotalAmount.StringFixed(2),
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		CancelledAt:    r.CancelledAt,
	}
}
