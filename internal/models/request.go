package models

import "time"

// PaymentInstructions carries what the gateway needs to capture a booking.
type PaymentInstructions struct {
	Method   string `json:"method"`
	Currency string `json:"currency"`
}

// BookingRequest is the saga's input for creating a reservation.
type BookingRequest struct {
	RoomID         string               `json:"room_id"`
	GuestID        string               `json:"guest_id"`
	CheckIn        time.Time            `json:"check_in"`
	CheckOut       time.Time            `json:"check_out"`
	Guests         int                  `json:"guests"`
	SpecialRequest string               `json:"special_request,omitempty"`
	Payment        *PaymentInstructions `json:"payment"`
}

// ValidationError is one field-level problem with a request. A request with
// zero validation errors is valid.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
