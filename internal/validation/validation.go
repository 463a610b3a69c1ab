// Package validation holds the pure request validation contract. Syntactic
// checks need only the request and the current time; business rules
// additionally need the room the saga fetched. Both produce the same
// []models.ValidationError shape and are side-effect free.
package validation

import (
	"fmt"
	"time"

	"github.com/staywell/reservation-service/internal/models"
)

const (
	MinGuests            = 1
	MaxGuests            = 10
	MaxSpecialRequestLen = 500
)

// Syntactic validates field presence and basic shape. It never touches a
// collaborator.
func Syntactic(req models.BookingRequest, now time.Time) []models.ValidationError {
	var errs []models.ValidationError

	if req.RoomID == "" {
		errs = append(errs, models.ValidationError{Field: "room_id", Message: "room_id is required"})
	}
	if req.GuestID == "" {
		errs = append(errs, models.ValidationError{Field: "guest_id", Message: "guest_id is required"})
	}

	today := models.DateOnly(now)
	if req.CheckIn.IsZero() {
		errs = append(errs, models.ValidationError{Field: "check_in", Message: "check_in is required"})
	} else if models.DateOnly(req.CheckIn).Before(today) {
		errs = append(errs, models.ValidationError{Field: "check_in", Message: "check_in must not be in the past"})
	}
	if req.CheckOut.IsZero() {
		errs = append(errs, models.ValidationError{Field: "check_out", Message: "check_out is required"})
	} else if !models.DateOnly(req.CheckOut).After(today) {
		errs = append(errs, models.ValidationError{Field: "check_out", Message: "check_out must be in the future"})
	}

	if req.Guests < MinGuests || req.Guests > MaxGuests {
		errs = append(errs, models.ValidationError{
			Field:   "guests",
			Message: fmt.Sprintf("guests must be between %d and %d", MinGuests, MaxGuests),
		})
	}
	if len(req.SpecialRequest) > MaxSpecialRequestLen {
		errs = append(errs, models.ValidationError{
			Field:   "special_request",
			Message: fmt.Sprintf("special_request must not exceed %d characters", MaxSpecialRequestLen),
		})
	}
	if req.Payment == nil || req.Payment.Method == "" {
		errs = append(errs, models.ValidationError{Field: "payment", Message: "payment instructions are required"})
	}

	return errs
}

// BusinessRules layers domain checks on top of Syntactic. The caller has
// already fetched the room; a nil room means it does not exist.
func BusinessRules(req models.BookingRequest, room *models.Room, now time.Time) []models.ValidationError {
	var errs []models.ValidationError

	if room == nil {
		return append(errs, models.ValidationError{Field: "room_id", Message: "room does not exist"})
	}
	if req.Guests > room.MaxOccupancy {
		errs = append(errs, models.ValidationError{
			Field:   "guests",
			Message: fmt.Sprintf("room %s sleeps at most %d guests", room.ID, room.MaxOccupancy),
		})
	}

	checkIn := models.DateOnly(req.CheckIn)
	checkOut := models.DateOnly(req.CheckOut)
	if !checkIn.Before(checkOut) {
		errs = append(errs, models.ValidationError{Field: "check_out", Message: "check_out must be after check_in"})
		return errs
	}
	if checkIn.Before(models.DateOnly(now)) {
		errs = append(errs, models.ValidationError{Field: "check_in", Message: "check_in must not be in the past"})
	}
	if nights := (models.DateRange{Start: checkIn, End: checkOut}).Nights(); nights > models.MaxStayNights {
		errs = append(errs, models.ValidationError{
			Field:   "check_out",
			Message: fmt.Sprintf("stay must not exceed %d nights", models.MaxStayNights),
		})
	}

	return errs
}
