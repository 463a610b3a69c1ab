package service

import (
	"github.com/shopspring/decimal"

	"github.com/staywell/reservation-service/internal/models"
	"github.com/staywell/reservation-service/internal/payment"
)

// OutcomeCode tags every saga result. Business rejections and infrastructure
// faults alike come back as codes, never as panics past the saga boundary,
// so callers are forced to handle each case.
type OutcomeCode string

const (
	OutcomeConfirmed              OutcomeCode = "confirmed"
	OutcomeValidationFailed       OutcomeCode = "validation_failed"
	OutcomeRoomUnavailable        OutcomeCode = "room_unavailable"
	OutcomePaymentFailed          OutcomeCode = "payment_failed"
	OutcomePersistenceFailed      OutcomeCode = "persistence_failed"
	OutcomeInfrastructureFault    OutcomeCode = "infrastructure_fault"
	OutcomeCancelled              OutcomeCode = "cancelled"
	OutcomeRefundFailed           OutcomeCode = "cancelled_refund_failed"
	OutcomeNotFound               OutcomeCode = "not_found"
	OutcomeCancellationNotAllowed OutcomeCode = "cancellation_not_allowed"
)

// CreateResult is the tagged outcome of CreateReservation.
type CreateResult struct {
	Code        OutcomeCode
	Message     string
	Errors      []models.ValidationError
	Reservation *models.Reservation
	Payment     *payment.Outcome
	RoomID      string
	Range       *models.DateRange
}

// CancelResult is the tagged outcome of CancelReservation.
type CancelResult struct {
	Code         OutcomeCode
	Message      string
	Reservation  *models.Reservation
	RefundAmount decimal.Decimal
	Refund       *payment.Outcome
}
