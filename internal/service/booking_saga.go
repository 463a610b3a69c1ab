package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/staywell/reservation-service/internal/availability"
	"github.com/staywell/reservation-service/internal/clock"
	"github.com/staywell/reservation-service/internal/models"
	"github.com/staywell/reservation-service/internal/notifier"
	"github.com/staywell/reservation-service/internal/payment"
	"github.com/staywell/reservation-service/internal/pricing"
	"github.com/staywell/reservation-service/internal/refund"
	"github.com/staywell/reservation-service/internal/repository"
	"github.com/staywell/reservation-service/internal/rooms"
	"github.com/staywell/reservation-service/internal/validation"
)

var ErrReservationNotFound = errors.New("reservation not found")

const defaultCurrency = "USD"

// BookingSaga drives reservation creation and cancellation to a consistent
// terminal state. There is no atomic transaction spanning the room inventory
// and the payment gateway, so correctness rests on step ordering and the
// compensations below. The one ordering that matters: a failed reservation
// is marked cancelled BEFORE its room lock is released, so no concurrent
// request can see a free room while the dead reservation still looks
// pending.
type BookingSaga interface {
	CreateReservation(ctx context.Context, req models.BookingRequest) CreateResult
	CancelReservation(ctx context.Context, id string) CancelResult
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	ListByGuest(ctx context.Context, guestID string) ([]models.Reservation, error)
}

type bookingSaga struct {
	store    repository.ReservationRepository
	catalog  rooms.Catalog
	gate     availability.Gate
	payments payment.Service
	notify   notifier.Notifier
	clock    clock.Clock
}

func NewBookingSaga(
	store repository.ReservationRepository,
	catalog rooms.Catalog,
	gate availability.Gate,
	payments payment.Service,
	notify notifier.Notifier,
	clk clock.Clock,
) BookingSaga {
	return &bookingSaga{
		store:    store,
		catalog:  catalog,
		gate:     gate,
		payments: payments,
		notify:   notify,
		clock:    clk,
	}
}

func (s *bookingSaga) CreateReservation(ctx context.Context, req models.BookingRequest) CreateResult {
	now := s.clock.Now()

	// 1. Pure validation: nothing locked, nothing persisted on failure.
	if errs := validation.Syntactic(req, now); len(errs) > 0 {
		return CreateResult{Code: OutcomeValidationFailed, Message: "request validation failed", Errors: errs}
	}

	room, err := s.catalog.GetRoom(ctx, req.RoomID)
	if err != nil && !errors.Is(err, rooms.ErrRoomNotFound) {
		return CreateResult{Code: OutcomeInfrastructureFault, Message: fmt.Sprintf("room lookup: %v", err)}
	}
	if errs := validation.BusinessRules(req, room, now); len(errs) > 0 {
		return CreateResult{Code: OutcomeValidationFailed, Message: "request validation failed", Errors: errs}
	}

	rng := models.DateRange{Start: models.DateOnly(req.CheckIn), End: models.DateOnly(req.CheckOut)}

	// 2. Acquire the availability lock. A genuine overlap is a normal
	// negative result, not a fault.
	locked, err := s.gate.CheckAndLock(ctx, room.ID, rng)
	if err != nil {
		return CreateResult{Code: OutcomeInfrastructureFault, Message: fmt.Sprintf("availability check: %v", err)}
	}
	if !locked {
		return CreateResult{Code: OutcomeRoomUnavailable, Message: "room is not available for the requested dates", RoomID: room.ID, Range: &rng}
	}

	// 3. Price the locked range.
	total := pricing.CalculateTotalPrice(room.BaseRate, rng.Start, rng.End)

	// 4. Persist the pending reservation. Nothing is recorded yet, so the
	// only compensation is releasing the lock.
	res := &models.Reservation{
		GuestID:        req.GuestID,
		RoomID:         room.ID,
		CheckIn:        rng.Start,
		CheckOut:       rng.End,
		Guests:         req.Guests,
		SpecialRequest: req.SpecialRequest,
		TotalAmount:    total,
		Status:         models.StatusPending,
	}
	if err := s.store.Save(ctx, res); err != nil {
		log.Printf("[Saga] persist pending reservation: %v", err)
		if uerr := s.gate.Unlock(ctx, room.ID, rng); uerr != nil {
			log.Printf("[Saga] compensation unlock room %s %s: %v", room.ID, rng, uerr)
		}
		return CreateResult{Code: OutcomePersistenceFailed, Message: "could not persist reservation"}
	}

	// 5. Capture payment.
	currency := req.Payment.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	out := s.payments.Capture(ctx, payment.CaptureRequest{
		Amount:   total,
		Currency: currency,
		Method:   req.Payment.Method,
		OrderID:  res.ID,
	})
	if !out.Success {
		s.markCancelledThenUnlock(ctx, res, rng)
		return CreateResult{Code: OutcomePaymentFailed, Message: out.Message, Payment: &out, Reservation: res}
	}

	if err := s.store.AddPayment(ctx, &models.Payment{
		ReservationID: res.ID,
		ProviderTx:    out.PaymentID,
		Amount:        total,
		Currency:      currency,
		Kind:          models.PaymentCapture,
		Status:        out.Status,
	}); err != nil {
		// The capture succeeded; losing the audit row must not fail the
		// booking.
		log.Printf("[Saga] record capture for reservation %s: %v", res.ID, err)
	}

	// 6. Confirm. A persistence fault here, after money moved, refunds the
	// capture and compensates like any other post-lock fault.
	if err := res.TransitionTo(models.StatusConfirmed, now); err != nil {
		log.Printf("[Saga] confirm transition for reservation %s: %v", res.ID, err)
		s.refundBestEffort(ctx, out.PaymentID, res)
		s.markCancelledThenUnlock(ctx, res, rng)
		return CreateResult{Code: OutcomeInfrastructureFault, Message: "reservation could not be confirmed"}
	}
	if err := s.store.Save(ctx, res); err != nil {
		log.Printf("[Saga] persist confirmed reservation %s: %v", res.ID, err)
		s.refundBestEffort(ctx, out.PaymentID, res)
		s.markCancelledThenUnlock(ctx, res, rng)
		return CreateResult{Code: OutcomePersistenceFailed, Message: "could not persist confirmation"}
	}

	// 7. Notify. Fire-and-forget: the reservation is committed either way.
	if err := s.notify.SendConfirmation(res); err != nil {
		log.Printf("[Saga] confirmation notification for %s: %v", res.ID, err)
	}

	return CreateResult{Code: OutcomeConfirmed, Reservation: res, Payment: &out}
}

func (s *bookingSaga) CancelReservation(ctx context.Context, id string) CancelResult {
	now := s.clock.Now()

	res, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CancelResult{Code: OutcomeNotFound, Message: "reservation not found"}
		}
		return CancelResult{Code: OutcomeInfrastructureFault, Message: fmt.Sprintf("reservation lookup: %v", err)}
	}

	// Only a confirmed reservation with a future check-in may be cancelled.
	// Re-cancelling an already-cancelled reservation lands here too, which
	// is what makes cancellation refund-once.
	if res.Status != models.StatusConfirmed {
		return CancelResult{Code: OutcomeCancellationNotAllowed, Message: fmt.Sprintf("reservation is %s", res.Status), Reservation: res}
	}
	if !models.DateOnly(res.CheckIn).After(models.DateOnly(now)) {
		return CancelResult{Code: OutcomeCancellationNotAllowed, Message: "check-in is not in the future", Reservation: res}
	}

	if err := res.TransitionTo(models.StatusCancelled, now); err != nil {
		return CancelResult{Code: OutcomeInfrastructureFault, Message: err.Error(), Reservation: res}
	}
	if err := s.store.Save(ctx, res); err != nil {
		return CancelResult{Code: OutcomePersistenceFailed, Message: "could not persist cancellation", Reservation: res}
	}

	// The cancellation is committed. Everything below is best-effort and
	// must not undo it.
	if err := s.gate.Unlock(ctx, res.RoomID, res.Range()); err != nil {
		log.Printf("[Saga] unlock for cancelled reservation %s: %v", res.ID, err)
	}

	amount := refund.Amount(res.TotalAmount, res.CheckIn, now)
	result := CancelResult{Code: OutcomeCancelled, Reservation: res, RefundAmount: amount}

	if amount.Sign() > 0 {
		capture := res.FirstCapture()
		if capture == nil {
			log.Printf("[Saga] reservation %s has no capture on record, skipping refund", res.ID)
		} else {
			out := s.payments.Refund(ctx, capture.ProviderTx, amount)
			result.Refund = &out
			if !out.Success {
				result.Code = OutcomeRefundFailed
				result.Message = out.Message
			} else if err := s.store.AddPayment(ctx, &models.Payment{
				ReservationID: res.ID,
				ProviderTx:    out.PaymentID,
				Amount:        amount,
				Currency:      capture.Currency,
				Kind:          models.PaymentRefund,
				Status:        out.Status,
			}); err != nil {
				log.Printf("[Saga] record refund for reservation %s: %v", res.ID, err)
			}
		}
	}

	if err := s.notify.SendCancellation(res); err != nil {
		log.Printf("[Saga] cancellation notification for %s: %v", res.ID, err)
	}

	return result
}

func (s *bookingSaga) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *bookingSaga) ListByGuest(ctx context.Context, guestID string) ([]models.Reservation, error) {
	return s.store.FindByGuest(ctx, guestID)
}

// markCancelledThenUnlock runs the compensation for a reservation that was
// persisted but will not be honored. Order is load-bearing: the record must
// reflect a non-blocking status before the lock is released, otherwise a
// concurrent request could find the room free while this reservation still
// looks pending. Failures here are logged, never propagated; the caller has
// already decided the outcome.
func (s *bookingSaga) markCancelledThenUnlock(ctx context.Context, res *models.Reservation, rng models.DateRange) {
	if err := res.TransitionTo(models.StatusCancelled, s.clock.Now()); err != nil {
		log.Printf("[Saga] compensation transition for reservation %s: %v", res.ID, err)
	} else if err := s.store.Save(ctx, res); err != nil {
		log.Printf("[Saga] compensation persist for reservation %s: %v", res.ID, err)
	}
	if err := s.gate.Unlock(ctx, res.RoomID, rng); err != nil {
		log.Printf("[Saga] compensation unlock room %s %s: %v", res.RoomID, rng, err)
	}
}

func (s *bookingSaga) refundBestEffort(ctx context.Context, paymentID string, res *models.Reservation) {
	out := s.payments.Refund(ctx, paymentID, res.TotalAmount)
	if !out.Success {
		log.Printf("[Saga] compensation refund for reservation %s: %s", res.ID, out.Message)
	}
}
