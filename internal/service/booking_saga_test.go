package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/staywell/reservation-service/internal/clock"
	"github.com/staywell/reservation-service/internal/models"
	"github.com/staywell/reservation-service/internal/payment"
	"github.com/staywell/reservation-service/internal/rooms"
)

// --- Mock store ---

type mockStore struct {
	events *[]string

	saveFn       func(ctx context.Context, res *models.Reservation) error
	findByIDFn   func(ctx context.Context, id string) (*models.Reservation, error)
	findByGuest  func(ctx context.Context, guestID string) ([]models.Reservation, error)
	addPaymentFn func(ctx context.Context, p *models.Payment) error
}

func (m *mockStore) Save(ctx context.Context, res *models.Reservation) error {
	if m.events != nil {
		*m.events = append(*m.events, "save:"+string(res.Status))
	}
	if m.saveFn != nil {
		return m.saveFn(ctx, res)
	}
	if res.ID == "" {
		res.ID = "res-1"
	}
	return nil
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockStore) FindByGuest(ctx context.Context, guestID string) ([]models.Reservation, error) {
	return m.findByGuest(ctx, guestID)
}

func (m *mockStore) AddPayment(ctx context.Context, p *models.Payment) error {
	if m.addPaymentFn != nil {
		return m.addPaymentFn(ctx, p)
	}
	return nil
}

// --- Mock catalog ---

type mockCatalog struct {
	getRoomFn func(ctx context.Context, roomID string) (*models.Room, error)
}

func (m *mockCatalog) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	return m.getRoomFn(ctx, roomID)
}

func (m *mockCatalog) CheckAvailability(ctx context.Context, roomID string, r models.DateRange) (bool, error) {
	return false, errors.New("saga must go through the gate")
}

func (m *mockCatalog) Lock(ctx context.Context, roomID string, r models.DateRange) error {
	return errors.New("saga must go through the gate")
}

func (m *mockCatalog) Unlock(ctx context.Context, roomID string, r models.DateRange) error {
	return errors.New("saga must go through the gate")
}

// --- Mock gate ---

type mockGate struct {
	events *[]string

	checkAndLockFn func(ctx context.Context, roomID string, r models.DateRange) (bool, error)
	unlockFn       func(ctx context.Context, roomID string, r models.DateRange) error
}

func (m *mockGate) CheckAndLock(ctx context.Context, roomID string, r models.DateRange) (bool, error) {
	if m.events != nil {
		*m.events = append(*m.events, "lock")
	}
	if m.checkAndLockFn != nil {
		return m.checkAndLockFn(ctx, roomID, r)
	}
	return true, nil
}

func (m *mockGate) Unlock(ctx context.Context, roomID string, r models.DateRange) error {
	if m.events != nil {
		*m.events = append(*m.events, "unlock")
	}
	if m.unlockFn != nil {
		return m.unlockFn(ctx, roomID, r)
	}
	return nil
}

// --- Mock payments ---

type mockPayments struct {
	events *[]string

	captureFn func(ctx context.Context, req payment.CaptureRequest) payment.Outcome
	refundFn  func(ctx context.Context, paymentID string, amount decimal.Decimal) payment.Outcome
}

func (m *mockPayments) Capture(ctx context.Context, req payment.CaptureRequest) payment.Outcome {
	if m.events != nil {
		*m.events = append(*m.events, "capture")
	}
	if m.captureFn != nil {
		return m.captureFn(ctx, req)
	}
	return payment.Outcome{Success: true, Status: "captured", PaymentID: "pay-1"}
}

func (m *mockPayments) Refund(ctx context.Context, paymentID string, amount decimal.Decimal) payment.Outcome {
	if m.events != nil {
		*m.events = append(*m.events, "refund")
	}
	if m.refundFn != nil {
		return m.refundFn(ctx, paymentID, amount)
	}
	return payment.Outcome{Success: true, Status: "refunded", PaymentID: paymentID}
}

// --- Mock notifier ---

type mockNotifier struct {
	confirmations int
	cancellations int
	err           error
}

func (m *mockNotifier) SendConfirmation(*models.Reservation) error {
	m.confirmations++
	return m.err
}

func (m *mockNotifier) SendCancellation(*models.Reservation) error {
	m.cancellations++
	return m.err
}

// --- Fixtures ---

var testNow = time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

func testRoom() *models.Room {
	return &models.Room{ID: "room-101", MaxOccupancy: 4, BaseRate: decimal.RequireFromString("100.00")}
}

func testRequest() models.BookingRequest {
	return models.BookingRequest{
		RoomID:   "room-101",
		GuestID:  "guest-1",
		CheckIn:  time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), // Thursday
		CheckOut: time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC),
		Guests:   2,
		Payment:  &models.PaymentInstructions{Method: "card", Currency: "USD"},
	}
}

type fixture struct {
	events   []string
	store    *mockStore
	catalog  *mockCatalog
	gate     *mockGate
	payments *mockPayments
	notify   *mockNotifier
}

func newFixture() *fixture {
	f := &fixture{}
	f.store = &mockStore{events: &f.events}
	f.catalog = &mockCatalog{
		getRoomFn: func(ctx context.Context, roomID string) (*models.Room, error) {
			return testRoom(), nil
		},
	}
	f.gate = &mockGate{events: &f.events}
	f.payments = &mockPayments{events: &f.events}
	f.notify = &mockNotifier{}
	return f
}

func (f *fixture) saga() BookingSaga {
	return NewBookingSaga(f.store, f.catalog, f.gate, f.payments, f.notify, clock.Fixed{T: testNow})
}

// --- CreateReservation ---

func TestCreateReservation_Confirmed(t *testing.T) {
	f := newFixture()

	result := f.saga().CreateReservation(context.Background(), testRequest())

	assert.Equal(t, OutcomeConfirmed, result.Code)
	if assert.NotNil(t, result.Reservation) {
		assert.Equal(t, models.StatusConfirmed, result.Reservation.Status)
		// Thu->Sat at 100/night: 200 base + 10 weekend surcharge + 6% tax.
		assert.Equal(t, "222.60", result.Reservation.TotalAmount.StringFixed(2))
	}
	if assert.NotNil(t, result.Payment) {
		assert.True(t, result.Payment.Success)
	}
	assert.Equal(t, 1, f.notify.confirmations)
	assert.Equal(t, []string{"lock", "save:pending", "capture", "save:confirmed"}, f.events)
}

func TestCreateReservation_ValidationFailedHasNoSideEffects(t *testing.T) {
	f := newFixture()
	req := testRequest()
	req.GuestID = ""
	req.Guests = 0

	result := f.saga().CreateReservation(context.Background(), req)

	assert.Equal(t, OutcomeValidationFailed, result.Code)
	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, f.events, "no lock, no persistence, no payment")
}

func TestCreateReservation_UnknownRoomIsValidationFailure(t *testing.T) {
	f := newFixture()
	f.catalog.getRoomFn = func(ctx context.Context, roomID string) (*models.Room, error) {
		return nil, rooms.ErrRoomNotFound
	}

	result := f.saga().CreateReservation(context.Background(), testRequest())

	assert.Equal(t, OutcomeValidationFailed, result.Code)
	if assert.Len(t, result.Errors, 1) {
		assert.Equal(t, "room_id", result.Errors[0].Field)
	}
	assert.Empty(t, f.events)
}

func TestCreateReservation_CatalogFaultIsInfrastructure(t *testing.T) {
	f := newFixture()
	f.catalog.getRoomFn = func(ctx context.Context, roomID string) (*models.Room, error) {
		return nil, errors.New("inventory down")
	}

	result := f.saga().CreateReservation(context.Background(), testRequest())

	assert.Equal(t, OutcomeInfrastructureFault, result.Code)
	assert.Empty(t, f.events)
}

func TestCreateReservation_RoomUnavailable(t *testing.T) {
	f := newFixture()
	f.gate.checkAndLockFn = func(ctx context.Context, roomID string, r models.DateRange) (bool, error) {
		return false, nil
	}

	result := f.saga().CreateReservation(context.Background(), testRequest())

	assert.Equal(t, OutcomeRoomUnavailable, result.Code)
	assert.Equal(t, "room-101", result.RoomID)
	if assert.NotNil(t, result.Range) {
		assert.Equal(t, 2, result.Range.Nights())
	}
	assert.Equal(t, []string{"lock"}, f.events, "an overlap is a negative result, not a fault: nothing persisted")
}

func TestCreateReservation_PersistenceFailedReleasesLock(t *testing.T) {
	f := newFixture()
	f.store.saveFn = func(ctx context.Context, res *models.Reservation) error {
		return errors.New("db down")
	}

	result := f.saga().CreateReservation(context.Background(), testRequest())

	assert.Equal(t, OutcomePersistenceFailed, result.Code)
	assert.Equal(t, []string{"lock", "save:pending", "unlock"}, f.events)
}

func TestCreateReservation_PaymentFailureMarksCancelledThenUnlocks(t *testing.T) {
	f := newFixture()
	f.payments.captureFn = func(ctx context.Context, req payment.CaptureRequest) payment.Outcome {
		return payment.Outcome{Success: false, Status: "declined", Message: "card declined"}
	}

	result := f.saga().CreateReservation(context.Background(), testRequest())

	assert.Equal(t, OutcomePaymentFailed, result.Code)
	if assert.NotNil(t, result.Reservation) {
		assert.Equal(t, models.StatusCancelled, result.Reservation.Status)
	}
	// Mark-then-unlock: the record must show cancelled before the room is
	// released, never the other way around.
	assert.Equal(t, []string{"lock", "save:pending", "capture", "save:cancelled", "unlock"}, f.events)
	assert.Equal(t, 0, f.notify.confirmations)
}

func TestCreateReservation_NeverConfirmedWithoutCapture(t *testing.T) {
	f := newFixture()
	f.payments.captureFn = func(ctx context.Context, req payment.CaptureRequest) payment.Outcome {
		return payment.Outcome{Success: false, Status: "gateway_error", Message: "timeout"}
	}

	result := f.saga().CreateReservation(context.Background(), testRequest())

	assert.NotEqual(t, OutcomeConfirmed, result.Code)
	for _, e := range f.events {
		assert.NotEqual(t, "save:confirmed", e)
	}
}

func TestCreateReservation_ConfirmPersistFailureRefundsAndCompensates(t *testing.T) {
	f := newFixture()
	saves := 0
	f.store.saveFn = func(ctx context.Context, res *models.Reservation) error {
		saves++
		if res.ID == "" {
			res.ID = "res-1"
		}
		if saves == 2 && res.Status == models.StatusConfirmed {
			return errors.New("db down")
		}
		return nil
	}

	result := f.saga().CreateReservation(context.Background(), testRequest())

	assert.Equal(t, OutcomePersistenceFailed, result.Code)
	assert.Equal(t, []string{"lock", "save:pending", "capture", "save:confirmed", "refund", "save:cancelled", "unlock"}, f.events)
}

func TestCreateReservation_NotificationFailureDoesNotUnconfirm(t *testing.T) {
	f := newFixture()
	f.notify.err = errors.New("smtp down")

	result := f.saga().CreateReservation(context.Background(), testRequest())

	assert.Equal(t, OutcomeConfirmed, result.Code)
	assert.Equal(t, models.StatusConfirmed, result.Reservation.Status)
}

func TestCreateReservation_GateFaultIsInfrastructure(t *testing.T) {
	f := newFixture()
	f.gate.checkAndLockFn = func(ctx context.Context, roomID string, r models.DateRange) (bool, error) {
		return false, errors.New("inventory down")
	}

	result := f.saga().CreateReservation(context.Background(), testRequest())

	assert.Equal(t, OutcomeInfrastructureFault, result.Code)
}

// --- CancelReservation ---

func confirmedReservation(checkIn time.Time) *models.Reservation {
	return &models.Reservation{
		ID:          "res-1",
		GuestID:     "guest-1",
		RoomID:      "room-101",
		CheckIn:     models.DateOnly(checkIn),
		CheckOut:    models.DateOnly(checkIn.AddDate(0, 0, 2)),
		Guests:      2,
		TotalAmount: decimal.RequireFromString("222.60"),
		Status:      models.StatusConfirmed,
		Payments: []models.Payment{
			{ID: "p-1", ReservationID: "res-1", ProviderTx: "pay-1", Amount: decimal.RequireFromString("222.60"), Currency: "USD", Kind: models.PaymentCapture},
		},
	}
}

func TestCancelReservation_NotFound(t *testing.T) {
	f := newFixture()
	f.store.findByIDFn = func(ctx context.Context, id string) (*models.Reservation, error) {
		return nil, gorm.ErrRecordNotFound
	}

	result := f.saga().CancelReservation(context.Background(), "missing")

	assert.Equal(t, OutcomeNotFound, result.Code)
}

func TestCancelReservation_FullRefundTenDaysOut(t *testing.T) {
	f := newFixture()
	var refunded decimal.Decimal
	var refundedTx string
	f.store.findByIDFn = func(ctx context.Context, id string) (*models.Reservation, error) {
		return confirmedReservation(testNow.AddDate(0, 0, 10)), nil
	}
	f.payments.refundFn = func(ctx context.Context, paymentID string, amount decimal.Decimal) payment.Outcome {
		refundedTx = paymentID
		refunded = amount
		return payment.Outcome{Success: true, Status: "refunded", PaymentID: paymentID}
	}

	result := f.saga().CancelReservation(context.Background(), "res-1")

	assert.Equal(t, OutcomeCancelled, result.Code)
	assert.Equal(t, models.StatusCancelled, result.Reservation.Status)
	assert.NotNil(t, result.Reservation.CancelledAt)
	assert.Equal(t, "222.60", refunded.StringFixed(2))
	assert.Equal(t, "pay-1", refundedTx, "refund targets the first capture of record")
	assert.Equal(t, 1, f.notify.cancellations)
	assert.Equal(t, []string{"save:cancelled", "unlock", "refund"}, f.events)
}

func TestCancelReservation_PartialRefundThreeDaysOut(t *testing.T) {
	f := newFixture()
	var refunded decimal.Decimal
	f.store.findByIDFn = func(ctx context.Context, id string) (*models.Reservation, error) {
		return confirmedReservation(testNow.AddDate(0, 0, 3)), nil
	}
	f.payments.refundFn = func(ctx context.Context, paymentID string, amount decimal.Decimal) payment.Outcome {
		refunded = amount
		return payment.Outcome{Success: true, Status: "refunded", PaymentID: paymentID}
	}

	result := f.saga().CancelReservation(context.Background(), "res-1")

	assert.Equal(t, OutcomeCancelled, result.Code)
	assert.Equal(t, "178.08", refunded.StringFixed(2), "80% of 222.60")
}

func TestCancelReservation_OneDayOutPartialRefund(t *testing.T) {
	f := newFixture()
	f.store.findByIDFn = func(ctx context.Context, id string) (*models.Reservation, error) {
		return confirmedReservation(testNow.AddDate(0, 0, 1)), nil
	}

	result := f.saga().CancelReservation(context.Background(), "res-1")

	// One day out is still cancellable at 80%. Same-day is rejected by the
	// future-check-in guard, covered below.
	assert.Equal(t, OutcomeCancelled, result.Code)
	assert.Equal(t, "178.08", result.RefundAmount.StringFixed(2))
}

func TestCancelReservation_CheckInTodayNotAllowed(t *testing.T) {
	f := newFixture()
	f.store.findByIDFn = func(ctx context.Context, id string) (*models.Reservation, error) {
		return confirmedReservation(testNow), nil
	}

	result := f.saga().CancelReservation(context.Background(), "res-1")

	assert.Equal(t, OutcomeCancellationNotAllowed, result.Code)
	assert.Empty(t, f.events, "no state change, no refund")
}

func TestCancelReservation_PendingNotAllowed(t *testing.T) {
	f := newFixture()
	f.store.findByIDFn = func(ctx context.Context, id string) (*models.Reservation, error) {
		res := confirmedReservation(testNow.AddDate(0, 0, 10))
		res.Status = models.StatusPending
		return res, nil
	}

	result := f.saga().CancelReservation(context.Background(), "res-1")

	assert.Equal(t, OutcomeCancellationNotAllowed, result.Code)
}

func TestCancelReservation_AlreadyCancelledNeverDoubleRefunds(t *testing.T) {
	f := newFixture()
	f.store.findByIDFn = func(ctx context.Context, id string) (*models.Reservation, error) {
		res := confirmedReservation(testNow.AddDate(0, 0, 10))
		res.Status = models.StatusCancelled
		return res, nil
	}

	result := f.saga().CancelReservation(context.Background(), "res-1")

	assert.Equal(t, OutcomeCancellationNotAllowed, result.Code)
	assert.NotContains(t, f.events, "refund")
}

func TestCancelReservation_RefundFailureDoesNotRevert(t *testing.T) {
	f := newFixture()
	f.store.findByIDFn = func(ctx context.Context, id string) (*models.Reservation, error) {
		return confirmedReservation(testNow.AddDate(0, 0, 10)), nil
	}
	f.payments.refundFn = func(ctx context.Context, paymentID string, amount decimal.Decimal) payment.Outcome {
		return payment.Outcome{Success: false, Status: "gateway_error", Message: "gateway down"}
	}

	result := f.saga().CancelReservation(context.Background(), "res-1")

	assert.Equal(t, OutcomeRefundFailed, result.Code)
	assert.Equal(t, models.StatusCancelled, result.Reservation.Status, "cancellation stands")
	assert.Equal(t, 1, f.notify.cancellations)
}

func TestCancelReservation_UnlockFailureIsBestEffort(t *testing.T) {
	f := newFixture()
	f.store.findByIDFn = func(ctx context.Context, id string) (*models.Reservation, error) {
		return confirmedReservation(testNow.AddDate(0, 0, 10)), nil
	}
	f.gate.unlockFn = func(ctx context.Context, roomID string, r models.DateRange) error {
		return errors.New("inventory glitch")
	}

	result := f.saga().CancelReservation(context.Background(), "res-1")

	assert.Equal(t, OutcomeCancelled, result.Code, "a committed cancellation is never undone by inventory")
}

// --- Lookups ---

func TestGetReservation_MapsNotFound(t *testing.T) {
	f := newFixture()
	f.store.findByIDFn = func(ctx context.Context, id string) (*models.Reservation, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := f.saga().GetReservation(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestListByGuest(t *testing.T) {
	f := newFixture()
	f.store.findByGuest = func(ctx context.Context, guestID string) ([]models.Reservation, error) {
		return []models.Reservation{{ID: "res-1", GuestID: guestID}}, nil
	}

	list, err := f.saga().ListByGuest(context.Background(), "guest-1")

	assert.NoError(t, err)
	assert.Len(t, list, 1)
}
