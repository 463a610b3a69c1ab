package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staywell/reservation-service/internal/dto"
	"github.com/staywell/reservation-service/internal/models"
	"github.com/staywell/reservation-service/internal/service"
)

type ReservationHandler struct {
	saga service.BookingSaga
}

func NewReservationHandler(saga service.BookingSaga) *ReservationHandler {
	return &ReservationHandler{saga: saga}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/reservations", h.CreateReservation)
	api.GET("/reservations/:id", h.GetReservation)
	api.DELETE("/reservations/:id", h.CancelReservation)
	api.GET("/guests/:id/reservations", h.ListGuestReservations)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking := models.BookingRequest{
		RoomID:         req.RoomID,
		GuestID:        req.GuestID,
		Guests:         req.Guests,
		SpecialRequest: req.SpecialRequest,
	}
	if req.Payment != nil {
		booking.Payment = &models.PaymentInstructions{Method: req.Payment.Method, Currency: req.Payment.Currency}
	}
	// Unparseable dates stay zero and fall out of the saga's validation as
	// field errors, matching absent dates.
	if t, err := time.Parse("2006-01-02", req.CheckIn); err == nil {
		booking.CheckIn = t
	}
	if t, err := time.Parse("2006-01-02", req.CheckOut); err == nil {
		booking.CheckOut = t
	}

	result := h.saga.CreateReservation(c.Request().Context(), booking)

	switch result.Code {
	case service.OutcomeConfirmed:
		return c.JSON(http.StatusCreated, dto.CreateReservationResponse{
			Reservation: dto.ToReservationResponse(result.Reservation),
			Payment:     result.Payment,
		})
	case service.OutcomeValidationFailed:
		return c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Message: result.Message, Errors: result.Errors})
	case service.OutcomeRoomUnavailable:
		return echo.NewHTTPError(http.StatusConflict, result.Message)
	case service.OutcomePaymentFailed:
		return echo.NewHTTPError(http.StatusPaymentRequired, result.Message)
	case service.OutcomePersistenceFailed, service.OutcomeInfrastructureFault:
		return echo.NewHTTPError(http.StatusServiceUnavailable, result.Message)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, result.Message)
	}
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	result := h.saga.CancelReservation(c.Request().Context(), id)

	switch result.Code {
	case service.OutcomeCancelled, service.OutcomeRefundFailed:
		resp := dto.CancelReservationResponse{
			Reservation:  dto.ToReservationResponse(result.Reservation),
			RefundAmount: result.RefundAmount.StringFixed(2),
			Refund:       result.Refund,
		}
		if result.Code == service.OutcomeRefundFailed {
			resp.Warning = "reservation cancelled but refund failed: " + result.Message
		}
		return c.JSON(http.StatusOK, resp)
	case service.OutcomeNotFound:
		return echo.NewHTTPError(http.StatusNotFound, result.Message)
	case service.OutcomeCancellationNotAllowed:
		return echo.NewHTTPError(http.StatusConflict, result.Message)
	case service.OutcomePersistenceFailed, service.OutcomeInfrastructureFault:
		return echo.NewHTTPError(http.StatusServiceUnavailable, result.Message)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, result.Message)
	}
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	res, err := h.saga.GetReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "reservation not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

func (h *ReservationHandler) ListGuestReservations(c echo.Context) error {
	list, err := h.saga.ListByGuest(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ReservationResponse, len(list))
	for i := range list {
		resp[i] = dto.ToReservationResponse(&list[i])
	}
	return c.JSON(http.StatusOK, resp)
}
