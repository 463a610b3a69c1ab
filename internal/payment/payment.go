package payment

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// Outcome is the typed result of a gateway call. The saga only ever looks at
// Success, the stable status string and the message; gateway-specific codes
// stay inside the gateway.
type Outcome struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	PaymentID string `json:"payment_id,omitempty"`
}

// CaptureRequest is what the gateway needs to charge a booking.
type CaptureRequest struct {
	Amount   decimal.Decimal
	Currency string
	Method   string
	OrderID  string
}

// Gateway is the external payment capability.
type Gateway interface {
	Capture(ctx context.Context, req CaptureRequest) (Outcome, error)
	Refund(ctx context.Context, paymentID string, amount decimal.Decimal) (Outcome, error)
}

// Service is what the saga consumes: capture/refund with every transport
// error already translated into a failed Outcome.
type Service interface {
	Capture(ctx context.Context, req CaptureRequest) Outcome
	Refund(ctx context.Context, paymentID string, amount decimal.Decimal) Outcome
}

type orchestrator struct {
	gw      Gateway
	timeout time.Duration
}

// NewOrchestrator wraps a gateway with a bounded per-call timeout. A gateway
// that errors or does not return in time yields a failed Outcome, never a
// panic or a hung request.
func NewOrchestrator(gw Gateway, timeout time.Duration) Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &orchestrator{gw: gw, timeout: timeout}
}

func (o *orchestrator) Capture(ctx context.Context, req CaptureRequest) Outcome {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	out, err := o.gw.Capture(ctx, req)
	if err != nil {
		log.Printf("[Payment] capture for order %s failed: %v", req.OrderID, err)
		return Outcome{Success: false, Status: "gateway_error", Message: err.Error()}
	}
	return out
}

func (o *orchestrator) Refund(ctx context.Context, paymentID string, amount decimal.Decimal) Outcome {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	out, err := o.gw.Refund(ctx, paymentID, amount)
	if err != nil {
		log.Printf("[Payment] refund of payment %s failed: %v", paymentID, err)
		return Outcome{Success: false, Status: "gateway_error", Message: err.Error()}
	}
	return out
}
