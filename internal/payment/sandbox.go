package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SandboxGateway approves everything except methods prefixed "declined",
// which it rejects the way a real gateway declines a card. Used for local
// runs and demos; production wiring swaps in a real Gateway.
type SandboxGateway struct{}

func (SandboxGateway) Capture(ctx context.Context, req CaptureRequest) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if strings.HasPrefix(req.Method, "declined") {
		return Outcome{Success: false, Status: "declined", Message: "card declined"}, nil
	}
	if req.Amount.Sign() <= 0 {
		return Outcome{Success: false, Status: "invalid_amount", Message: "amount must be positive"}, nil
	}
	return Outcome{
		Success:   true,
		Status:    "captured",
		Message:   "payment captured",
		PaymentID: uuid.New().String(),
	}, nil
}

func (SandboxGateway) Refund(ctx context.Context, paymentID string, amount decimal.Decimal) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if paymentID == "" {
		return Outcome{Success: false, Status: "unknown_payment", Message: "no payment to refund"}, nil
	}
	return Outcome{
		Success:   true,
		Status:    "refunded",
		Message:   "refund issued",
		PaymentID: paymentID,
	}, nil
}
