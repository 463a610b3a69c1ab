package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentKind string

const (
	PaymentCapture PaymentKind = "capture"
	PaymentRefund  PaymentKind = "refund"
)

type Payment struct {
	ID            string          `gorm:"primaryKey;type:uuid" json:"id"`
	ReservationID string          `gorm:"index;not null" json:"reservation_id"`
	ProviderTx    string          `gorm:"size:200" json:"provider_tx,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	Currency      string          `gorm:"size:3" json:"currency"`
	Kind          PaymentKind     `gorm:"type:varchar(20);not null" json:"kind"`
	Status        string          `gorm:"size:50" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}
