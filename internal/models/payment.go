package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStatus is the normalized gateway transaction status. It mirrors
// OrderStatus with the gateway's own vocabulary.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentSuccess  PaymentStatus = "SUCCESS"
	PaymentExpired  PaymentStatus = "EXPIRED"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// PaymentTransaction is one-to-one with an Order. Created PENDING at intake;
// the snap token fields are filled by session initiation and the rest is
// overwritten by webhook notifications, last write wins.
type PaymentTransaction struct {
	ID                string        `gorm:"primaryKey;size:36" json:"id"`
	OrderID           string        `gorm:"size:36;uniqueIndex;not null" json:"orderId"`
	Provider          string        `gorm:"size:30;not null;default:'MIDTRANS'" json:"provider"`
	GatewayOrderID    string        `gorm:"size:32;index;not null" json:"gatewayOrderId"` // the order code sent to the gateway
	TransactionID     string        `gorm:"size:64" json:"transactionId"`
	PaymentType       string        `gorm:"size:50" json:"paymentType"`
	TransactionStatus string        `gorm:"size:30" json:"transactionStatus"` // raw gateway string
	FraudStatus       string        `gorm:"size:30" json:"fraudStatus"`
	Status            PaymentStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	GrossAmount       int64         `gorm:"not null" json:"grossAmount"`
	Currency          string        `gorm:"size:10;not null;default:'IDR'" json:"currency"`
	SnapToken         string        `gorm:"size:100" json:"snapToken"`
	RedirectURL       string        `gorm:"size:500" json:"redirectUrl"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

func (p *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
