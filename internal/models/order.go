package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the internal lifecycle of an Order. PENDING is the only
// non-terminal state; the webhook handler moves an order to exactly one of
// the terminal states and never back.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderExpired   OrderStatus = "EXPIRED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID            string      `gorm:"primaryKey;size:36" json:"id"`
	OrderCode     string      `gorm:"size:32;uniqueIndex;not null" json:"orderCode"`
	UserID        *string     `gorm:"size:36;index" json:"userId,omitempty"`
	CustomerName  *string     `gorm:"size:100" json:"customerName,omitempty"`
	CustomerEmail *string     `gorm:"size:255" json:"customerEmail,omitempty"`
	CustomerPhone *string     `gorm:"size:30" json:"customerPhone,omitempty"`
	TotalAmount   int64       `gorm:"not null" json:"totalAmount"`
	Currency      string      `gorm:"size:10;not null;default:'IDR'" json:"currency"`
	Status        OrderStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`

	Items   []OrderItem         `gorm:"foreignKey:OrderID" json:"items"`
	Payment *PaymentTransaction `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is a point-in-time snapshot of a catalog product. Immutable after
// creation; price and name are copied so catalog edits never rewrite history.
type OrderItem struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OrderID   string    `gorm:"size:36;index;not null" json:"orderId"`
	ProductID string    `gorm:"size:36;not null" json:"productId"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Price     int64     `gorm:"not null" json:"price"`
	Qty       int       `gorm:"not null" json:"qty"`
	Subtotal  int64     `gorm:"not null" json:"subtotal"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
