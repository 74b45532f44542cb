package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentWaiting  PaymentStatus = "WAITING_PAYMENT"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentCanceled PaymentStatus = "CANCELED"
)

type PaymentKind string

const (
	PaymentCard   PaymentKind = "card"
	PaymentBoleto PaymentKind = "boleto"
)

const BoletoDueDays = 7

type Order struct {
	ID                uint        `gorm:"primaryKey;autoIncrement"              json:"id"`
	Instant           time.Time   `gorm:"not null;index"                        json:"instant"`
	ClientID          uint        `gorm:"index;not null"                        json:"client_id"`
	Client            *Client     `json:"client,omitempty"`
	DeliveryAddressID uint        `gorm:"not null"                              json:"delivery_address_id"`
	DeliveryAddress   *Address    `json:"delivery_address,omitempty"`
	Payment           *Payment    `gorm:"foreignKey:OrderID"                    json:"payment,omitempty"`
	Items             []OrderItem `gorm:"foreignKey:OrderID"                    json:"items"`
}

// Payment is stored in one table; Kind selects which of the optional fields apply.
type Payment struct {
	OrderID      uint          `gorm:"primaryKey;autoIncrement:false" json:"-"`
	Status       PaymentStatus `gorm:"size:20;not null"               json:"status"`
	Kind         PaymentKind   `gorm:"size:10;not null"               json:"kind"`
	Installments *int          `json:"installments,omitempty"`
	DueDate      *time.Time    `json:"due_date,omitempty"`
	PaidAt       *time.Time    `json:"paid_at,omitempty"`
}

type OrderItem struct {
	OrderID   uint            `gorm:"primaryKey;autoIncrement:false"       json:"-"`
	ProductID uint            `gorm:"primaryKey;autoIncrement:false"       json:"product_id"`
	Product   *Product        `json:"product,omitempty"`
	Discount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	Quantity  int             `gorm:"not null;check:quantity > 0"          json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"          json:"price"`
}

func NewCardPayment(status PaymentStatus, installments int) *Payment {
	return &Payment{Status: status, Kind: PaymentCard, Installments: &installments}
}

func NewBoletoPayment(status PaymentStatus, dueDate time.Time, paidAt *time.Time) *Payment {
	return &Payment{Status: status, Kind: PaymentBoleto, DueDate: &dueDate, PaidAt: paidAt}
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Sub(i.Discount).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (o *Order) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}
