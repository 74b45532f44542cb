package events

import "time"

type OrderItem struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Discount  string `json:"discount"`
}

type OrderCreated struct {
	Type        string      `json:"type"`
	OrderID     uint        `json:"order_id"`
	ClientID    uint        `json:"client_id"`
	PaymentKind string      `json:"payment_kind"`
	Total       string      `json:"total"`
	Items       []OrderItem `json:"items"`
	Instant     time.Time   `json:"instant"`
}

type ClientRegistered struct {
	Type     string `json:"type"`
	ClientID uint   `json:"client_id"`
	Email    string `json:"email"`
}

type ProductChanged struct {
	Type        string `json:"type"`
	ProductID   uint   `json:"product_id"`
	Name        string `json:"name"`
	CategoryIDs []uint `json:"category_ids,omitempty"`
}
