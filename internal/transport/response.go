package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CategoryDetailResponse struct {
	ID       uint              `json:"id"`
	Name     string            `json:"name"`
	Products []ProductResponse `json:"products"`
}

type ProductResponse struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type ProductDetailResponse struct {
	ID         uint               `json:"id"`
	Name       string             `json:"name"`
	Price      decimal.Decimal    `json:"price"`
	Categories []CategoryResponse `json:"categories"`
}

type StateResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CityResponse struct {
	ID    uint           `json:"id"`
	Name  string         `json:"name"`
	State *StateResponse `json:"state,omitempty"`
}

type AddressResponse struct {
	ID         uint          `json:"id"`
	Street     string        `json:"street"`
	Number     string        `json:"number"`
	Complement string        `json:"complement"`
	District   string        `json:"district"`
	ZipCode    string        `json:"zip_code"`
	City       *CityResponse `json:"city,omitempty"`
}

type ClientResponse struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	TaxID     string            `json:"tax_id"`
	Type      models.ClientType `json:"type"`
	Roles     []string          `json:"roles"`
	Phones    []string          `json:"phones"`
	Addresses []AddressResponse `json:"addresses,omitempty"`
}

type OrderClientResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PaymentResponse struct {
	Kind         models.PaymentKind   `json:"kind"`
	Status       models.PaymentStatus `json:"status"`
	Installments *int                 `json:"installments,omitempty"`
	DueDate      *time.Time           `json:"due_date,omitempty"`
	PaidAt       *time.Time           `json:"paid_at,omitempty"`
}

type OrderItemResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID              uint                 `json:"id"`
	Instant         time.Time            `json:"instant"`
	Client          *OrderClientResponse `json:"client,omitempty"`
	DeliveryAddress *AddressResponse     `json:"delivery_address,omitempty"`
	Payment         *PaymentResponse     `json:"payment,omitempty"`
	Items           []OrderItemResponse  `json:"items"`
	Total           decimal.Decimal      `json:"total"`
}

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	AccessExp    time.Time `json:"access_exp"`
	RefreshExp   time.Time `json:"refresh_exp"`
}

type PageResponse[T any] struct {
	Data []T            `json:"data"`
	Meta map[string]any `json:"meta"`
}
