package transport

import "github.com/shopspring/decimal"

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

type CreateProductRequest struct {
	Name       string          `json:"name"       validate:"required,max=120"`
	Price      decimal.Decimal `json:"price"`
	Categories []uint          `json:"categories" validate:"dive,gt=0"`
}

type AddressRequest struct {
	Street     string `json:"street"      validate:"required,max=120"`
	Number     string `json:"number"      validate:"required,max=20"`
	Complement string `json:"complement"  validate:"max=60"`
	District   string `json:"district"    validate:"max=60"`
	ZipCode    string `json:"zip_code"    validate:"required,max=20"`
	CityID     uint   `json:"city_id"     validate:"required"`
}

type ClientNewRequest struct {
	Name      string           `json:"name"      validate:"required,min=5,max=120"`
	Email     string           `json:"email"     validate:"required,email"`
	TaxID     string           `json:"tax_id"    validate:"required,numeric"`
	Type      string           `json:"type"      validate:"required,oneof=INDIVIDUAL COMPANY"`
	Password  string           `json:"password"  validate:"required,min=6"`
	Phones    []string         `json:"phones"    validate:"required,min=1,dive,required,max=20"`
	Addresses []AddressRequest `json:"addresses" validate:"required,min=1,dive"`
}

type ClientUpdateRequest struct {
	Name      string           `json:"name"      validate:"required,min=5,max=120"`
	Email     string           `json:"email"     validate:"omitempty,email"`
	TaxID     string           `json:"tax_id"    validate:"required,numeric"`
	Type      string           `json:"type"      validate:"required,oneof=INDIVIDUAL COMPANY"`
	Password  string           `json:"password"`
	Phones    []string         `json:"phones"    validate:"dive,required,max=20"`
	Addresses []AddressRequest `json:"addresses" validate:"dive"`
}

type PasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PaymentRequest struct {
	Kind         string `json:"kind"         validate:"required,oneof=card boleto"`
	Installments int    `json:"installments" validate:"omitempty,min=1,max=24"`
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,min=1"`
}

type CreateOrderRequest struct {
	ClientID          uint               `json:"client_id"           validate:"required"`
	DeliveryAddressID uint               `json:"delivery_address_id" validate:"required"`
	Payment           PaymentRequest     `json:"payment"`
	Items             []OrderItemRequest `json:"items"               validate:"required,min=1,dive"`
}
