package models

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"        json:"id"`
	TokenHash string `gorm:"uniqueIndex;not null" json:"-"`
	ClientID  uint   `gorm:"index;not null"    json:"client_id"`
	JTI       string `gorm:"uniqueIndex;not null" json:"jti"`
	ExpiresAt int64  `gorm:"not null"          json:"expires_at"`
	Revoked   bool   `gorm:"default:false"     json:"revoked"`
}

// All lists every persisted model for AutoMigrate.
func All() []any {
	return []any{
		&Category{}, &Product{},
		&State{}, &City{},
		&Client{}, &Phone{}, &Address{},
		&Order{}, &Payment{}, &OrderItem{},
		&RefreshToken{},
	}
}
