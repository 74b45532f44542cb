package models

import (
	"slices"
	"strings"
)

type ClientType string

const (
	ClientIndividual ClientType = "INDIVIDUAL"
	ClientCompany    ClientType = "COMPANY"
)

func (t ClientType) Valid() bool {
	return t == ClientIndividual || t == ClientCompany
}

const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

type Client struct {
	ID           uint       `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name         string     `gorm:"size:120;not null"            json:"name"`
	Email        string     `gorm:"size:120;uniqueIndex;not null" json:"email"`
	TaxID        string     `gorm:"size:14"                      json:"tax_id"`
	Type         ClientType `gorm:"size:16;not null"             json:"type"`
	PasswordHash string     `gorm:"not null"                     json:"-"`
	Roles        string     `gorm:"size:64;not null"             json:"-"`
	Phones       []Phone    `gorm:"foreignKey:ClientID"          json:"phones"`
	Addresses    []Address  `gorm:"foreignKey:ClientID"          json:"addresses"`
}

type Phone struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ClientID uint   `gorm:"index;not null"           json:"-"`
	Number   string `gorm:"size:20;not null"         json:"number"`
}

type Address struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Street     string `gorm:"size:120;not null"        json:"street"`
	Number     string `gorm:"size:20;not null"         json:"number"`
	Complement string `gorm:"size:60"                  json:"complement"`
	District   string `gorm:"size:60"                  json:"district"`
	ZipCode    string `gorm:"size:20"                  json:"zip_code"`
	CityID     uint   `gorm:"index;not null"           json:"city_id"`
	City       *City  `json:"city,omitempty"`
	ClientID   uint   `gorm:"index;not null"           json:"client_id"`
}

// NewClient builds a client that carries the CLIENT role.
func NewClient(name, email, taxID string, typ ClientType, passwordHash string) *Client {
	return &Client{
		Name:         name,
		Email:        email,
		TaxID:        taxID,
		Type:         typ,
		PasswordHash: passwordHash,
		Roles:        RoleClient,
	}
}

func (c *Client) RoleList() []string {
	if c.Roles == "" {
		return nil
	}
	return strings.Split(c.Roles, ",")
}

func (c *Client) HasRole(role string) bool {
	return slices.Contains(c.RoleList(), role)
}

func (c *Client) AddRole(role string) {
	if c.HasRole(role) {
		return
	}
	c.Roles = strings.Join(append(c.RoleList(), role), ",")
}

func (c *Client) AddPhones(numbers ...string) {
	for _, n := range numbers {
		c.Phones = append(c.Phones, Phone{ClientID: c.ID, Number: n})
	}
}

func (c *Client) PhoneNumbers() []string {
	out := make([]string, 0, len(c.Phones))
	for _, p := range c.Phones {
		out = append(out, p.Number)
	}
	return out
}

// OwnsAddress reports whether addressID is one of the client's loaded addresses.
func (c *Client) OwnsAddress(addressID uint) bool {
	for _, a := range c.Addresses {
		if a.ID == addressID {
			return true
		}
	}
	return false
}
