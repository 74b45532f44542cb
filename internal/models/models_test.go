package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkCategoryProduct_BothSides(t *testing.T) {
	c := &Category{ID: 1, Name: "Informática"}
	p := &Product{ID: 3, Name: "Mouse", Price: decimal.NewFromInt(80)}

	LinkCategoryProduct(c, p)
	LinkCategoryProduct(c, p)

	require.Len(t, c.Products, 1)
	require.Len(t, p.Categories, 1)
	assert.Same(t, p, c.Products[0])
	assert.Same(t, c, p.Categories[0])

	UnlinkCategoryProduct(c, &Product{ID: 3})
	assert.Empty(t, c.Products)
	assert.Empty(t, p.Categories)
}

func TestUnlinkCategoryProduct_CopyOfCategory(t *testing.T) {
	c := &Category{ID: 2, Name: "Escritório"}
	p := &Product{ID: 2, Name: "Impressora", Price: decimal.NewFromInt(800)}
	other := &Category{ID: 1, Name: "Informática"}
	LinkCategoryProduct(c, p)
	LinkCategoryProduct(other, p)

	UnlinkCategoryProduct(&Category{ID: 2}, p)

	assert.Empty(t, c.Products)
	require.Len(t, p.Categories, 1)
	assert.Same(t, other, p.Categories[0])
	assert.Len(t, other.Products, 1)
}

func TestClientRoles(t *testing.T) {
	c := NewClient("Diogo", "diogorolins@gmail.com", "19293949585", ClientIndividual, "hash")
	assert.True(t, c.HasRole(RoleClient))
	assert.False(t, c.HasRole(RoleAdmin))

	c.AddRole(RoleAdmin)
	c.AddRole(RoleAdmin)
	assert.Equal(t, []string{RoleClient, RoleAdmin}, c.RoleList())
}

func TestClientOwnsAddress(t *testing.T) {
	c := &Client{ID: 1, Addresses: []Address{{ID: 4}, {ID: 9}}}
	assert.True(t, c.OwnsAddress(9))
	assert.False(t, c.OwnsAddress(5))
}

func TestOrderTotal(t *testing.T) {
	o := Order{Items: []OrderItem{
		{ProductID: 1, Quantity: 1, Price: decimal.NewFromInt(2000)},
		{ProductID: 3, Quantity: 2, Price: decimal.NewFromInt(80)},
		{ProductID: 2, Quantity: 1, Price: decimal.NewFromInt(800), Discount: decimal.NewFromInt(100)},
	}}

	assert.True(t, decimal.NewFromInt(160).Equal(o.Items[1].Subtotal()))
	assert.True(t, decimal.NewFromInt(2860).Equal(o.Total()), o.Total().String())
}

func TestPaymentConstructors(t *testing.T) {
	card := NewCardPayment(PaymentPaid, 6)
	assert.Equal(t, PaymentCard, card.Kind)
	require.NotNil(t, card.Installments)
	assert.Equal(t, 6, *card.Installments)

	due := time.Date(2017, 10, 20, 0, 0, 0, 0, time.UTC)
	boleto := NewBoletoPayment(PaymentWaiting, due, nil)
	assert.Equal(t, PaymentBoleto, boleto.Kind)
	assert.Nil(t, boleto.PaidAt)
	assert.True(t, due.Equal(*boleto.DueDate))
}
