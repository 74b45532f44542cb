// Package seed loads the demo dataset used by the dev profile.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

const demoPassword = "123456"

func at(day, month, year, hour, minute int) time.Time {
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
}

// Run writes the demo catalog, locations, clients and orders. It does nothing
// when categories already exist and reports whether data was written.
func Run(ctx context.Context, db *gorm.DB) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		logging.FromContext(ctx).Info("seed_skipped", "categories", n)
		return false, nil
	}

	pw, err := hash.HashPassword(demoPassword)
	if err != nil {
		return false, err
	}
	if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error { return load(tx, pw) }); err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	logging.FromContext(ctx).Info("seed_loaded")
	return true, nil
}

func load(tx *gorm.DB, pw string) error {
	cats := []models.Category{
		{Name: "Informática"}, {Name: "Escritório"}, {Name: "Cama"}, {Name: "Eletrônicos"},
		{Name: "Jardim"}, {Name: "Decoração"}, {Name: "Perfumaria"},
	}
	if err := tx.Omit("Products").Create(&cats).Error; err != nil {
		return err
	}

	named := []struct {
		name  string
		price int64
		cats  []int
	}{
		{"Computador", 2000, []int{0, 3}},
		{"Impressora", 800, []int{0, 1, 3}},
		{"Mouse", 80, []int{0, 3}},
		{"Mesa", 300, []int{1}},
		{"Toalha", 50, []int{2}},
		{"Colcha", 2000, []int{2}},
		{"TV", 1200, []int{3}},
		{"Roçadeira", 800, []int{4}},
		{"Abajour", 100, []int{5}},
		{"Pendente", 180, []int{5}},
		{"Shampoo", 90, []int{6}},
	}
	products := make([]models.Product, 0, 49)
	membership := make([][]int, 0, 49)
	for _, p := range named {
		products = append(products, models.Product{Name: p.name, Price: decimal.NewFromInt(p.price)})
		membership = append(membership, p.cats)
	}
	// Product 33 does not exist in the demo catalogue.
	for i := 12; i <= 50; i++ {
		if i == 33 {
			continue
		}
		products = append(products, models.Product{Name: fmt.Sprintf("Product %d", i), Price: decimal.NewFromInt(10)})
		membership = append(membership, []int{0})
	}
	if err := tx.Omit("Categories").Create(&products).Error; err != nil {
		return err
	}
	for i := range products {
		for _, ci := range membership[i] {
			err := tx.Model(&models.Category{ID: cats[ci].ID}).Omit("Products.*").
				Association("Products").Append(&models.Product{ID: products[i].ID})
			if err != nil {
				return err
			}
		}
	}

	mg := models.State{Name: "Minas Gerais"}
	sp := models.State{Name: "São Paulo"}
	if err := tx.Omit("Cities").Create(&[]*models.State{&mg, &sp}).Error; err != nil {
		return err
	}
	uberlandia := models.City{Name: "Uberlândia", StateID: mg.ID}
	saoPaulo := models.City{Name: "São Paulo", StateID: sp.ID}
	campinas := models.City{Name: "Campinas", StateID: sp.ID}
	if err := tx.Omit("State").Create(&[]*models.City{&uberlandia, &saoPaulo, &campinas}).Error; err != nil {
		return err
	}

	diogo := models.NewClient("Diogo", "diogorolins@gmail.com", "19293949585", models.ClientIndividual, pw)
	diogo.AddPhones("891898118", "27272772")
	diogo.Addresses = []models.Address{
		{Street: "Rua Haddock Lobo", Number: "300", Complement: "Apt 208", District: "Tijuca", ZipCode: "22938293", CityID: uberlandia.ID},
		{Street: "Avenida Matos", Number: "105", Complement: "Sala 803", District: "Centro", ZipCode: "32323939", CityID: saoPaulo.ID},
	}
	admin := models.NewClient("Diogo Rocha", "diogorolins@hotmail.com", "09475414703", models.ClientIndividual, pw)
	admin.AddRole(models.RoleAdmin)
	admin.AddPhones("2313131", "32131313")
	admin.Addresses = []models.Address{
		{Street: "Avenida Dois", Number: "2000", District: "Centro", ZipCode: "323213123", CityID: saoPaulo.ID},
	}
	for _, cli := range []*models.Client{diogo, admin} {
		if err := tx.Create(cli).Error; err != nil {
			return err
		}
	}

	computador, impressora, mouse := products[0], products[1], products[2]
	orders := []*models.Order{
		{
			Instant:           at(30, 9, 2017, 10, 32),
			ClientID:          diogo.ID,
			DeliveryAddressID: diogo.Addresses[0].ID,
			Payment:           models.NewCardPayment(models.PaymentPaid, 6),
			Items: []models.OrderItem{
				{ProductID: computador.ID, Quantity: 1, Price: computador.Price, Discount: decimal.Zero},
				{ProductID: mouse.ID, Quantity: 2, Price: mouse.Price, Discount: decimal.Zero},
			},
		},
		{
			Instant:           at(10, 10, 2017, 19, 35),
			ClientID:          diogo.ID,
			DeliveryAddressID: diogo.Addresses[1].ID,
			Payment:           models.NewBoletoPayment(models.PaymentWaiting, at(20, 10, 2017, 0, 0), nil),
			Items: []models.OrderItem{
				{ProductID: impressora.ID, Quantity: 1, Price: impressora.Price, Discount: decimal.NewFromInt(100)},
			},
		},
	}
	for _, o := range orders {
		if err := tx.Omit("Payment", "Items", "Client", "DeliveryAddress").Create(o).Error; err != nil {
			return err
		}
		o.Payment.OrderID = o.ID
		if err := tx.Create(o.Payment).Error; err != nil {
			return err
		}
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
		}
		if err := tx.Omit("Product").Create(&o.Items).Error; err != nil {
			return err
		}
	}
	return nil
}
