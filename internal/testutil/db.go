// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/storefront/internal/models"
)

// NewDB returns a migrated in-memory database. A single connection keeps every
// query on the same memory store.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

type Fixture struct {
	State    models.State
	City     models.City
	Category models.Category
	Products []models.Product
	Client   models.Client
	Admin    models.Client
}

// Seed writes a small catalog, one city and two clients (the second one ADMIN).
// Clients' password is "123456".
func Seed(t *testing.T, db *gorm.DB, passwordHash string) *Fixture {
	t.Helper()

	f := &Fixture{}
	f.State = models.State{Name: "Minas Gerais"}
	must(t, db.Create(&f.State).Error)
	f.City = models.City{Name: "Uberlândia", StateID: f.State.ID}
	must(t, db.Create(&f.City).Error)

	f.Category = models.Category{Name: "Informática"}
	must(t, db.Create(&f.Category).Error)
	f.Products = []models.Product{
		{Name: "Computador", Price: decimal.NewFromInt(2000)},
		{Name: "Impressora", Price: decimal.NewFromInt(800)},
		{Name: "Mouse", Price: decimal.NewFromInt(80)},
	}
	must(t, db.Omit("Categories").Create(&f.Products).Error)
	for i := range f.Products {
		must(t, db.Model(&models.Category{ID: f.Category.ID}).Omit("Products.*").
			Association("Products").Append(&models.Product{ID: f.Products[i].ID}))
	}

	f.Client = *models.NewClient("Maria", "maria@example.com", "36378912377", models.ClientIndividual, passwordHash)
	f.Client.AddPhones("27363323")
	f.Client.Addresses = []models.Address{{Street: "Rua Flores", Number: "300", District: "Jardim", ZipCode: "38220834", CityID: f.City.ID}}
	must(t, db.Create(&f.Client).Error)

	f.Admin = *models.NewClient("Ana", "ana@example.com", "31628382740", models.ClientIndividual, passwordHash)
	f.Admin.AddRole(models.RoleAdmin)
	f.Admin.Addresses = []models.Address{{Street: "Avenida Dois", Number: "2000", District: "Centro", ZipCode: "3232", CityID: f.City.ID}}
	must(t, db.Create(&f.Admin).Error)

	return f
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}
