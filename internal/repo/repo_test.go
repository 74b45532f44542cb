package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/testutil"
	"github.com/Skotchmaster/storefront/internal/util"
	jwthelp "github.com/Skotchmaster/storefront/pkg/jwt"
)

func newRepo(t *testing.T) (*GormRepo, *testutil.Fixture) {
	t.Helper()
	db := testutil.NewDB(t)
	return &GormRepo{DB: db}, testutil.Seed(t, db, "hash")
}

func placeOrder(t *testing.T, r *GormRepo, f *testutil.Fixture, at time.Time) *models.Order {
	t.Helper()
	o := &models.Order{
		Instant:           at,
		ClientID:          f.Client.ID,
		DeliveryAddressID: f.Client.Addresses[0].ID,
		Payment:           models.NewCardPayment(models.PaymentWaiting, 2),
		Items: []models.OrderItem{
			{ProductID: f.Products[0].ID, Quantity: 1, Price: f.Products[0].Price},
		},
	}
	_, err := r.CreateOrder(context.Background(), o)
	require.NoError(t, err)
	return o
}

func TestLinkProduct_PersistsAndUpdatesBothSides(t *testing.T) {
	r, f := newRepo(t)
	ctx := context.Background()

	other, err := r.CreateCategory(ctx, &models.Category{Name: "Escritório"})
	require.NoError(t, err)

	cat, prod, err := r.LinkProduct(ctx, other.ID, f.Products[1].ID)
	require.NoError(t, err)
	require.Len(t, cat.Products, 1)
	assert.Len(t, prod.Categories, 2)

	stored, err := r.GetCategory(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, stored.Products, 1)
	assert.Equal(t, f.Products[1].ID, stored.Products[0].ID)

	_, _, err = r.UnlinkProduct(ctx, other.ID, f.Products[1].ID)
	require.NoError(t, err)
	stored, err = r.GetCategory(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Products)
}

func TestDeleteCategory_WithProducts(t *testing.T) {
	r, f := newRepo(t)
	ctx := context.Background()

	assert.ErrorIs(t, r.DeleteCategory(ctx, f.Category.ID), ErrInUse)

	empty, err := r.CreateCategory(ctx, &models.Category{Name: "Jardim"})
	require.NoError(t, err)
	require.NoError(t, r.DeleteCategory(ctx, empty.ID))
	assert.True(t, IsNotFound(r.DeleteCategory(ctx, empty.ID)))
}

func TestDeleteCategory_CountFailureKeepsRow(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	empty, err := r.CreateCategory(ctx, &models.Category{Name: "Jardim"})
	require.NoError(t, err)

	countErr := errors.New("count failed")
	require.NoError(t, r.DB.Callback().Query().Before("gorm:query").Register("test:fail_products", func(db *gorm.DB) {
		if db.Statement.Table == "products" {
			_ = db.AddError(countErr)
		}
	}))

	assert.ErrorIs(t, r.DeleteCategory(ctx, empty.ID), countErr)
	require.NoError(t, r.DB.Callback().Query().Remove("test:fail_products"))

	_, err = r.GetCategory(ctx, empty.ID)
	require.NoError(t, err)
}

func TestSearchProducts_NameAndCategories(t *testing.T) {
	r, f := newRepo(t)
	ctx := context.Background()

	outside, err := r.CreateProduct(ctx, &models.Product{Name: "Mouse Pad", Price: decimal.NewFromInt(10)}, nil)
	require.NoError(t, err)

	page, err := r.SearchProducts(ctx, "mou", []uint{f.Category.ID}, util.PageRequest{Size: 10, Direction: "ASC"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Mouse", page.Items[0].Name)

	page, err = r.SearchProducts(ctx, "mou", nil, util.PageRequest{Size: 10, Direction: "ASC"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, outside.ID, page.Items[1].ID)

	_, err = r.SearchProducts(ctx, "", nil, util.PageRequest{OrderBy: "password"})
	assert.ErrorIs(t, err, ErrInvalidSort)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	r, _ := newRepo(t)
	_, err := r.CreateProduct(context.Background(), &models.Product{Name: "TV", Price: decimal.NewFromInt(1200)}, []uint{999})
	assert.True(t, IsNotFound(err))
}

func TestUpdateClient_ReplacesAddresses(t *testing.T) {
	r, f := newRepo(t)
	ctx := context.Background()
	oldAddress := f.Client.Addresses[0].ID

	upd := &models.Client{
		ID:     f.Client.ID,
		Name:   "Maria Silva",
		TaxID:  f.Client.TaxID,
		Type:   models.ClientIndividual,
		Phones: []models.Phone{{Number: "99990000"}},
		Addresses: []models.Address{
			{Street: "Rua Nova", Number: "10", CityID: f.City.ID},
		},
	}
	got, err := r.UpdateClient(ctx, upd)
	require.NoError(t, err)

	assert.Equal(t, "Maria Silva", got.Name)
	assert.Equal(t, "maria@example.com", got.Email)
	assert.Equal(t, []string{"99990000"}, got.PhoneNumbers())
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, "Rua Nova", got.Addresses[0].Street)

	var n int64
	require.NoError(t, r.DB.Model(&models.Address{}).Where("id = ?", oldAddress).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDeleteClient_WithAndWithoutOrders(t *testing.T) {
	r, f := newRepo(t)
	ctx := context.Background()
	placeOrder(t, r, f, time.Now())

	assert.ErrorIs(t, r.DeleteClient(ctx, f.Client.ID), ErrInUse)

	require.NoError(t, r.DeleteClient(ctx, f.Admin.ID))
	_, err := r.GetClient(ctx, f.Admin.ID)
	assert.True(t, IsNotFound(err))
}

func TestPageOrders_SortedAndScoped(t *testing.T) {
	r, f := newRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		placeOrder(t, r, f, base.Add(time.Duration(i)*time.Hour))
	}

	page, err := r.PageOrders(ctx, &f.Client.ID, util.PageRequest{Size: 2, OrderBy: "instant", Direction: "DESC"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Items[0].Instant.After(page.Items[1].Instant))
	require.NotNil(t, page.Items[0].Payment)
	require.Len(t, page.Items[0].Items, 1)
	assert.Equal(t, "Computador", page.Items[0].Items[0].Product.Name)

	page, err = r.PageOrders(ctx, &f.Admin.ID, util.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestRotateRefreshToken(t *testing.T) {
	r, f := newRepo(t)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour).Unix()

	first := &models.RefreshToken{TokenHash: jwthelp.Sha256Hex("t1"), ClientID: f.Client.ID, JTI: "j1", ExpiresAt: exp}
	require.NoError(t, r.SaveRefreshToken(ctx, first))

	next := &models.RefreshToken{TokenHash: jwthelp.Sha256Hex("t2"), ClientID: f.Client.ID, JTI: "j2", ExpiresAt: exp}
	require.NoError(t, r.RotateRefreshToken(ctx, "j1", next))

	again := &models.RefreshToken{TokenHash: jwthelp.Sha256Hex("t3"), ClientID: f.Client.ID, JTI: "j3", ExpiresAt: exp}
	assert.ErrorIs(t, r.RotateRefreshToken(ctx, "j1", again), ErrTokenRevoked)

	require.NoError(t, r.RevokeRefreshToken(ctx, "t2"))
	assert.ErrorIs(t, r.RotateRefreshToken(ctx, "j2", again), ErrTokenRevoked)
}

func TestRotateRefreshToken_RevokedAfterLookup(t *testing.T) {
	r, f := newRepo(t)
	ctx := context.Background()
	exp := time.Now().Add(time.Hour).Unix()

	first := &models.RefreshToken{TokenHash: jwthelp.Sha256Hex("t1"), ClientID: f.Client.ID, JTI: "j1", ExpiresAt: exp}
	require.NoError(t, r.SaveRefreshToken(ctx, first))

	// Another rotation commits between this one's lookup and its update.
	fired := false
	require.NoError(t, r.DB.Callback().Query().After("gorm:query").Register("test:concurrent_rotation", func(db *gorm.DB) {
		if fired || db.Statement.Table != "refresh_tokens" {
			return
		}
		fired = true
		db.Session(&gorm.Session{NewDB: true}).Exec("UPDATE refresh_tokens SET revoked = ? WHERE jti = ?", true, "j1")
	}))

	next := &models.RefreshToken{TokenHash: jwthelp.Sha256Hex("t2"), ClientID: f.Client.ID, JTI: "j2", ExpiresAt: exp}
	require.ErrorIs(t, r.RotateRefreshToken(ctx, "j1", next), ErrTokenRevoked)
	require.True(t, fired)

	var n int64
	require.NoError(t, r.DB.Model(&models.RefreshToken{}).Where("jti = ?", "j2").Count(&n).Error)
	assert.Zero(t, n)
}
