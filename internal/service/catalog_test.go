package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/util"
)

func TestCategoryInsertUpdateDelete(t *testing.T) {
	e := newEnv(t)
	svc := &CategoryService{Repo: e.Repo, Events: e.Pub}
	ctx := context.Background()

	_, err := svc.Insert(ctx, "  ")
	assert.ErrorIs(t, err, ErrValidation)

	cat, err := svc.Insert(ctx, "Jardinagem")
	require.NoError(t, err)

	cat, err = svc.Update(ctx, cat.ID, "Jardim")
	require.NoError(t, err)
	assert.Equal(t, "Jardim", cat.Name)

	_, err = svc.Update(ctx, 999, "Nada")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, cat.ID))

	err = svc.Delete(ctx, e.F.Category.ID)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestCategoryLinkProduct(t *testing.T) {
	e := newEnv(t)
	svc := &CategoryService{Repo: e.Repo, Events: e.Pub}
	ctx := context.Background()

	cat, err := svc.Insert(ctx, "Escritório")
	require.NoError(t, err)

	got, err := svc.LinkProduct(ctx, cat.ID, e.F.Products[1].ID)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, e.F.Products[1].ID, got.Products[0].ID)

	require.Len(t, e.Pub.events, 1)
	ev := e.Pub.events[0].Event.(events.ProductChanged)
	assert.Equal(t, "product_linked", ev.Type)
	assert.ElementsMatch(t, []uint{e.F.Category.ID, cat.ID}, ev.CategoryIDs)

	got, err = svc.UnlinkProduct(ctx, cat.ID, e.F.Products[1].ID)
	require.NoError(t, err)
	assert.Empty(t, got.Products)

	_, err = svc.LinkProduct(ctx, cat.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductInsert_IndexesAndPublishes(t *testing.T) {
	e := newEnv(t)
	idx := &recordingIndex{}
	svc := &ProductService{Repo: e.Repo, Index: idx, Events: e.Pub}
	ctx := context.Background()

	prod, err := svc.Insert(ctx, &models.Product{Name: "Teclado", Price: decimal.RequireFromString("99.90")}, []uint{e.F.Category.ID})
	require.NoError(t, err)
	require.Len(t, prod.Categories, 1)

	require.Len(t, idx.docs, 1)
	assert.True(t, mustDecimal(idx.docs[0].Price).Equal(decimal.RequireFromString("99.90")))
	require.Len(t, e.Pub.events, 1)
	assert.Equal(t, events.TopicProducts, e.Pub.events[0].Topic)

	_, err = svc.Insert(ctx, &models.Product{Name: "Grátis", Price: decimal.NewFromInt(-1)}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Insert(ctx, &models.Product{Name: "Perdido", Price: decimal.NewFromInt(1)}, []uint{999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductSearch(t *testing.T) {
	e := newEnv(t)
	svc := &ProductService{Repo: e.Repo, Index: search.Nop{}}
	ctx := context.Background()

	page, err := svc.Search(ctx, "o", []uint{e.F.Category.ID}, util.PageRequest{OrderBy: "name", Direction: "ASC"})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Computador", page.Items[0].Name)
	assert.Equal(t, "Mouse", page.Items[2].Name)

	page, err = svc.Search(ctx, "MOU", nil, util.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	_, err = svc.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductSearchIndex_FallsBackWithoutIndex(t *testing.T) {
	e := newEnv(t)
	svc := &ProductService{Repo: e.Repo, Index: search.Nop{}}

	page, err := svc.SearchIndex(context.Background(), "mouse", 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Mouse", page.Items[0].Name)

	_, err = svc.SearchIndex(context.Background(), "", 0, 10)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProductReindex(t *testing.T) {
	e := newEnv(t)
	idx := &recordingIndex{}
	svc := &ProductService{Repo: e.Repo, Index: idx}

	n, err := svc.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, idx.docs, 3)
	assert.Equal(t, []uint{e.F.Category.ID}, idx.docs[0].CategoryIDs)

	page, err := svc.SearchIndex(context.Background(), "anything", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
}

func TestLocationCities(t *testing.T) {
	e := newEnv(t)
	svc := &LocationService{Repo: e.Repo}

	states, err := svc.States(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 1)

	cities, err := svc.Cities(context.Background(), e.F.State.ID)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Uberlândia", cities[0].Name)

	_, err = svc.Cities(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
