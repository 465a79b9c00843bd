package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wholesale-catalog/internal/models"
)

type fakeFinder[PT any] map[string]PT

func (f fakeFinder[PT]) FindByID(_ context.Context, id string) (PT, error) {
	if v, ok := f[id]; ok {
		return v, nil
	}
	var zero PT
	return zero, ErrNotFound
}

func testPopulator() *Populator {
	return &Populator{
		Stores:     fakeFinder[*models.Store]{"s-1": {Name: "Main Store"}},
		Categories: fakeFinder[*models.Category]{"c-1": {Name: "Beverages"}},
		Brands:     fakeFinder[*models.Brand]{"b-1": {Name: "Acme"}},
		Warehouses: fakeFinder[*models.Warehouse]{"w-1": {Name: "North DC"}},
		Files:      fakeFinder[*models.File]{"f-1": {URL: "/static/a.png"}},
	}
}

func TestPopulator_ResolvesAllReferences(t *testing.T) {
	prod := &models.Product{
		SKU:        "WS-001",
		StoreID:    "s-1",
		CategoryID: "c-1",
		BrandID:    "b-1",
		WarehouseAvailability: []models.WarehouseStock{
			{WarehouseID: "w-1", Stock: 30},
		},
		ImageIDs: []string{"f-1"},
	}

	view := testPopulator().View(context.Background(), prod)

	require.NotNil(t, view.Store)
	assert.Equal(t, "Main Store", view.Store.Name)
	require.NotNil(t, view.Category)
	assert.Equal(t, "Beverages", view.Category.Name)
	require.NotNil(t, view.Brand)
	assert.Equal(t, "Acme", view.Brand.Name)

	require.Len(t, view.WarehouseAvailability, 1)
	require.NotNil(t, view.WarehouseAvailability[0].Warehouse)
	assert.Equal(t, "North DC", view.WarehouseAvailability[0].Warehouse.Name)
	assert.Equal(t, int64(30), view.WarehouseAvailability[0].Stock)

	require.Len(t, view.Images, 1)
	assert.Equal(t, "/static/a.png", view.Images[0].URL)
}

func TestPopulator_DanglingReferencesAreOmitted(t *testing.T) {
	prod := &models.Product{
		SKU:        "WS-002",
		BrandID:    "b-1",
		CategoryID: "gone",
		WarehouseAvailability: []models.WarehouseStock{
			{WarehouseID: "gone", Stock: 5},
		},
		ImageIDs: []string{"gone"},
	}

	view := testPopulator().View(context.Background(), prod)

	require.NotNil(t, view.Brand)
	assert.Nil(t, view.Category)
	assert.Nil(t, view.Store)

	// The stock entry survives without its warehouse.
	require.Len(t, view.WarehouseAvailability, 1)
	assert.Nil(t, view.WarehouseAvailability[0].Warehouse)
	assert.Empty(t, view.Images)
}

func TestPopulator_Views(t *testing.T) {
	prods := []*models.Product{
		{SKU: "WS-001", BrandID: "b-1"},
		{SKU: "WS-002"},
	}

	views := testPopulator().Views(context.Background(), prods)
	require.Len(t, views, 2)
	assert.NotNil(t, views[0].Brand)
	assert.Nil(t, views[1].Brand)
}
