package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"wholesale-catalog/internal/cache"
	"wholesale-catalog/internal/models"
	"wholesale-catalog/internal/repository"
)

// stubViewer attaches a fixed brand so tests can see population happened.
type stubViewer struct {
	brand *models.Brand
}

func (s stubViewer) View(_ context.Context, p *models.Product) *models.ProductView {
	return &models.ProductView{Product: *p, Brand: s.brand}
}

func (s stubViewer) Views(ctx context.Context, prods []*models.Product) []*models.ProductView {
	views := make([]*models.ProductView, 0, len(prods))
	for _, p := range prods {
		views = append(views, s.View(ctx, p))
	}
	return views
}

func setupProductRouter(store Store[models.Product, *models.Product], viewer ProductViewer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewProductHandler(store, viewer, cache.NewMemory(), time.Minute)
	g := r.Group("/products")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	r.GET("/products/:id/quote", h.Quote)
	return r
}

func tieredProduct(id string) *models.Product {
	active := true
	return &models.Product{
		Meta:      models.Meta{ID: id},
		SKU:       "WS-001",
		Name:      "Sparkling water 500ml",
		BasePrice: 1.00,
		Currency:  "USD",
		PriceTiers: []models.PriceTier{
			{MinQty: 12, UnitPrice: 0.97},
			{MinQty: 48, UnitPrice: 0.93},
		},
		Stock:    500,
		BrandID:  "b-1",
		IsActive: &active,
	}
}

func TestQuote_TierApplies(t *testing.T) {
	store := new(mockStore[models.Product, *models.Product])
	store.On("FindByID", mock.Anything, "p-1").Return(tieredProduct("p-1"), nil).Once()

	w := doJSON(setupProductRouter(store, stubViewer{}), http.MethodGet, "/products/p-1/quote?qty=50", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.InDelta(t, 0.93, data["unit_price"], 1e-9)
	assert.Equal(t, true, data["tiered"])
}

func TestQuote_BelowTiersUsesBasePrice(t *testing.T) {
	store := new(mockStore[models.Product, *models.Product])
	store.On("FindByID", mock.Anything, "p-1").Return(tieredProduct("p-1"), nil).Once()

	w := doJSON(setupProductRouter(store, stubViewer{}), http.MethodGet, "/products/p-1/quote?qty=5", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.InDelta(t, 1.00, data["unit_price"], 1e-9)
	assert.Equal(t, false, data["tiered"])
}

func TestQuote_InvalidQuantity(t *testing.T) {
	store := new(mockStore[models.Product, *models.Product])

	w := doJSON(setupProductRouter(store, stubViewer{}), http.MethodGet, "/products/p-1/quote?qty=0", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "FindByID")
}

func TestQuote_ProductNotFound(t *testing.T) {
	store := new(mockStore[models.Product, *models.Product])
	store.On("FindByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound).Once()

	w := doJSON(setupProductRouter(store, stubViewer{}), http.MethodGet, "/products/missing/quote?qty=10", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProduct_InvalidTiersRejected(t *testing.T) {
	store := new(mockStore[models.Product, *models.Product])

	w := doJSON(setupProductRouter(store, stubViewer{}), http.MethodPost, "/products", gin.H{
		"sku":        "WS-002",
		"name":       "Bulk rice 5kg",
		"base_price": 1.00,
		"price_tiers": []gin.H{
			{"min_qty": 10, "unit_price": 1.50},
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "Create")
}

func TestCreateProduct_MissingBrandFailsValidation(t *testing.T) {
	store := new(mockStore[models.Product, *models.Product])
	store.On("Create", mock.Anything, mock.Anything).
		Return(nil, &repository.ValidationError{Field: "brand_id", Message: `brand "nope" does not exist`}).Once()

	w := doJSON(setupProductRouter(store, stubViewer{}), http.MethodPost, "/products", gin.H{
		"sku":        "WS-003",
		"name":       "Bulk rice 5kg",
		"base_price": 4.20,
		"brand_id":   "nope",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var env errEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Contains(t, env.Message, "does not exist")
}

func TestCreateProduct_SKUConflict(t *testing.T) {
	store := new(mockStore[models.Product, *models.Product])
	store.On("Create", mock.Anything, mock.Anything).
		Return(nil, &repository.ConflictError{Field: "sku"}).Once()

	w := doJSON(setupProductRouter(store, stubViewer{}), http.MethodPost, "/products", gin.H{
		"sku":        "WS-001",
		"name":       "Duplicate",
		"base_price": 1.00,
	})

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestGetProduct_ReturnsPopulatedView(t *testing.T) {
	store := new(mockStore[models.Product, *models.Product])
	store.On("FindByID", mock.Anything, "p-1").Return(tieredProduct("p-1"), nil).Once()

	viewer := stubViewer{brand: &models.Brand{Name: "Acme"}}
	r := setupProductRouter(store, viewer)

	w := doJSON(r, http.MethodGet, "/products/p-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var view models.ProductView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "WS-001", view.SKU)
	require.NotNil(t, view.Brand)
	assert.Equal(t, "Acme", view.Brand.Name)

	// Second read is served from cache; the store is not hit again.
	w = doJSON(r, http.MethodGet, "/products/p-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestBrandUpdate_EvictsCachedProductViews(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mem := cache.NewMemory()

	products := new(mockStore[models.Product, *models.Product])
	products.On("FindByID", mock.Anything, "p-1").Return(tieredProduct("p-1"), nil).Twice()

	brands := new(mockStore[models.Brand, *models.Brand])
	renamed := &models.Brand{Meta: models.Meta{ID: "b-1"}, Name: "Renamed Brand"}
	brands.On("Update", mock.Anything, "b-1", mock.MatchedBy(func(patch bson.M) bool {
		return patch["name"] == "Renamed Brand"
	})).Return(renamed, nil).Once()

	brand := &models.Brand{Meta: models.Meta{ID: "b-1"}, Name: "Acme"}
	r := gin.New()
	ph := NewProductHandler(products, stubViewer{brand: brand}, mem, time.Minute)
	r.GET("/products/:id", ph.Get)
	bh := NewBrandHandler(brands, mem)
	r.PUT("/brands/:id", bh.Update)

	w := doJSON(r, http.MethodGet, "/products/p-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	brand.Name = "Renamed Brand"
	w = doJSON(r, http.MethodPut, "/brands/b-1", gin.H{"name": "Renamed Brand"})
	require.Equal(t, http.StatusOK, w.Code)

	// The brand write evicted the composed view, so the next read
	// repopulates and sees the new name.
	w = doJSON(r, http.MethodGet, "/products/p-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var view models.ProductView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.NotNil(t, view.Brand)
	assert.Equal(t, "Renamed Brand", view.Brand.Name)
	products.AssertExpectations(t)
	brands.AssertExpectations(t)
}

func TestListCacheKey_FilterOrderIndependent(t *testing.T) {
	a := repository.ListParams{Page: 1, Limit: 20, Order: "asc",
		Filters: map[string]string{"brand_id": "b-1", "category_id": "c-1", "store_id": "s-1"}}
	b := repository.ListParams{Page: 1, Limit: 20, Order: "asc",
		Filters: map[string]string{"store_id": "s-1", "category_id": "c-1", "brand_id": "b-1"}}

	assert.Equal(t, listCacheKey(a), listCacheKey(b))
	assert.Contains(t, listCacheKey(a), "fbrand_id=b-1_fcategory_id=c-1_fstore_id=s-1")

	b.Filters["brand_id"] = "b-2"
	assert.NotEqual(t, listCacheKey(a), listCacheKey(b))
}

func TestListProducts_PopulatedPage(t *testing.T) {
	store := new(mockStore[models.Product, *models.Product])
	store.On("List", mock.Anything, mock.MatchedBy(func(p repository.ListParams) bool {
		return p.Page == 1 && p.Limit == 20 && p.Filters["brand_id"] == "b-1"
	})).Return([]*models.Product{tieredProduct("p-1")}, int64(1), nil).Once()

	viewer := stubViewer{brand: &models.Brand{Name: "Acme"}}
	w := doJSON(setupProductRouter(store, viewer), http.MethodGet, "/products?brand_id=b-1", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Meta.Pagination)
	assert.Equal(t, int64(1), env.Meta.Pagination.Total)

	var views []models.ProductView
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Brand)
}

func TestUpdateProduct_TierAboveNewBasePriceRejected(t *testing.T) {
	store := new(mockStore[models.Product, *models.Product])
	store.On("FindByID", mock.Anything, "p-1").Return(tieredProduct("p-1"), nil).Once()

	// Lowering the base price below the existing tiers must fail.
	w := doJSON(setupProductRouter(store, stubViewer{}), http.MethodPut, "/products/p-1", gin.H{
		"base_price": 0.50,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "Update")
}

func TestUpdateProduct_ValidPatch(t *testing.T) {
	store := new(mockStore[models.Product, *models.Product])
	updated := tieredProduct("p-1")
	updated.Name = "Renamed"

	store.On("Update", mock.Anything, "p-1", mock.MatchedBy(func(patch map[string]any) bool {
		return len(patch) == 1 && patch["name"] == "Renamed"
	})).Return(updated, nil).Once()

	w := doJSON(setupProductRouter(store, stubViewer{}), http.MethodPut, "/products/p-1", gin.H{
		"name": "Renamed",
	})

	require.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}
