package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wholesale-catalog/internal/cache"
	"wholesale-catalog/internal/metrics"
	"wholesale-catalog/internal/models"
	"wholesale-catalog/internal/pricing"
	"wholesale-catalog/internal/repository"
)

// ProductViewer assembles composed product views.
type ProductViewer interface {
	View(ctx context.Context, prod *models.Product) *models.ProductView
	Views(ctx context.Context, prods []*models.Product) []*models.ProductView
}

// ProductHandler extends the generic handler with population, quoting and a
// read-through cache over the composed views.
type ProductHandler struct {
	*CrudHandler[models.Product, *models.Product]
	Populator ProductViewer
	Cache     cache.Cache
	CacheTTL  time.Duration
}

type productListPage struct {
	Items []*models.ProductView `json:"items"`
	Total int64                 `json:"total"`
}

func NewProductHandler(store Store[models.Product, *models.Product], viewer ProductViewer, c cache.Cache, ttl time.Duration) *ProductHandler {
	h := &ProductHandler{
		CrudHandler: &CrudHandler[models.Product, *models.Product]{
			Store:    store,
			Resource: "product",
			Filters:  []string{"sku", "brand_id", "category_id", "store_id", "seller_id", "warehouse_id", "is_active"},
			Defaults: func(p *models.Product) {
				if p.IsActive == nil {
					active := true
					p.IsActive = &active
				}
				if p.Currency == "" {
					p.Currency = "USD"
				}
			},
			Validate: func(p *models.Product) error {
				return models.ValidatePriceTiers(p.BasePrice, p.PriceTiers)
			},
		},
		Populator: viewer,
		Cache:     c,
		CacheTTL:  ttl,
	}
	h.CrudHandler.AfterWrite = h.invalidate
	return h
}

func (h *ProductHandler) invalidate(c *gin.Context) {
	_ = h.Cache.DeleteByPrefix(c.Request.Context(), "products:")
}

// listCacheKey serializes the page parameters with filters in sorted key
// order, so equal requests always map to the same entry.
func listCacheKey(p repository.ListParams) string {
	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "products:list:p%d_l%d_q%s_s%s_%s", p.Page, p.Limit, p.Query, p.SortBy, p.Order)
	for _, k := range keys {
		fmt.Fprintf(&b, "_f%s=%s", k, p.Filters[k])
	}
	return b.String()
}

// Get returns the composed view: the product plus resolved store, category,
// brand, warehouse availability and images.
func (h *ProductHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	key := "products:view:" + id

	var cached models.ProductView
	if found, _ := h.Cache.Get(ctx, key, &cached); found {
		respond(c, http.StatusOK, "product retrieved", &cached, nil)
		return
	}

	prod, err := h.Store.FindByID(ctx, id)
	if err != nil {
		respondRepoError(c, h.Resource, err)
		return
	}

	view := h.Populator.View(ctx, prod)
	_ = h.Cache.Set(ctx, key, view, h.CacheTTL)
	respond(c, http.StatusOK, "product retrieved", view, nil)
}

func (h *ProductHandler) List(c *gin.Context) {
	params, err := parseListParams(c, h.Filters)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx := c.Request.Context()
	key := listCacheKey(params)

	pagination := &models.Pagination{Page: params.Page, Limit: params.Limit}

	var page productListPage
	if found, _ := h.Cache.Get(ctx, key, &page); found {
		pagination.Total = page.Total
		respond(c, http.StatusOK, "product list retrieved", page.Items, pagination)
		return
	}

	items, total, err := h.Store.List(ctx, params)
	if err != nil {
		respondRepoError(c, h.Resource, err)
		return
	}

	views := h.Populator.Views(ctx, items)
	_ = h.Cache.Set(ctx, key, productListPage{Items: views, Total: total}, h.CacheTTL)

	pagination.Total = total
	respond(c, http.StatusOK, "product list retrieved", views, pagination)
}

// Update re-validates the pricing tiers against the effective base price
// whenever the patch touches either.
func (h *ProductHandler) Update(c *gin.Context) {
	var u models.ProductUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		respondBindingError(c, err)
		return
	}
	patch := u.Patch()

	ctx := c.Request.Context()
	id := c.Param("id")

	if u.BasePrice != nil || u.PriceTiers != nil {
		current, err := h.Store.FindByID(ctx, id)
		if err != nil {
			respondRepoError(c, h.Resource, err)
			return
		}
		base := current.BasePrice
		if u.BasePrice != nil {
			base = *u.BasePrice
		}
		tiers := current.PriceTiers
		if u.PriceTiers != nil {
			tiers = u.PriceTiers
		}
		if err := models.ValidatePriceTiers(base, tiers); err != nil {
			respondError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
	}

	updated, err := h.Store.Update(ctx, id, patch)
	if err != nil {
		respondRepoError(c, h.Resource, err)
		return
	}

	metrics.RecordOperation(h.Resource, "update")
	h.invalidate(c)
	respond(c, http.StatusOK, "product updated", updated, nil)
}

// Quote computes the effective unit price for a requested quantity.
func (h *ProductHandler) Quote(c *gin.Context) {
	qty, err := strconv.ParseInt(c.DefaultQuery("qty", "1"), 10, 64)
	if err != nil || qty < 1 {
		respondError(c, http.StatusBadRequest, "qty must be an integer >= 1", nil)
		return
	}

	prod, err := h.Store.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepoError(c, h.Resource, err)
		return
	}

	q := pricing.QuoteFor(prod, qty)
	respond(c, http.StatusOK, "quote computed", gin.H{
		"product_id": prod.ID,
		"quantity":   q.Quantity,
		"unit_price": q.UnitPrice.InexactFloat64(),
		"subtotal":   q.Subtotal.InexactFloat64(),
		"tax":        q.Tax.InexactFloat64(),
		"total":      q.Total.InexactFloat64(),
		"currency":   q.Currency,
		"tiered":     q.Tiered,
	}, nil)
}
