package repository

import (
	"context"

	"wholesale-catalog/internal/models"
)

// Finder is the single-record lookup a Populator needs per collection.
type Finder[PT any] interface {
	FindByID(ctx context.Context, id string) (PT, error)
}

// Populator resolves a product's references into a composed view. Dangling
// references are tolerated at read time and simply omitted.
type Populator struct {
	Stores     Finder[*models.Store]
	Categories Finder[*models.Category]
	Brands     Finder[*models.Brand]
	Warehouses Finder[*models.Warehouse]
	Files      Finder[*models.File]
}

// View assembles the composed read model for one product, issuing one lookup
// per reference.
func (p *Populator) View(ctx context.Context, prod *models.Product) *models.ProductView {
	view := &models.ProductView{Product: *prod}

	if prod.StoreID != "" {
		if s, err := p.Stores.FindByID(ctx, prod.StoreID); err == nil {
			view.Store = s
		}
	}
	if prod.CategoryID != "" {
		if c, err := p.Categories.FindByID(ctx, prod.CategoryID); err == nil {
			view.Category = c
		}
	}
	if prod.BrandID != "" {
		if b, err := p.Brands.FindByID(ctx, prod.BrandID); err == nil {
			view.Brand = b
		}
	}
	for _, ws := range prod.WarehouseAvailability {
		entry := models.WarehouseAvailabilityView{WarehouseStock: ws}
		if w, err := p.Warehouses.FindByID(ctx, ws.WarehouseID); err == nil {
			entry.Warehouse = w
		}
		view.WarehouseAvailability = append(view.WarehouseAvailability, entry)
	}
	for _, fid := range prod.ImageIDs {
		if f, err := p.Files.FindByID(ctx, fid); err == nil {
			view.Images = append(view.Images, *f)
		}
	}

	return view
}

func (p *Populator) Views(ctx context.Context, prods []*models.Product) []*models.ProductView {
	views := make([]*models.ProductView, 0, len(prods))
	for _, prod := range prods {
		views = append(views, p.View(ctx, prod))
	}
	return views
}
