package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// PriceTier is a quantity break: orders of at least MinQty units qualify for
// UnitPrice instead of the base price.
type PriceTier struct {
	MinQty    int64   `json:"min_qty" bson:"min_qty" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price" binding:"required,gt=0"`
}

// WarehouseStock is a per-warehouse availability entry.
type WarehouseStock struct {
	WarehouseID  string `json:"warehouse_id" bson:"warehouse_id" binding:"required"`
	Stock        int64  `json:"stock" bson:"stock" binding:"gte=0"`
	LeadTimeDays *int   `json:"lead_time_days,omitempty" bson:"lead_time_days,omitempty" binding:"omitempty,gte=0"`
}

type Product struct {
	Meta                  `bson:",inline"`
	SKU                   string            `json:"sku" bson:"sku" binding:"required"`
	Name                  string            `json:"name" bson:"name" binding:"required"`
	Description           string            `json:"description,omitempty" bson:"description,omitempty"`
	BasePrice             float64           `json:"base_price" bson:"base_price" binding:"required,gt=0"`
	PurchasePrice         *float64          `json:"purchase_price,omitempty" bson:"purchase_price,omitempty" binding:"omitempty,gt=0"`
	Currency              string            `json:"currency" bson:"currency" binding:"omitempty,len=3"`
	TaxRate               *float64          `json:"tax_rate,omitempty" bson:"tax_rate,omitempty" binding:"omitempty,gte=0"`
	PriceTiers            []PriceTier       `json:"price_tiers,omitempty" bson:"price_tiers,omitempty" binding:"omitempty,dive"`
	Stock                 int64             `json:"stock" bson:"stock" binding:"gte=0"`
	SellerID              string            `json:"seller_id,omitempty" bson:"seller_id,omitempty"`
	StoreID               string            `json:"store_id,omitempty" bson:"store_id,omitempty"`
	WarehouseID           string            `json:"warehouse_id,omitempty" bson:"warehouse_id,omitempty"`
	CategoryID            string            `json:"category_id,omitempty" bson:"category_id,omitempty"`
	BrandID               string            `json:"brand_id,omitempty" bson:"brand_id,omitempty"`
	WarehouseAvailability []WarehouseStock  `json:"warehouse_availability,omitempty" bson:"warehouse_availability,omitempty" binding:"omitempty,dive"`
	ImageIDs              []string          `json:"image_ids,omitempty" bson:"image_ids,omitempty"`
	Attributes            map[string]string `json:"attributes,omitempty" bson:"attributes,omitempty"`
	Tags                  []string          `json:"tags,omitempty" bson:"tags,omitempty"`
	IsActive              *bool             `json:"is_active" bson:"is_active"`
}

type ProductUpdate struct {
	SKU                   *string           `json:"sku"`
	Name                  *string           `json:"name"`
	Description           *string           `json:"description"`
	BasePrice             *float64          `json:"base_price" binding:"omitempty,gt=0"`
	PurchasePrice         *float64          `json:"purchase_price" binding:"omitempty,gt=0"`
	Currency              *string           `json:"currency" binding:"omitempty,len=3"`
	TaxRate               *float64          `json:"tax_rate" binding:"omitempty,gte=0"`
	PriceTiers            []PriceTier       `json:"price_tiers" binding:"omitempty,dive"`
	Stock                 *int64            `json:"stock" binding:"omitempty,gte=0"`
	SellerID              *string           `json:"seller_id"`
	StoreID               *string           `json:"store_id"`
	WarehouseID           *string           `json:"warehouse_id"`
	CategoryID            *string           `json:"category_id"`
	BrandID               *string           `json:"brand_id"`
	WarehouseAvailability []WarehouseStock  `json:"warehouse_availability" binding:"omitempty,dive"`
	ImageIDs              []string          `json:"image_ids"`
	Attributes            map[string]string `json:"attributes"`
	Tags                  []string          `json:"tags"`
	IsActive              *bool             `json:"is_active"`
}

func (u *ProductUpdate) Patch() bson.M {
	patch := bson.M{}
	if u.SKU != nil {
		patch["sku"] = *u.SKU
	}
	if u.Name != nil {
		patch["name"] = *u.Name
	}
	if u.Description != nil {
		patch["description"] = *u.Description
	}
	if u.BasePrice != nil {
		patch["base_price"] = *u.BasePrice
	}
	if u.PurchasePrice != nil {
		patch["purchase_price"] = *u.PurchasePrice
	}
	if u.Currency != nil {
		patch["currency"] = *u.Currency
	}
	if u.TaxRate != nil {
		patch["tax_rate"] = *u.TaxRate
	}
	if u.PriceTiers != nil {
		patch["price_tiers"] = u.PriceTiers
	}
	if u.Stock != nil {
		patch["stock"] = *u.Stock
	}
	if u.SellerID != nil {
		patch["seller_id"] = *u.SellerID
	}
	if u.StoreID != nil {
		patch["store_id"] = *u.StoreID
	}
	if u.WarehouseID != nil {
		patch["warehouse_id"] = *u.WarehouseID
	}
	if u.CategoryID != nil {
		patch["category_id"] = *u.CategoryID
	}
	if u.BrandID != nil {
		patch["brand_id"] = *u.BrandID
	}
	if u.WarehouseAvailability != nil {
		patch["warehouse_availability"] = u.WarehouseAvailability
	}
	if u.ImageIDs != nil {
		patch["image_ids"] = u.ImageIDs
	}
	if u.Attributes != nil {
		patch["attributes"] = u.Attributes
	}
	if u.Tags != nil {
		patch["tags"] = u.Tags
	}
	if u.IsActive != nil {
		patch["is_active"] = *u.IsActive
	}
	return patch
}

// ValidatePriceTiers checks that tiers are strictly increasing by minimum
// quantity and that every tier undercuts or matches the base price.
func ValidatePriceTiers(basePrice float64, tiers []PriceTier) error {
	var prevQty int64
	for i, t := range tiers {
		if i > 0 && t.MinQty <= prevQty {
			return fmt.Errorf("price_tiers must be strictly increasing by min_qty (tier %d)", i)
		}
		if t.UnitPrice > basePrice {
			return fmt.Errorf("price_tiers[%d].unit_price exceeds base_price", i)
		}
		prevQty = t.MinQty
	}
	return nil
}

// WarehouseAvailabilityView is a stock entry with its warehouse resolved.
type WarehouseAvailabilityView struct {
	WarehouseStock
	Warehouse *Warehouse `json:"warehouse,omitempty"`
}

// ProductView is the composed read model: the product plus its populated
// references. Lookups that find nothing leave the field empty.
type ProductView struct {
	Product
	Store                 *Store                      `json:"store,omitempty"`
	Category              *Category                   `json:"category,omitempty"`
	Brand                 *Brand                      `json:"brand,omitempty"`
	Images                []File                      `json:"images,omitempty"`
	WarehouseAvailability []WarehouseAvailabilityView `json:"warehouse_availability,omitempty"`
}
