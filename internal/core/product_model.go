package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory groups products for manufacturing lead-time rules.
type ProductCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product is a sellable item or a service used on purchase order lines.
//
// ManufacturingVendorID is the default factory for manufacturing purchase
// orders. OutsideShippingCost is the per-unit cost paid to the shipping
// company when delivery is outside Riyadh.
type Product struct {
	ID                    int             `json:"id"`
	Code                  string          `json:"code"`
	Name                  string          `json:"name"`
	CategoryID            *int            `json:"category_id,omitempty"`
	CategoryName          string          `json:"category_name,omitempty"` // joined
	ListPrice             decimal.Decimal `json:"list_price"`
	Unit                  string          `json:"unit"`
	PurchaseUnit          *string         `json:"purchase_unit,omitempty"` // falls back to Unit
	IsService             bool            `json:"is_service"`
	ManufacturingVendorID *int            `json:"manufacturing_vendor_id,omitempty"`
	OutsideShippingCost   decimal.Decimal `json:"outside_shipping_cost"`
	IsActive              bool            `json:"is_active"`
	CreatedAt             time.Time       `json:"created_at"`
}

// ProductInput holds the fields for creating or updating a product.
type ProductInput struct {
	Code                  string
	Name                  string
	CategoryID            *int
	ListPrice             decimal.Decimal
	Unit                  string
	PurchaseUnit          string // empty means "same as Unit"
	IsService             bool
	ManufacturingVendorID *int
	OutsideShippingCost   decimal.Decimal
}

// ProductService provides product and category master data operations.
type ProductService interface {
	CreateCategory(ctx context.Context, name string) (*ProductCategory, error)
	GetCategories(ctx context.Context) ([]ProductCategory, error)

	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id int, input ProductInput) (*Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	GetProductByCode(ctx context.Context, code string) (*Product, error)
	GetProducts(ctx context.Context) ([]Product, error)
}
