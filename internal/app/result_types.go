package app

import "sale-ops-pipeline/internal/core"

// OrderResult wraps a sales order with its PO counters.
type OrderResult struct {
	Order             *core.SalesOrder `json:"order"`
	ManufacturingPOs  int              `json:"manufacturing_po_count"`
	ShippingPOs       int              `json:"shipping_po_count"`
}

// OrderListResult is a page of sales orders.
type OrderListResult struct {
	Orders []core.SalesOrder `json:"orders"`
	Count  int               `json:"count"`
}

// ShippingPOResult reports the outcome of a standalone issuance request.
// Skipped is true when the rules decided no PO is needed (company driver,
// internal carrier, duplicate, or zero cost).
type ShippingPOResult struct {
	PurchaseOrder *core.PurchaseOrder `json:"purchase_order,omitempty"`
	Skipped       bool                `json:"skipped"`
}

// PurchaseOrderListResult is a filtered list of purchase orders.
type PurchaseOrderListResult struct {
	Orders []core.PurchaseOrder `json:"purchase_orders"`
	Count  int                  `json:"count"`
}

// VendorResult wraps a single vendor.
type VendorResult struct {
	Vendor *core.Vendor `json:"vendor"`
}

// VendorListResult is the full active vendor list.
type VendorListResult struct {
	Vendors []core.Vendor `json:"vendors"`
	Count   int           `json:"count"`
}

// ProductResult wraps a single product.
type ProductResult struct {
	Product *core.Product `json:"product"`
}

// ProductListResult is the full active product list.
type ProductListResult struct {
	Products []core.Product `json:"products"`
	Count    int            `json:"count"`
}
