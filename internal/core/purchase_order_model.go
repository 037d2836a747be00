package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is a procurement document sent to a vendor. Orders created
// by the pipeline carry a back-reference to the originating sales order and
// a POType tag; untagged orders are plain procurement.
type PurchaseOrder struct {
	ID          int             `json:"id"`
	VendorID    int             `json:"vendor_id"`
	VendorCode  string          `json:"vendor_code"` // joined from vendors
	VendorName  string          `json:"vendor_name"` // joined from vendors
	Status      string          `json:"status"`
	Origin      string          `json:"origin"` // source document reference, e.g. the sales order number
	SaleOrderID *int            `json:"sale_order_id,omitempty"`
	POType      *POType         `json:"po_type,omitempty"`
	Total       decimal.Decimal `json:"total"`
	Notes       string          `json:"notes"`
	Lines       []PurchaseOrderLine `json:"lines"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PurchaseOrderLine is one line on a purchase order.
type PurchaseOrderLine struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"order_id"`
	LineNumber  int             `json:"line_number"`
	ProductID   *int            `json:"product_id,omitempty"`
	ProductCode *string         `json:"product_code,omitempty"` // joined from products
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Unit        string          `json:"unit"`
	PlannedDate *time.Time      `json:"planned_date,omitempty"`
}

// PurchaseOrderLineInput describes a line when creating a purchase order.
type PurchaseOrderLineInput struct {
	ProductID   *int
	Description string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	Unit        string
	PlannedDate *time.Time
}
