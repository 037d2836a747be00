package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder is a sales order header with the stored operational fields.
//
// ShippingType, ExpectedDeliveryDate, DeliveryState and ProductsSummary are
// computed from the order's other fields and persisted; every mutating
// operation on the order recomputes and stores them.
type SalesOrder struct {
	ID                int               `json:"id"`
	OrderNumber       string            `json:"order_number"`
	CustomerName      string            `json:"customer_name"`
	Status            string            `json:"status"`
	OrderDate         *time.Time        `json:"order_date,omitempty"`
	DestinationCity   string            `json:"destination_city"`
	ShippingExecution ShippingExecution `json:"shipping_execution"`
	CarrierID         *int              `json:"carrier_id,omitempty"`
	CarrierName       string            `json:"carrier_name,omitempty"` // joined from shipping_carriers

	// Legacy fallback refs, used only when no carrier is selected.
	ShippingVendorID         *int `json:"shipping_vendor_id,omitempty"`
	ShippingServiceProductID *int `json:"shipping_service_product_id,omitempty"`

	StageID   *int   `json:"stage_id,omitempty"`
	StageName string `json:"stage_name,omitempty"` // joined from ops_stages
	Notes     string `json:"notes"`

	ShippingType         ShippingType  `json:"shipping_type"`
	ExpectedDeliveryDate *time.Time    `json:"expected_delivery_date,omitempty"`
	DeliveryState        DeliveryState `json:"delivery_state"`
	ProductsSummary      string        `json:"products_summary"`

	Lines       []SalesOrderLine `json:"lines"`
	CreatedAt   time.Time        `json:"created_at"`
	ConfirmedAt *time.Time       `json:"confirmed_at,omitempty"`
}

// SalesOrderLine is one line on a sales order. Section and note lines have
// a non-empty DisplayType and no product.
type SalesOrderLine struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"order_id"`
	LineNumber  int             `json:"line_number"`
	DisplayType string          `json:"display_type,omitempty"`
	ProductID   *int            `json:"product_id,omitempty"`
	ProductName string          `json:"product_name,omitempty"` // joined from products
	CategoryID  *int            `json:"category_id,omitempty"`  // joined from products
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`

	// Per-unit shipping cost outside Riyadh, joined from the product.
	OutsideShippingCost decimal.Decimal `json:"outside_shipping_cost"`
}

// OrderLineInput describes a line when creating or replacing order lines.
// For section/note lines set DisplayType and Description, leave ProductCode empty.
type OrderLineInput struct {
	DisplayType string
	Description string
	ProductCode string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal // zero means "use product list price"
}

// OrderInput holds the editable header fields of a sales order.
type OrderInput struct {
	CustomerName             string
	OrderDate                *time.Time
	DestinationCity          string
	ShippingExecution        ShippingExecution
	CarrierID                *int
	ShippingVendorID         *int
	ShippingServiceProductID *int
	StageID                  *int
	Notes                    string
}
