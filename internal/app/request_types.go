package app

import "time"

// OrderLineRequest is one requested order line. Section/note lines set
// DisplayType and Description and leave ProductCode empty.
type OrderLineRequest struct {
	DisplayType string `json:"display_type,omitempty"`
	Description string `json:"description,omitempty"`
	ProductCode string `json:"product_code,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	UnitPrice   string `json:"unit_price,omitempty"` // empty means list price
}

// CreateOrderRequest creates a DRAFT sales order.
type CreateOrderRequest struct {
	CustomerName             string             `json:"customer_name"`
	OrderDate                *time.Time         `json:"order_date,omitempty"`
	DestinationCity          string             `json:"destination_city"`
	ShippingExecution        string             `json:"shipping_execution,omitempty"`
	CarrierID                *int               `json:"carrier_id,omitempty"`
	ShippingVendorID         *int               `json:"shipping_vendor_id,omitempty"`
	ShippingServiceProductID *int               `json:"shipping_service_product_id,omitempty"`
	StageID                  *int               `json:"stage_id,omitempty"`
	Notes                    string             `json:"notes,omitempty"`
	Lines                    []OrderLineRequest `json:"lines"`
}

// UpdateOrderRequest edits the header of an existing order.
type UpdateOrderRequest struct {
	CustomerName             string     `json:"customer_name"`
	OrderDate                *time.Time `json:"order_date,omitempty"`
	DestinationCity          string     `json:"destination_city"`
	ShippingExecution        string     `json:"shipping_execution,omitempty"`
	CarrierID                *int       `json:"carrier_id,omitempty"`
	ShippingVendorID         *int       `json:"shipping_vendor_id,omitempty"`
	ShippingServiceProductID *int       `json:"shipping_service_product_id,omitempty"`
	StageID                  *int       `json:"stage_id,omitempty"`
	Notes                    string     `json:"notes,omitempty"`
}

// CreateVendorRequest creates a vendor master record.
type CreateVendorRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
}

// ProductRequest creates or updates a product.
type ProductRequest struct {
	Code                  string `json:"code"`
	Name                  string `json:"name"`
	CategoryID            *int   `json:"category_id,omitempty"`
	ListPrice             string `json:"list_price,omitempty"`
	Unit                  string `json:"unit,omitempty"`
	PurchaseUnit          string `json:"purchase_unit,omitempty"`
	IsService             bool   `json:"is_service,omitempty"`
	ManufacturingVendorID *int   `json:"manufacturing_vendor_id,omitempty"`
	OutsideShippingCost   string `json:"outside_shipping_cost,omitempty"`
}

// CarrierRequest creates or updates a shipping carrier.
type CarrierRequest struct {
	Name             string `json:"name"`
	Sequence         int    `json:"sequence,omitempty"`
	IsInternal       bool   `json:"is_internal,omitempty"`
	VendorID         *int   `json:"vendor_id,omitempty"`
	ServiceProductID *int   `json:"service_product_id,omitempty"`
	CostRiyadhFlat   string `json:"cost_riyadh_flat,omitempty"`
	ShipDaysRiyadh   int    `json:"ship_days_riyadh,omitempty"`
	ShipDaysOutside  int    `json:"ship_days_outside,omitempty"`
}

// LeadTimeRequest creates or updates a manufacturing lead-time rule.
type LeadTimeRequest struct {
	CategoryID int    `json:"category_id"`
	Days       int    `json:"days"`
	Note       string `json:"note,omitempty"`
	IsActive   bool   `json:"is_active"`
}

// StageRequest creates or updates a pipeline stage.
type StageRequest struct {
	Name     string `json:"name"`
	Sequence int    `json:"sequence,omitempty"`
	Fold     bool   `json:"fold,omitempty"`
	IsDone   bool   `json:"is_done,omitempty"`
	Area     string `json:"area,omitempty"`
	Color    int    `json:"color,omitempty"`
}
