package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ShippingCarrier bundles a shipping company's vendor, service product,
// costs and lead times. IsInternal marks company-driver delivery: such
// carriers add no shipping days and never generate a shipping PO.
type ShippingCarrier struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Sequence         int             `json:"sequence"`
	IsInternal       bool            `json:"is_internal"`
	VendorID         *int            `json:"vendor_id,omitempty"`
	ServiceProductID *int            `json:"service_product_id,omitempty"`
	CostRiyadhFlat   decimal.Decimal `json:"cost_riyadh_flat"`
	ShipDaysRiyadh   int             `json:"ship_days_riyadh"`
	ShipDaysOutside  int             `json:"ship_days_outside"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CarrierInput holds the editable fields of a shipping carrier.
type CarrierInput struct {
	Name             string
	Sequence         int
	IsInternal       bool
	VendorID         *int
	ServiceProductID *int
	CostRiyadhFlat   decimal.Decimal
	ShipDaysRiyadh   int
	ShipDaysOutside  int
}

// CarrierService provides shipping carrier master data operations.
type CarrierService interface {
	CreateCarrier(ctx context.Context, input CarrierInput) (*ShippingCarrier, error)
	UpdateCarrier(ctx context.Context, id int, input CarrierInput) (*ShippingCarrier, error)
	GetCarrier(ctx context.Context, id int) (*ShippingCarrier, error)
	// GetCarriers returns all active carriers ordered by sequence, then id.
	GetCarriers(ctx context.Context) ([]ShippingCarrier, error)
	DeactivateCarrier(ctx context.Context, id int) error
}
