package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ShippingPOIssuer creates at most one shipping purchase order per sales
// order. Invoked automatically at order confirmation (errors logged, not
// raised) and available as a standalone action (errors surface).
type ShippingPOIssuer struct {
	pool     *pgxpool.Pool
	pos      PurchaseOrderService
	settings SettingsService
	log      *zap.Logger
}

// NewShippingPOIssuer constructs a ShippingPOIssuer.
func NewShippingPOIssuer(pool *pgxpool.Pool, pos PurchaseOrderService, settings SettingsService, log *zap.Logger) *ShippingPOIssuer {
	return &ShippingPOIssuer{pool: pool, pos: pos, settings: settings, log: log}
}

// CreateShippingPO issues the shipping purchase order for an order if the
// rules call for one. It returns (nil, nil) without error when issuance is
// skipped: company-driver execution, internal carrier, an existing shipping
// PO for the order, or a computed total cost of zero.
//
// A missing shipping vendor or service product is a ValidationError raised
// before anything is persisted; the PO header and its single line are
// written by PurchaseOrderService in one transaction, so no partial order
// can remain.
func (s *ShippingPOIssuer) CreateShippingPO(ctx context.Context, orderID int) (*PurchaseOrder, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.ShippingExecution != ExecutionCarrier {
		return nil, nil
	}

	var carrier *ShippingCarrier
	if order.CarrierID != nil {
		c, err := scanCarrier(s.pool.QueryRow(ctx,
			"SELECT "+carrierColumns+" FROM shipping_carriers WHERE id = $1", *order.CarrierID,
		))
		if err != nil {
			return nil, fmt.Errorf("load carrier %d: %w", *order.CarrierID, err)
		}
		carrier = c
	}
	if carrier != nil && carrier.IsInternal {
		return nil, nil
	}

	vendorID, serviceProductID, err := s.resolveVendorAndService(order, carrier)
	if err != nil {
		return nil, err
	}

	existing, err := s.pos.CountPOsForSaleOrder(ctx, orderID, POTypeShipping)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, nil
	}

	fallback, err := s.settings.GetDecimal(ctx, SettingRiyadhFlatCost)
	if err != nil {
		return nil, err
	}
	totalCost := TotalShippingCost(order.ShippingType, carrier, fallback, order.Lines)
	if totalCost.Sign() <= 0 {
		return nil, nil
	}

	unit, err := s.serviceProductUnit(ctx, serviceProductID)
	if err != nil {
		return nil, err
	}

	label := "inside Riyadh"
	if order.ShippingType == ShippingOutside {
		label = "outside Riyadh"
	}
	now := time.Now()
	poType := POTypeShipping

	po, err := s.pos.CreatePO(ctx, vendorID, order.OrderNumber, &order.ID, &poType,
		[]PurchaseOrderLineInput{{
			ProductID:   &serviceProductID,
			Description: fmt.Sprintf("Shipping cost for order %s (%s)", order.OrderNumber, label),
			Quantity:    decimal.NewFromInt(1),
			UnitCost:    totalCost,
			Unit:        unit,
			PlannedDate: &now,
		}}, "")
	if err != nil {
		return nil, fmt.Errorf("create shipping PO for order %s: %w", order.OrderNumber, err)
	}

	s.log.Info("shipping PO created",
		zap.String("order", order.OrderNumber),
		zap.Int("po_id", po.ID),
		zap.String("total", totalCost.String()))
	return po, nil
}

// resolveVendorAndService prefers the carrier's vendor and service product
// and falls back to the order's legacy fields. Both must resolve before
// any purchase order is created.
func (s *ShippingPOIssuer) resolveVendorAndService(order *SalesOrder, carrier *ShippingCarrier) (int, int, error) {
	var vendorID, serviceProductID *int
	if carrier != nil {
		vendorID = carrier.VendorID
		serviceProductID = carrier.ServiceProductID
	} else {
		vendorID = order.ShippingVendorID
		serviceProductID = order.ShippingServiceProductID
	}

	if vendorID == nil {
		return 0, 0, NewValidationError("please select a shipping vendor (shipping company)")
	}
	if serviceProductID == nil {
		return 0, 0, NewValidationError("please select a shipping service product")
	}
	return *vendorID, *serviceProductID, nil
}

// serviceProductUnit returns the service product's purchase unit of
// measure, falling back to its base unit.
func (s *ShippingPOIssuer) serviceProductUnit(ctx context.Context, productID int) (string, error) {
	var unit string
	err := s.pool.QueryRow(ctx,
		"SELECT COALESCE(purchase_unit, unit) FROM products WHERE id = $1", productID,
	).Scan(&unit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", NewValidationError("please select a shipping service product")
		}
		return "", fmt.Errorf("resolve service product %d: %w", productID, err)
	}
	return unit, nil
}

// loadOrder fetches the order header and lines needed for issuance.
func (s *ShippingPOIssuer) loadOrder(ctx context.Context, orderID int) (*SalesOrder, error) {
	o := &SalesOrder{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, COALESCE(order_number, ''), shipping_execution, carrier_id,
		       shipping_vendor_id, shipping_service_product_id, shipping_type
		FROM sales_orders WHERE id = $1`,
		orderID,
	).Scan(
		&o.ID, &o.OrderNumber, &o.ShippingExecution, &o.CarrierID,
		&o.ShippingVendorID, &o.ShippingServiceProductID, &o.ShippingType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("fetch order %d: %w", orderID, err)
	}

	lines, err := fetchOrderLinesQ(ctx, s.pool, orderID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}
