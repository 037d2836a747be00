package core_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sale-ops-pipeline/internal/core"
)

func TestShippingPOIssuer_RiyadhFlatCost(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	orders, issuer := newOrderService(pool)
	ctx := context.Background()

	order, err := orders.CreateOrder(ctx, core.OrderInput{
		CustomerName:      "Riyadh Retail",
		DestinationCity:   "Riyadh",
		ShippingExecution: core.ExecutionCarrier,
		CarrierID:         carrierPtr(seedCarrierExternal),
	}, []core.OrderLineInput{
		{ProductCode: "SOFA-3S", Quantity: dec("2")},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	po, err := issuer.CreateShippingPO(ctx, order.ID)
	if err != nil {
		t.Fatalf("CreateShippingPO failed: %v", err)
	}
	if po == nil {
		t.Fatal("expected a shipping PO, got nil")
	}

	if po.VendorID != seedVendorShip {
		t.Errorf("expected carrier vendor %d, got %d", seedVendorShip, po.VendorID)
	}
	if po.POType == nil || *po.POType != core.POTypeShipping {
		t.Errorf("expected shipping po_type, got %v", po.POType)
	}
	if po.SaleOrderID == nil || *po.SaleOrderID != order.ID {
		t.Errorf("expected back-reference to order %d, got %v", order.ID, po.SaleOrderID)
	}
	if po.Origin != order.OrderNumber {
		t.Errorf("expected origin %q, got %q", order.OrderNumber, po.Origin)
	}
	// Inside Riyadh: the carrier's flat cost, regardless of line count.
	if !po.Total.Equal(dec("75")) {
		t.Errorf("expected total 75, got %s", po.Total)
	}

	if len(po.Lines) != 1 {
		t.Fatalf("expected a single PO line, got %d", len(po.Lines))
	}
	line := po.Lines[0]
	if !line.Quantity.Equal(dec("1")) {
		t.Errorf("expected quantity 1, got %s", line.Quantity)
	}
	if !line.UnitCost.Equal(dec("75")) {
		t.Errorf("expected unit cost 75, got %s", line.UnitCost)
	}
	// The shipping service product's purchase unit wins over its base unit.
	if line.Unit != "service" {
		t.Errorf("expected purchase unit 'service', got %q", line.Unit)
	}
	if line.ProductID == nil || *line.ProductID != seedProductService {
		t.Errorf("expected service product %d, got %v", seedProductService, line.ProductID)
	}
	if !strings.Contains(line.Description, order.OrderNumber) || !strings.Contains(line.Description, "inside Riyadh") {
		t.Errorf("unexpected line description %q", line.Description)
	}
	if line.PlannedDate == nil {
		t.Error("expected a planned date on the shipping line")
	}
}

func TestShippingPOIssuer_Idempotent(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	orders, issuer := newOrderService(pool)
	ctx := context.Background()

	order, err := orders.CreateOrder(ctx, core.OrderInput{
		CustomerName:      "Repeat Co",
		DestinationCity:   "Riyadh",
		ShippingExecution: core.ExecutionCarrier,
		CarrierID:         carrierPtr(seedCarrierExternal),
	}, []core.OrderLineInput{
		{ProductCode: "SOFA-3S", Quantity: dec("1")},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if _, err := orders.ConfirmOrder(ctx, order.ID, issuer); err != nil {
		t.Fatalf("ConfirmOrder failed: %v", err)
	}
	// Re-confirming and a manual re-issue must not create a second PO.
	if _, err := orders.ConfirmOrder(ctx, order.ID, issuer); err != nil {
		t.Fatalf("re-confirm failed: %v", err)
	}
	po, err := issuer.CreateShippingPO(ctx, order.ID)
	if err != nil {
		t.Fatalf("manual re-issue failed: %v", err)
	}
	if po != nil {
		t.Errorf("expected skip on re-issue, got PO %d", po.ID)
	}

	pos, err := orders.GetShippingPOs(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetShippingPOs failed: %v", err)
	}
	if len(pos) != 1 {
		t.Errorf("expected exactly one shipping PO, got %d", len(pos))
	}
	mfg, shipping := orders.CountPOs(ctx, order.ID)
	if mfg != 0 || shipping != 1 {
		t.Errorf("expected counts (0, 1), got (%d, %d)", mfg, shipping)
	}
}

func TestShippingPOIssuer_SkipsCompanyExecution(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	orders, issuer := newOrderService(pool)
	ctx := context.Background()

	order, err := orders.CreateOrder(ctx, core.OrderInput{
		CustomerName:      "Own Delivery Co",
		DestinationCity:   "Riyadh",
		ShippingExecution: core.ExecutionCompany,
		CarrierID:         carrierPtr(seedCarrierExternal),
	}, []core.OrderLineInput{
		{ProductCode: "SOFA-3S", Quantity: dec("1")},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	po, err := issuer.CreateShippingPO(ctx, order.ID)
	if err != nil {
		t.Fatalf("CreateShippingPO failed: %v", err)
	}
	if po != nil {
		t.Errorf("company-driver order must not get a shipping PO, got %d", po.ID)
	}
}

func TestShippingPOIssuer_SkipsInternalCarrier(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	orders, issuer := newOrderService(pool)
	ctx := context.Background()

	order, err := orders.CreateOrder(ctx, core.OrderInput{
		CustomerName:      "Fleet Served Co",
		DestinationCity:   "Riyadh",
		ShippingExecution: core.ExecutionCarrier,
		CarrierID:         carrierPtr(seedCarrierInternal),
	}, []core.OrderLineInput{
		{ProductCode: "SOFA-3S", Quantity: dec("1")},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	po, err := issuer.CreateShippingPO(ctx, order.ID)
	if err != nil {
		t.Fatalf("CreateShippingPO failed: %v", err)
	}
	if po != nil {
		t.Errorf("internal-carrier order must not get a shipping PO, got %d", po.ID)
	}
}

func TestShippingPOIssuer_OutsidePerUnitCosts(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	orders, issuer := newOrderService(pool)
	ctx := context.Background()

	order, err := orders.CreateOrder(ctx, core.OrderInput{
		CustomerName:      "Dammam Distribution",
		DestinationCity:   "Dammam",
		ShippingExecution: core.ExecutionCarrier,
		CarrierID:         carrierPtr(seedCarrierExternal),
	}, []core.OrderLineInput{
		{ProductCode: "SOFA-3S", Quantity: dec("2")},  // 2 × 150
		{ProductCode: "TBL-DIN6", Quantity: dec("1")}, // 1 × 120
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	po, err := issuer.CreateShippingPO(ctx, order.ID)
	if err != nil {
		t.Fatalf("CreateShippingPO failed: %v", err)
	}
	if po == nil {
		t.Fatal("expected a shipping PO, got nil")
	}
	if !po.Total.Equal(dec("420")) {
		t.Errorf("expected total 420, got %s", po.Total)
	}
	if len(po.Lines) != 1 || !strings.Contains(po.Lines[0].Description, "outside Riyadh") {
		t.Errorf("expected one outside-Riyadh line, got %+v", po.Lines)
	}
}

func TestShippingPOIssuer_LegacyRefsAndSettingsFallback(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	orders, issuer := newOrderService(pool)
	ctx := context.Background()

	// No carrier selected: the order's own vendor/service refs apply, and the
	// Riyadh cost comes from the configured global fallback (50).
	vendorID := seedVendorShip
	serviceID := seedProductService
	order, err := orders.CreateOrder(ctx, core.OrderInput{
		CustomerName:             "Legacy Fields Co",
		DestinationCity:          "Riyadh",
		ShippingExecution:        core.ExecutionCarrier,
		ShippingVendorID:         &vendorID,
		ShippingServiceProductID: &serviceID,
	}, []core.OrderLineInput{
		{ProductCode: "SOFA-3S", Quantity: dec("1")},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	po, err := issuer.CreateShippingPO(ctx, order.ID)
	if err != nil {
		t.Fatalf("CreateShippingPO failed: %v", err)
	}
	if po == nil {
		t.Fatal("expected a shipping PO, got nil")
	}
	if po.VendorID != seedVendorShip {
		t.Errorf("expected legacy vendor %d, got %d", seedVendorShip, po.VendorID)
	}
	if !po.Total.Equal(dec("50")) {
		t.Errorf("expected fallback flat cost 50, got %s", po.Total)
	}
}

func TestShippingPOIssuer_MissingVendorIsValidationError(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	orders, issuer := newOrderService(pool)
	ctx := context.Background()

	order, err := orders.CreateOrder(ctx, core.OrderInput{
		CustomerName:      "Incomplete Setup Co",
		DestinationCity:   "Riyadh",
		ShippingExecution: core.ExecutionCarrier,
	}, []core.OrderLineInput{
		{ProductCode: "SOFA-3S", Quantity: dec("1")},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	_, err = issuer.CreateShippingPO(ctx, order.ID)
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(vErr.Error(), "shipping vendor") {
		t.Errorf("unexpected message %q", vErr.Error())
	}

	// Validation happens before anything is written.
	pos, err := orders.GetShippingPOs(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetShippingPOs failed: %v", err)
	}
	if len(pos) != 0 {
		t.Errorf("expected no shipping POs after validation failure, got %d", len(pos))
	}

	// Confirmation swallows the same failure and still confirms the order.
	confirmed, err := orders.ConfirmOrder(ctx, order.ID, issuer)
	if err != nil {
		t.Fatalf("ConfirmOrder failed: %v", err)
	}
	if confirmed.Status != core.OrderStatusConfirmed {
		t.Errorf("expected CONFIRMED despite issuance failure, got %s", confirmed.Status)
	}
}

func TestShippingPOIssuer_ZeroTotalSkips(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	orders, issuer := newOrderService(pool)
	ctx := context.Background()

	// The shipping service product has no per-unit outside cost, so an
	// outside order containing only it computes a zero total.
	order, err := orders.CreateOrder(ctx, core.OrderInput{
		CustomerName:      "Zero Cost Co",
		DestinationCity:   "Jeddah",
		ShippingExecution: core.ExecutionCarrier,
		CarrierID:         carrierPtr(seedCarrierExternal),
	}, []core.OrderLineInput{
		{ProductCode: "SRV-SHIP", Quantity: dec("1")},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	po, err := issuer.CreateShippingPO(ctx, order.ID)
	if err != nil {
		t.Fatalf("CreateShippingPO failed: %v", err)
	}
	if po != nil {
		t.Errorf("expected skip for zero total, got PO %d", po.ID)
	}
}
