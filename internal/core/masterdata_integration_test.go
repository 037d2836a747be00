package core_test

import (
	"context"
	"testing"

	"sale-ops-pipeline/internal/core"
)

func TestVendorService_CreateAndLookup(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewVendorService(pool)
	ctx := context.Background()

	v, err := svc.CreateVendor(ctx, core.VendorInput{
		Code:  "V-GLASS",
		Name:  "Hejaz Glassworks",
		Email: "sales@hejazglass.example",
	})
	if err != nil {
		t.Fatalf("CreateVendor failed: %v", err)
	}
	if v.Code != "V-GLASS" || !v.IsActive {
		t.Errorf("unexpected vendor %+v", v)
	}

	got, err := svc.GetVendorByCode(ctx, "V-GLASS")
	if err != nil {
		t.Fatalf("GetVendorByCode failed: %v", err)
	}
	if got.ID != v.ID {
		t.Errorf("expected vendor %d, got %d", v.ID, got.ID)
	}

	vendors, err := svc.GetVendors(ctx)
	if err != nil {
		t.Fatalf("GetVendors failed: %v", err)
	}
	// Two seeded vendors plus the new one.
	if len(vendors) != 3 {
		t.Errorf("expected 3 vendors, got %d", len(vendors))
	}

	if _, err := svc.GetVendorByCode(ctx, "V-MISSING"); err == nil {
		t.Error("expected not-found error for unknown vendor code")
	}
}

func TestProductService_PurchaseUnitFallback(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewProductService(pool)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, core.ProductInput{
		Code:      "CHAIR-STD",
		Name:      "Standard Chair",
		ListPrice: dec("450"),
		Unit:      "unit",
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if p.PurchaseUnit != nil {
		t.Errorf("expected nil purchase unit (falls back to unit), got %q", *p.PurchaseUnit)
	}

	cat := seedCategorySofas
	updated, err := svc.UpdateProduct(ctx, p.ID, core.ProductInput{
		Code:                "CHAIR-STD",
		Name:                "Standard Chair",
		CategoryID:          &cat,
		ListPrice:           dec("475"),
		Unit:                "unit",
		PurchaseUnit:        "dozen",
		OutsideShippingCost: dec("30"),
	})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if updated.PurchaseUnit == nil || *updated.PurchaseUnit != "dozen" {
		t.Errorf("expected purchase unit 'dozen', got %v", updated.PurchaseUnit)
	}
	if updated.CategoryName != "Sofas" {
		t.Errorf("expected joined category name, got %q", updated.CategoryName)
	}
	if !updated.OutsideShippingCost.Equal(dec("30")) {
		t.Errorf("expected outside cost 30, got %s", updated.OutsideShippingCost)
	}

	byCode, err := svc.GetProductByCode(ctx, "CHAIR-STD")
	if err != nil {
		t.Fatalf("GetProductByCode failed: %v", err)
	}
	if byCode.ID != p.ID {
		t.Errorf("expected product %d, got %d", p.ID, byCode.ID)
	}
}

func TestCarrierService_DeactivateHidesFromList(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewCarrierService(pool)
	ctx := context.Background()

	carriers, err := svc.GetCarriers(ctx)
	if err != nil {
		t.Fatalf("GetCarriers failed: %v", err)
	}
	if len(carriers) != 2 {
		t.Fatalf("expected 2 seeded carriers, got %d", len(carriers))
	}
	// Ordered by sequence: external (10) before internal (20).
	if carriers[0].ID != seedCarrierExternal || carriers[1].ID != seedCarrierInternal {
		t.Errorf("unexpected carrier order: %+v", carriers)
	}

	if err := svc.DeactivateCarrier(ctx, seedCarrierInternal); err != nil {
		t.Fatalf("DeactivateCarrier failed: %v", err)
	}
	carriers, err = svc.GetCarriers(ctx)
	if err != nil {
		t.Fatalf("GetCarriers failed: %v", err)
	}
	if len(carriers) != 1 || carriers[0].ID != seedCarrierExternal {
		t.Errorf("expected only the external carrier, got %+v", carriers)
	}

	// Deactivated carriers stay loadable by id for existing orders.
	c, err := svc.GetCarrier(ctx, seedCarrierInternal)
	if err != nil {
		t.Fatalf("GetCarrier failed: %v", err)
	}
	if c.IsActive {
		t.Error("expected carrier to be inactive")
	}
}
