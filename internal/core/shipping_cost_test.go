package core_test

import (
	"testing"

	"sale-ops-pipeline/internal/core"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRiyadhShippingCost(t *testing.T) {
	fallback := dec("50")

	carrier := &core.ShippingCarrier{CostRiyadhFlat: dec("75")}
	if got := core.RiyadhShippingCost(carrier, fallback); !got.Equal(dec("75")) {
		t.Errorf("expected carrier flat cost 75, got %s", got)
	}

	// Zero carrier cost falls back to the configured global cost.
	zeroCarrier := &core.ShippingCarrier{CostRiyadhFlat: decimal.Zero}
	if got := core.RiyadhShippingCost(zeroCarrier, fallback); !got.Equal(fallback) {
		t.Errorf("expected fallback 50, got %s", got)
	}

	if got := core.RiyadhShippingCost(nil, fallback); !got.Equal(fallback) {
		t.Errorf("expected fallback 50 for nil carrier, got %s", got)
	}
}

func TestOutsideShippingCost(t *testing.T) {
	lines := []core.SalesOrderLine{
		{ProductID: intPtr(1), Quantity: dec("2"), OutsideShippingCost: dec("150")},
		{ProductID: intPtr(2), Quantity: dec("3"), OutsideShippingCost: dec("90")},
	}
	// 2×150 + 3×90 = 570
	if got := core.OutsideShippingCost(lines); !got.Equal(dec("570")) {
		t.Errorf("expected 570, got %s", got)
	}
}

func TestOutsideShippingCost_SkipsNonPositiveAndNonProductLines(t *testing.T) {
	lines := []core.SalesOrderLine{
		{DisplayType: core.DisplayTypeSection},
		{ProductID: nil, Quantity: dec("5"), OutsideShippingCost: dec("100")},
		{ProductID: intPtr(1), Quantity: dec("2"), OutsideShippingCost: decimal.Zero},
		{ProductID: intPtr(2), Quantity: dec("2"), OutsideShippingCost: dec("-10")},
		{ProductID: intPtr(3), Quantity: dec("4"), OutsideShippingCost: dec("25")},
	}
	// Only the last line counts: 4×25 = 100.
	if got := core.OutsideShippingCost(lines); !got.Equal(dec("100")) {
		t.Errorf("expected 100, got %s", got)
	}
}

func TestTotalShippingCost(t *testing.T) {
	carrier := &core.ShippingCarrier{CostRiyadhFlat: dec("75")}
	fallback := dec("50")
	lines := []core.SalesOrderLine{
		{ProductID: intPtr(1), Quantity: dec("2"), OutsideShippingCost: dec("150")},
	}

	// Inside Riyadh the per-unit line costs are irrelevant.
	if got := core.TotalShippingCost(core.ShippingRiyadh, carrier, fallback, lines); !got.Equal(dec("75")) {
		t.Errorf("riyadh: expected 75, got %s", got)
	}
	// Outside Riyadh the carrier flat cost is irrelevant.
	if got := core.TotalShippingCost(core.ShippingOutside, carrier, fallback, lines); !got.Equal(dec("300")) {
		t.Errorf("outside: expected 300, got %s", got)
	}
}

func TestProductsSummary(t *testing.T) {
	lines := []core.SalesOrderLine{
		{DisplayType: core.DisplayTypeSection},
		{ProductID: intPtr(1), ProductName: "Three-Seat Sofa", Quantity: dec("2")},
		{ProductID: intPtr(2), ProductName: "Dining Table", Quantity: dec("1.5")},
		{DisplayType: core.DisplayTypeNote},
	}
	want := "Three-Seat Sofa × 2\nDining Table × 1.5"
	if got := core.ProductsSummary(lines); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if got := core.ProductsSummary(nil); got != "" {
		t.Errorf("expected empty summary, got %q", got)
	}
}
