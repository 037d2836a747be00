package core_test

import (
	"testing"
	"time"

	"sale-ops-pipeline/internal/core"
)

func intPtr(i int) *int { return &i }

func TestManufacturingDays_MaxNotSum(t *testing.T) {
	// Sofas take 10 days, tables 7. Manufacturing runs in parallel, so the
	// order is bounded by the slowest category: 10, not 17.
	days := map[int]int{1: 10, 2: 7}
	lines := []core.SalesOrderLine{
		{ProductID: intPtr(100), CategoryID: intPtr(1)},
		{ProductID: intPtr(101), CategoryID: intPtr(2)},
	}
	if got := core.ManufacturingDays(days, lines); got != 10 {
		t.Errorf("expected 10 days, got %d", got)
	}
}

func TestManufacturingDays_IgnoresNonProductLines(t *testing.T) {
	days := map[int]int{1: 5}
	lines := []core.SalesOrderLine{
		{DisplayType: core.DisplayTypeSection},
		{DisplayType: core.DisplayTypeNote},
		{ProductID: nil},                        // no product resolved
		{ProductID: intPtr(1), CategoryID: nil}, // product without category
		{ProductID: intPtr(2), CategoryID: intPtr(9)}, // category without a rule
	}
	if got := core.ManufacturingDays(days, lines); got != 0 {
		t.Errorf("expected 0 days, got %d", got)
	}
}

func TestManufacturingDays_EmptyOrder(t *testing.T) {
	if got := core.ManufacturingDays(map[int]int{}, nil); got != 0 {
		t.Errorf("expected 0 days for empty order, got %d", got)
	}
}

func TestShippingDays(t *testing.T) {
	external := &core.ShippingCarrier{ShipDaysRiyadh: 1, ShipDaysOutside: 4}
	internal := &core.ShippingCarrier{IsInternal: true, ShipDaysRiyadh: 1, ShipDaysOutside: 4}

	tests := []struct {
		name         string
		execution    core.ShippingExecution
		carrier      *core.ShippingCarrier
		shippingType core.ShippingType
		want         int
	}{
		{"company driver", core.ExecutionCompany, external, core.ShippingOutside, 0},
		{"company driver without carrier", core.ExecutionCompany, nil, core.ShippingRiyadh, 0},
		{"internal carrier", core.ExecutionCarrier, internal, core.ShippingOutside, 0},
		{"carrier riyadh", core.ExecutionCarrier, external, core.ShippingRiyadh, 1},
		{"carrier outside", core.ExecutionCarrier, external, core.ShippingOutside, 4},
		{"no carrier riyadh", core.ExecutionCarrier, nil, core.ShippingRiyadh, 3},
		{"no carrier outside", core.ExecutionCarrier, nil, core.ShippingOutside, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.ShippingDays(tt.execution, tt.carrier, tt.shippingType); got != tt.want {
				t.Errorf("ShippingDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExpectedDeliveryDate(t *testing.T) {
	loc := time.FixedZone("AST", 3*60*60)

	// 2024-01-01 + 5 manufacturing + 3 shipping = 2024-01-09.
	orderDate := time.Date(2024, 1, 1, 15, 42, 7, 0, loc)
	got := core.ExpectedDeliveryDate(&orderDate, loc, 5, 3)
	want := time.Date(2024, 1, 9, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}

	// Time of day is stripped before adding; a late-evening order date must
	// not shift the result by a day.
	evening := time.Date(2024, 1, 1, 23, 59, 59, 0, loc)
	if got := core.ExpectedDeliveryDate(&evening, loc, 5, 3); !got.Equal(want) {
		t.Errorf("expected %s for evening order date, got %s", want, got)
	}

	// Zero lead times return the order date itself.
	if got := core.ExpectedDeliveryDate(&orderDate, loc, 0, 0); !got.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("expected order date for zero lead times, got %s", got)
	}

	// Nil order date falls back to today.
	got = core.ExpectedDeliveryDate(nil, loc, 0, 0)
	ny, nm, nd := time.Now().In(loc).Date()
	if !got.Equal(time.Date(ny, nm, nd, 0, 0, 0, 0, loc)) {
		t.Errorf("expected today for nil order date, got %s", got)
	}
}

func TestExpectedDeliveryDate_CrossesMonth(t *testing.T) {
	loc := time.UTC
	orderDate := time.Date(2024, 1, 28, 0, 0, 0, 0, loc)
	got := core.ExpectedDeliveryDate(&orderDate, loc, 3, 2)
	want := time.Date(2024, 2, 2, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestDeliveryStateOf(t *testing.T) {
	today := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expected *time.Time
		want     core.DeliveryState
	}{
		{"nil expected date", nil, core.DeliveryNone},
		{"yesterday", timePtr(time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)), core.DeliveryLate},
		{"same calendar day, later clock time", timePtr(time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)), core.DeliveryToday},
		{"same calendar day, earlier clock time", timePtr(time.Date(2024, 6, 15, 1, 0, 0, 0, time.UTC)), core.DeliveryToday},
		{"tomorrow", timePtr(time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)), core.DeliveryFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.DeliveryStateOf(tt.expected, today); got != tt.want {
				t.Errorf("DeliveryStateOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
