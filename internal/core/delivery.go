package core

import "time"

// fallbackShipDays is used when shipping is by carrier but no carrier is
// selected. The source configuration uses 3 days for both the Riyadh and
// outside branches, and that behavior is preserved literally.
const fallbackShipDays = 3

// ManufacturingDays returns the manufacturing lead time for a set of order
// lines: the maximum rule days over the distinct categories of product
// lines. Manufacturing for different product lines proceeds in parallel, so
// the order is bounded by the slowest category, not the sum. Lines without
// a product, section/note lines, and categories without an active rule
// contribute nothing; with no match the result is 0.
func ManufacturingDays(daysByCategory map[int]int, lines []SalesOrderLine) int {
	maxDays := 0
	for _, line := range lines {
		if line.DisplayType != "" || line.ProductID == nil || line.CategoryID == nil {
			continue
		}
		if d, ok := daysByCategory[*line.CategoryID]; ok && d > maxDays {
			maxDays = d
		}
	}
	return maxDays
}

// ShippingDays returns the shipping lead time for an order:
//   - company-driver execution: 0
//   - selected carrier flagged internal: 0
//   - selected carrier: its Riyadh or outside days by shipping type
//   - no carrier: the fallback constant, regardless of shipping type
func ShippingDays(execution ShippingExecution, carrier *ShippingCarrier, shippingType ShippingType) int {
	if execution == ExecutionCompany {
		return 0
	}
	if carrier != nil && carrier.IsInternal {
		return 0
	}
	if carrier != nil {
		if shippingType == ShippingRiyadh {
			return carrier.ShipDaysRiyadh
		}
		return carrier.ShipDaysOutside
	}
	return fallbackShipDays
}

// ExpectedDeliveryDate adds manufacturing and shipping days to the order
// date. The order date is converted to a calendar date in loc (time of day
// stripped); a nil order date falls back to today in loc. Plain calendar
// days, no weekend or holiday exclusion.
func ExpectedDeliveryDate(orderDate *time.Time, loc *time.Location, mfgDays, shipDays int) time.Time {
	var base time.Time
	if orderDate != nil {
		base = orderDate.In(loc)
	} else {
		base = time.Now().In(loc)
	}
	y, m, d := base.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return day.AddDate(0, 0, mfgDays+shipDays)
}

// DeliveryStateOf derives the late/today/future state by comparing the
// expected delivery date to today's calendar date in the same location.
// A nil expected date yields DeliveryNone.
func DeliveryStateOf(expected *time.Time, today time.Time) DeliveryState {
	if expected == nil {
		return DeliveryNone
	}
	ey, em, ed := expected.Date()
	ty, tm, td := today.Date()
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	switch {
	case e.Before(t):
		return DeliveryLate
	case e.Equal(t):
		return DeliveryToday
	default:
		return DeliveryFuture
	}
}
