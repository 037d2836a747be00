package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RiyadhShippingCost is the flat per-order cost inside Riyadh: the
// carrier's flat cost when set and nonzero, otherwise the configured
// global fallback.
func RiyadhShippingCost(carrier *ShippingCarrier, fallback decimal.Decimal) decimal.Decimal {
	if carrier != nil && !carrier.CostRiyadhFlat.IsZero() {
		return carrier.CostRiyadhFlat
	}
	return fallback
}

// OutsideShippingCost sums per-unit outside-Riyadh cost × quantity over the
// product lines. Lines whose product has a zero or negative per-unit cost
// contribute nothing.
func OutsideShippingCost(lines []SalesOrderLine) decimal.Decimal {
	var total decimal.Decimal
	for _, line := range lines {
		if line.DisplayType != "" || line.ProductID == nil {
			continue
		}
		if line.OutsideShippingCost.Sign() <= 0 {
			continue
		}
		total = total.Add(line.OutsideShippingCost.Mul(line.Quantity))
	}
	return total
}

// TotalShippingCost picks the cost formula by shipping type.
func TotalShippingCost(shippingType ShippingType, carrier *ShippingCarrier, riyadhFallback decimal.Decimal, lines []SalesOrderLine) decimal.Decimal {
	if shippingType == ShippingRiyadh {
		return RiyadhShippingCost(carrier, riyadhFallback)
	}
	return OutsideShippingCost(lines)
}

// ProductsSummary renders one "name × qty" row per product line, used on
// the pipeline board.
func ProductsSummary(lines []SalesOrderLine) string {
	var rows []string
	for _, line := range lines {
		if line.DisplayType != "" || line.ProductID == nil {
			continue
		}
		rows = append(rows, fmt.Sprintf("%s × %s", line.ProductName, line.Quantity.String()))
	}
	return strings.Join(rows, "\n")
}
