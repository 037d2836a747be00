package core

import "strings"

// riyadhNames is the exact-match alias set for the Riyadh destination.
// Arabic entries are compared as-is; Latin entries after trim + lowercase.
var riyadhNames = map[string]struct{}{
	"riyadh":    {},
	"alriyadh":  {},
	"al riyadh": {},
	"الرياض":    {},
	"لرياض":     {},
}

// IsRiyadhCity reports whether a free-text city denotes Riyadh.
// The input is trimmed and lowercased, then matched against the alias set
// or a "riyadh"/"الرياض" substring. Empty input is never Riyadh.
func IsRiyadhCity(city string) bool {
	c := strings.ToLower(strings.TrimSpace(city))
	if c == "" {
		return false
	}
	if _, ok := riyadhNames[c]; ok {
		return true
	}
	return strings.Contains(c, "riyadh") || strings.Contains(c, "الرياض")
}

// ShippingTypeFor maps a destination city to its shipping type.
func ShippingTypeFor(city string) ShippingType {
	if IsRiyadhCity(city) {
		return ShippingRiyadh
	}
	return ShippingOutside
}
