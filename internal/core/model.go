package core

// ShippingType classifies the order destination relative to Riyadh.
type ShippingType string

const (
	ShippingRiyadh  ShippingType = "riyadh"
	ShippingOutside ShippingType = "outside"
)

// ShippingExecution says who performs the delivery.
// Company-driver deliveries never generate a shipping purchase order.
type ShippingExecution string

const (
	ExecutionCompany ShippingExecution = "company"
	ExecutionCarrier ShippingExecution = "carrier"
)

// DeliveryState compares the expected delivery date against today.
// The zero value means no expected date is available.
type DeliveryState string

const (
	DeliveryLate   DeliveryState = "late"
	DeliveryToday  DeliveryState = "today"
	DeliveryFuture DeliveryState = "future"
	DeliveryNone   DeliveryState = ""
)

// POType tags a purchase order with its operational purpose.
type POType string

const (
	POTypeManufacturing POType = "manufacturing"
	POTypeShipping      POType = "shipping"
)

// Sales order statuses.
const (
	OrderStatusDraft     = "DRAFT"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusCancelled = "CANCELLED"
)

// Line display types. A non-empty display type marks a section header or a
// note line, which carries no product and is ignored by every computation.
const (
	DisplayTypeSection = "line_section"
	DisplayTypeNote    = "line_note"
)

// StageArea groups pipeline stages by operational area.
type StageArea string

const (
	AreaManufacturing StageArea = "manufacturing"
	AreaShipping      StageArea = "shipping"
	AreaOther         StageArea = "other"
	AreaDone          StageArea = "done"
)

// SettingRiyadhFlatCost is the settings key for the global fallback flat
// shipping cost inside Riyadh, used when the carrier has no flat cost set.
const SettingRiyadhFlatCost = "shipping.cost_riyadh_flat"
