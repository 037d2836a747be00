package app

import (
	"context"

	"sale-ops-pipeline/internal/core"
)

// ApplicationService is the single interface all adapters call. It
// decouples presentation from business logic; implementations contain no
// display logic of any kind.
type ApplicationService interface {
	// ── Sales orders ─────────────────────────────────────────────────────────

	ListOrders(ctx context.Context, status *string, stageID *int) (*OrderListResult, error)
	GetOrder(ctx context.Context, ref string) (*OrderResult, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResult, error)
	UpdateOrder(ctx context.Context, orderID int, req UpdateOrderRequest) (*OrderResult, error)
	ReplaceOrderLines(ctx context.Context, orderID int, lines []OrderLineRequest) (*OrderResult, error)

	// ConfirmOrder transitions a DRAFT order to CONFIRMED and attempts
	// shipping-PO issuance; issuance failures are logged, never returned.
	ConfirmOrder(ctx context.Context, ref string) (*OrderResult, error)
	CancelOrder(ctx context.Context, ref string) (*OrderResult, error)

	// CreateShippingPO runs the issuance rules standalone. Unlike the
	// confirmation path, missing vendor/service-product validation errors
	// surface to the caller.
	CreateShippingPO(ctx context.Context, ref string) (*ShippingPOResult, error)

	// ListManufacturingPOs / ListShippingPOs back the per-order PO views.
	ListManufacturingPOs(ctx context.Context, ref string) (*PurchaseOrderListResult, error)
	ListShippingPOs(ctx context.Context, ref string) (*PurchaseOrderListResult, error)

	// RefreshDeliveryStates recomputes the late/today/future state of all
	// non-cancelled orders against today.
	RefreshDeliveryStates(ctx context.Context) (int, error)

	// ── Master data ──────────────────────────────────────────────────────────

	ListVendors(ctx context.Context) (*VendorListResult, error)
	CreateVendor(ctx context.Context, req CreateVendorRequest) (*VendorResult, error)

	ListCategories(ctx context.Context) ([]core.ProductCategory, error)
	CreateCategory(ctx context.Context, name string) (*core.ProductCategory, error)

	ListProducts(ctx context.Context) (*ProductListResult, error)
	CreateProduct(ctx context.Context, req ProductRequest) (*ProductResult, error)
	UpdateProduct(ctx context.Context, id int, req ProductRequest) (*ProductResult, error)

	ListCarriers(ctx context.Context) ([]core.ShippingCarrier, error)
	CreateCarrier(ctx context.Context, req CarrierRequest) (*core.ShippingCarrier, error)
	UpdateCarrier(ctx context.Context, id int, req CarrierRequest) (*core.ShippingCarrier, error)
	DeactivateCarrier(ctx context.Context, id int) error

	ListLeadTimeRules(ctx context.Context) ([]core.ManufacturingLeadTime, error)
	CreateLeadTimeRule(ctx context.Context, req LeadTimeRequest) (*core.ManufacturingLeadTime, error)
	UpdateLeadTimeRule(ctx context.Context, id int, req LeadTimeRequest) (*core.ManufacturingLeadTime, error)
	DeleteLeadTimeRule(ctx context.Context, id int) error

	ListStages(ctx context.Context) ([]core.OpsStage, error)
	CreateStage(ctx context.Context, req StageRequest) (*core.OpsStage, error)
	UpdateStage(ctx context.Context, id int, req StageRequest) (*core.OpsStage, error)
	DeleteStage(ctx context.Context, id int) error
	MoveOrderToStage(ctx context.Context, orderID, stageID int) error

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}
