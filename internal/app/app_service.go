package app

import (
	"context"
	"fmt"
	"strconv"

	"sale-ops-pipeline/internal/core"

	"github.com/shopspring/decimal"
)

// appService implements ApplicationService over the core domain services.
type appService struct {
	orders    core.OrderService
	issuer    *core.ShippingPOIssuer
	vendors   core.VendorService
	products  core.ProductService
	carriers  core.CarrierService
	leadTimes core.LeadTimeService
	stages    core.StageService
	settings  core.SettingsService
}

// NewAppService wires the application facade.
func NewAppService(
	orders core.OrderService,
	issuer *core.ShippingPOIssuer,
	vendors core.VendorService,
	products core.ProductService,
	carriers core.CarrierService,
	leadTimes core.LeadTimeService,
	stages core.StageService,
	settings core.SettingsService,
) ApplicationService {
	return &appService{
		orders:    orders,
		issuer:    issuer,
		vendors:   vendors,
		products:  products,
		carriers:  carriers,
		leadTimes: leadTimes,
		stages:    stages,
		settings:  settings,
	}
}

// resolveOrderID accepts a numeric id or an order number string.
func (s *appService) resolveOrderID(ctx context.Context, ref string) (int, error) {
	if id, err := strconv.Atoi(ref); err == nil {
		return id, nil
	}
	order, err := s.orders.GetOrderByNumber(ctx, ref)
	if err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (s *appService) orderResult(ctx context.Context, order *core.SalesOrder) *OrderResult {
	mfg, shipping := s.orders.CountPOs(ctx, order.ID)
	return &OrderResult{Order: order, ManufacturingPOs: mfg, ShippingPOs: shipping}
}

// parseDecimal reads an optional decimal request field; empty means zero.
func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, core.NewValidationError(fmt.Sprintf("invalid %s: %q", field, value))
	}
	return d, nil
}

func toOrderLineInputs(lines []OrderLineRequest) ([]core.OrderLineInput, error) {
	inputs := make([]core.OrderLineInput, 0, len(lines))
	for i, l := range lines {
		qty, err := parseDecimal("quantity", l.Quantity)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		price, err := parseDecimal("unit_price", l.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		inputs = append(inputs, core.OrderLineInput{
			DisplayType: l.DisplayType,
			Description: l.Description,
			ProductCode: l.ProductCode,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return inputs, nil
}

// ── Sales orders ─────────────────────────────────────────────────────────────

func (s *appService) ListOrders(ctx context.Context, status *string, stageID *int) (*OrderListResult, error) {
	orders, err := s.orders.GetOrders(ctx, status, stageID)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Orders: orders, Count: len(orders)}, nil
}

func (s *appService) GetOrder(ctx context.Context, ref string) (*OrderResult, error) {
	id, err := s.resolveOrderID(ctx, ref)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.orderResult(ctx, order), nil
}

func (s *appService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResult, error) {
	lines, err := toOrderLineInputs(req.Lines)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.CreateOrder(ctx, core.OrderInput{
		CustomerName:             req.CustomerName,
		OrderDate:                req.OrderDate,
		DestinationCity:          req.DestinationCity,
		ShippingExecution:        core.ShippingExecution(req.ShippingExecution),
		CarrierID:                req.CarrierID,
		ShippingVendorID:         req.ShippingVendorID,
		ShippingServiceProductID: req.ShippingServiceProductID,
		StageID:                  req.StageID,
		Notes:                    req.Notes,
	}, lines)
	if err != nil {
		return nil, err
	}
	return s.orderResult(ctx, order), nil
}

func (s *appService) UpdateOrder(ctx context.Context, orderID int, req UpdateOrderRequest) (*OrderResult, error) {
	order, err := s.orders.UpdateOrder(ctx, orderID, core.OrderInput{
		CustomerName:             req.CustomerName,
		OrderDate:                req.OrderDate,
		DestinationCity:          req.DestinationCity,
		ShippingExecution:        core.ShippingExecution(req.ShippingExecution),
		CarrierID:                req.CarrierID,
		ShippingVendorID:         req.ShippingVendorID,
		ShippingServiceProductID: req.ShippingServiceProductID,
		StageID:                  req.StageID,
		Notes:                    req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return s.orderResult(ctx, order), nil
}

func (s *appService) ReplaceOrderLines(ctx context.Context, orderID int, lines []OrderLineRequest) (*OrderResult, error) {
	inputs, err := toOrderLineInputs(lines)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.ReplaceOrderLines(ctx, orderID, inputs)
	if err != nil {
		return nil, err
	}
	return s.orderResult(ctx, order), nil
}

func (s *appService) ConfirmOrder(ctx context.Context, ref string) (*OrderResult, error) {
	id, err := s.resolveOrderID(ctx, ref)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.ConfirmOrder(ctx, id, s.issuer)
	if err != nil {
		return nil, err
	}
	return s.orderResult(ctx, order), nil
}

func (s *appService) CancelOrder(ctx context.Context, ref string) (*OrderResult, error) {
	id, err := s.resolveOrderID(ctx, ref)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.CancelOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.orderResult(ctx, order), nil
}

func (s *appService) CreateShippingPO(ctx context.Context, ref string) (*ShippingPOResult, error) {
	id, err := s.resolveOrderID(ctx, ref)
	if err != nil {
		return nil, err
	}
	po, err := s.issuer.CreateShippingPO(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ShippingPOResult{PurchaseOrder: po, Skipped: po == nil}, nil
}

func (s *appService) ListManufacturingPOs(ctx context.Context, ref string) (*PurchaseOrderListResult, error) {
	id, err := s.resolveOrderID(ctx, ref)
	if err != nil {
		return nil, err
	}
	pos, err := s.orders.GetManufacturingPOs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PurchaseOrderListResult{Orders: pos, Count: len(pos)}, nil
}

func (s *appService) ListShippingPOs(ctx context.Context, ref string) (*PurchaseOrderListResult, error) {
	id, err := s.resolveOrderID(ctx, ref)
	if err != nil {
		return nil, err
	}
	pos, err := s.orders.GetShippingPOs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PurchaseOrderListResult{Orders: pos, Count: len(pos)}, nil
}

func (s *appService) RefreshDeliveryStates(ctx context.Context) (int, error) {
	return s.orders.RefreshDeliveryStates(ctx)
}

// ── Master data ──────────────────────────────────────────────────────────────

func (s *appService) ListVendors(ctx context.Context) (*VendorListResult, error) {
	vendors, err := s.vendors.GetVendors(ctx)
	if err != nil {
		return nil, err
	}
	return &VendorListResult{Vendors: vendors, Count: len(vendors)}, nil
}

func (s *appService) CreateVendor(ctx context.Context, req CreateVendorRequest) (*VendorResult, error) {
	v, err := s.vendors.CreateVendor(ctx, core.VendorInput{
		Code:          req.Code,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		return nil, err
	}
	return &VendorResult{Vendor: v}, nil
}

func (s *appService) ListCategories(ctx context.Context) ([]core.ProductCategory, error) {
	return s.products.GetCategories(ctx)
}

func (s *appService) CreateCategory(ctx context.Context, name string) (*core.ProductCategory, error) {
	return s.products.CreateCategory(ctx, name)
}

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.products.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products, Count: len(products)}, nil
}

func (s *appService) productInput(req ProductRequest) (core.ProductInput, error) {
	listPrice, err := parseDecimal("list_price", req.ListPrice)
	if err != nil {
		return core.ProductInput{}, err
	}
	outsideCost, err := parseDecimal("outside_shipping_cost", req.OutsideShippingCost)
	if err != nil {
		return core.ProductInput{}, err
	}
	unit := req.Unit
	if unit == "" {
		unit = "unit"
	}
	return core.ProductInput{
		Code:                  req.Code,
		Name:                  req.Name,
		CategoryID:            req.CategoryID,
		ListPrice:             listPrice,
		Unit:                  unit,
		PurchaseUnit:          req.PurchaseUnit,
		IsService:             req.IsService,
		ManufacturingVendorID: req.ManufacturingVendorID,
		OutsideShippingCost:   outsideCost,
	}, nil
}

func (s *appService) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResult, error) {
	input, err := s.productInput(req)
	if err != nil {
		return nil, err
	}
	p, err := s.products.CreateProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: p}, nil
}

func (s *appService) UpdateProduct(ctx context.Context, id int, req ProductRequest) (*ProductResult, error) {
	input, err := s.productInput(req)
	if err != nil {
		return nil, err
	}
	p, err := s.products.UpdateProduct(ctx, id, input)
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: p}, nil
}

func (s *appService) ListCarriers(ctx context.Context) ([]core.ShippingCarrier, error) {
	return s.carriers.GetCarriers(ctx)
}

func (s *appService) carrierInput(req CarrierRequest) (core.CarrierInput, error) {
	flat, err := parseDecimal("cost_riyadh_flat", req.CostRiyadhFlat)
	if err != nil {
		return core.CarrierInput{}, err
	}
	return core.CarrierInput{
		Name:             req.Name,
		Sequence:         req.Sequence,
		IsInternal:       req.IsInternal,
		VendorID:         req.VendorID,
		ServiceProductID: req.ServiceProductID,
		CostRiyadhFlat:   flat,
		ShipDaysRiyadh:   req.ShipDaysRiyadh,
		ShipDaysOutside:  req.ShipDaysOutside,
	}, nil
}

func (s *appService) CreateCarrier(ctx context.Context, req CarrierRequest) (*core.ShippingCarrier, error) {
	input, err := s.carrierInput(req)
	if err != nil {
		return nil, err
	}
	return s.carriers.CreateCarrier(ctx, input)
}

func (s *appService) UpdateCarrier(ctx context.Context, id int, req CarrierRequest) (*core.ShippingCarrier, error) {
	input, err := s.carrierInput(req)
	if err != nil {
		return nil, err
	}
	return s.carriers.UpdateCarrier(ctx, id, input)
}

func (s *appService) DeactivateCarrier(ctx context.Context, id int) error {
	return s.carriers.DeactivateCarrier(ctx, id)
}

func (s *appService) ListLeadTimeRules(ctx context.Context) ([]core.ManufacturingLeadTime, error) {
	return s.leadTimes.GetRules(ctx)
}

func (s *appService) CreateLeadTimeRule(ctx context.Context, req LeadTimeRequest) (*core.ManufacturingLeadTime, error) {
	return s.leadTimes.CreateRule(ctx, core.LeadTimeInput{
		CategoryID: req.CategoryID,
		Days:       req.Days,
		Note:       req.Note,
		IsActive:   req.IsActive,
	})
}

func (s *appService) UpdateLeadTimeRule(ctx context.Context, id int, req LeadTimeRequest) (*core.ManufacturingLeadTime, error) {
	return s.leadTimes.UpdateRule(ctx, id, core.LeadTimeInput{
		CategoryID: req.CategoryID,
		Days:       req.Days,
		Note:       req.Note,
		IsActive:   req.IsActive,
	})
}

func (s *appService) DeleteLeadTimeRule(ctx context.Context, id int) error {
	return s.leadTimes.DeleteRule(ctx, id)
}

func (s *appService) ListStages(ctx context.Context) ([]core.OpsStage, error) {
	return s.stages.GetStages(ctx)
}

func (s *appService) stageInput(req StageRequest) core.StageInput {
	return core.StageInput{
		Name:     req.Name,
		Sequence: req.Sequence,
		Fold:     req.Fold,
		IsDone:   req.IsDone,
		Area:     core.StageArea(req.Area),
		Color:    req.Color,
	}
}

func (s *appService) CreateStage(ctx context.Context, req StageRequest) (*core.OpsStage, error) {
	return s.stages.CreateStage(ctx, s.stageInput(req))
}

func (s *appService) UpdateStage(ctx context.Context, id int, req StageRequest) (*core.OpsStage, error) {
	return s.stages.UpdateStage(ctx, id, s.stageInput(req))
}

func (s *appService) DeleteStage(ctx context.Context, id int) error {
	return s.stages.DeleteStage(ctx, id)
}

func (s *appService) MoveOrderToStage(ctx context.Context, orderID, stageID int) error {
	return s.stages.MoveOrderToStage(ctx, orderID, stageID)
}

func (s *appService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.settings.Get(ctx, key)
}

func (s *appService) SetSetting(ctx context.Context, key, value string) error {
	return s.settings.Set(ctx, key, value)
}
