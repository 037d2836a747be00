package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService manages the sales order lifecycle. Every mutating operation
// ends by recomputing and storing the order's operational fields (shipping
// type, expected delivery date, delivery state, products summary).
type OrderService interface {
	CreateOrder(ctx context.Context, input OrderInput, lines []OrderLineInput) (*SalesOrder, error)
	// UpdateOrder edits the header fields of a DRAFT or CONFIRMED order.
	UpdateOrder(ctx context.Context, orderID int, input OrderInput) (*SalesOrder, error)
	// ReplaceOrderLines swaps the full line set of an order.
	ReplaceOrderLines(ctx context.Context, orderID int, lines []OrderLineInput) (*SalesOrder, error)

	// ConfirmOrder transitions DRAFT → CONFIRMED, then attempts shipping-PO
	// issuance through issuer. Issuance failures are logged, never raised:
	// confirmation succeeds regardless. Pass issuer=nil to skip issuance.
	ConfirmOrder(ctx context.Context, orderID int, issuer *ShippingPOIssuer) (*SalesOrder, error)
	// CancelOrder transitions DRAFT → CANCELLED.
	CancelOrder(ctx context.Context, orderID int) (*SalesOrder, error)

	GetOrder(ctx context.Context, orderID int) (*SalesOrder, error)
	GetOrders(ctx context.Context, status *string, stageID *int) ([]SalesOrder, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)

	// CountPOs returns the manufacturing and shipping PO counts for an
	// order. Count failures are logged and reported as zeros.
	CountPOs(ctx context.Context, orderID int) (mfg int, shipping int)

	// GetManufacturingPOs and GetShippingPOs back the stat-button views:
	// purchase orders filtered by originating order and type.
	GetManufacturingPOs(ctx context.Context, orderID int) ([]PurchaseOrder, error)
	GetShippingPOs(ctx context.Context, orderID int) ([]PurchaseOrder, error)

	// RefreshDeliveryStates recomputes delivery_state for all non-cancelled
	// orders against today and returns how many rows changed.
	RefreshDeliveryStates(ctx context.Context) (int, error)
}

type orderService struct {
	pool      *pgxpool.Pool
	leadTimes LeadTimeService
	pos       PurchaseOrderService
	loc       *time.Location
	log       *zap.Logger
}

// NewOrderService constructs an OrderService. loc is the calendar context
// used for order-date truncation and "today" comparisons.
func NewOrderService(pool *pgxpool.Pool, leadTimes LeadTimeService, pos PurchaseOrderService, loc *time.Location, log *zap.Logger) OrderService {
	return &orderService{pool: pool, leadTimes: leadTimes, pos: pos, loc: loc, log: log}
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, enabling shared query helpers.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgxRowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx (for Query).
type pgxRowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *orderService) CreateOrder(ctx context.Context, input OrderInput, lines []OrderLineInput) (*SalesOrder, error) {
	if input.CustomerName == "" {
		return nil, NewValidationError("customer name is required")
	}
	execution := input.ShippingExecution
	if execution == "" {
		execution = ExecutionCarrier
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderID int
	err = tx.QueryRow(ctx, `
		INSERT INTO sales_orders
		            (customer_name, status, order_date, destination_city, shipping_execution,
		             carrier_id, shipping_vendor_id, shipping_service_product_id, stage_id, notes)
		VALUES ($1, 'DRAFT', $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		input.CustomerName, input.OrderDate, input.DestinationCity, execution,
		input.CarrierID, input.ShippingVendorID, input.ShippingServiceProductID,
		input.StageID, input.Notes,
	).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("insert sales order: %w", err)
	}

	// Order number is derived from the id; assigned in the same transaction.
	if _, err := tx.Exec(ctx,
		"UPDATE sales_orders SET order_number = 'SO' || LPAD($1::text, 5, '0') WHERE id = $1",
		orderID,
	); err != nil {
		return nil, fmt.Errorf("assign order number: %w", err)
	}

	if err := insertOrderLines(ctx, tx, orderID, lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order creation: %w", err)
	}

	if err := s.recompute(ctx, orderID); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}

// insertOrderLines resolves products by code and writes the line rows.
func insertOrderLines(ctx context.Context, tx pgx.Tx, orderID int, lines []OrderLineInput) error {
	for i, input := range lines {
		if input.DisplayType != "" {
			if _, err := tx.Exec(ctx, `
				INSERT INTO sales_order_lines (order_id, line_number, display_type, description, quantity, unit_price)
				VALUES ($1, $2, $3, $4, 0, 0)`,
				orderID, i+1, input.DisplayType, input.Description,
			); err != nil {
				return fmt.Errorf("insert order line %d: %w", i+1, err)
			}
			continue
		}

		var productID int
		var listPrice decimal.Decimal
		err := tx.QueryRow(ctx,
			"SELECT id, list_price FROM products WHERE code = $1 AND is_active = true",
			input.ProductCode,
		).Scan(&productID, &listPrice)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("line %d: product %q not found", i+1, input.ProductCode)
			}
			return fmt.Errorf("line %d: resolve product: %w", i+1, err)
		}

		price := input.UnitPrice
		if price.IsZero() {
			price = listPrice
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO sales_order_lines (order_id, line_number, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			orderID, i+1, productID, input.Quantity, price,
		); err != nil {
			return fmt.Errorf("insert order line %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *orderService) UpdateOrder(ctx context.Context, orderID int, input OrderInput) (*SalesOrder, error) {
	if input.CustomerName == "" {
		return nil, NewValidationError("customer name is required")
	}
	execution := input.ShippingExecution
	if execution == "" {
		execution = ExecutionCarrier
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE sales_orders
		SET customer_name = $1, order_date = $2, destination_city = $3, shipping_execution = $4,
		    carrier_id = $5, shipping_vendor_id = $6, shipping_service_product_id = $7,
		    stage_id = $8, notes = $9
		WHERE id = $10 AND status <> 'CANCELLED'`,
		input.CustomerName, input.OrderDate, input.DestinationCity, execution,
		input.CarrierID, input.ShippingVendorID, input.ShippingServiceProductID,
		input.StageID, input.Notes, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("update order %d: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("order %d not found or cancelled", orderID)
	}

	if err := s.recompute(ctx, orderID); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}

func (s *orderService) ReplaceOrderLines(ctx context.Context, orderID int, lines []OrderLineInput) (*SalesOrder, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx,
		"SELECT status FROM sales_orders WHERE id = $1 FOR UPDATE", orderID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("fetch order %d: %w", orderID, err)
	}
	if status == OrderStatusCancelled {
		return nil, NewValidationError(fmt.Sprintf("order %d is cancelled", orderID))
	}

	if _, err := tx.Exec(ctx, "DELETE FROM sales_order_lines WHERE order_id = $1", orderID); err != nil {
		return nil, fmt.Errorf("clear order lines: %w", err)
	}
	if err := insertOrderLines(ctx, tx, orderID, lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order lines: %w", err)
	}

	if err := s.recompute(ctx, orderID); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}

func (s *orderService) ConfirmOrder(ctx context.Context, orderID int, issuer *ShippingPOIssuer) (*SalesOrder, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status, orderNumber string
	err = tx.QueryRow(ctx,
		"SELECT status, COALESCE(order_number, '') FROM sales_orders WHERE id = $1 FOR UPDATE",
		orderID,
	).Scan(&status, &orderNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("fetch order %d: %w", orderID, err)
	}

	switch status {
	case OrderStatusDraft:
		if _, err := tx.Exec(ctx,
			"UPDATE sales_orders SET status = 'CONFIRMED', confirmed_at = NOW() WHERE id = $1",
			orderID,
		); err != nil {
			return nil, fmt.Errorf("confirm order %d: %w", orderID, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("commit order confirmation: %w", err)
		}
	case OrderStatusConfirmed:
		// Re-confirming is a no-op; the issuer's duplicate check below
		// keeps the shipping PO single.
		_ = tx.Rollback(ctx)
	default:
		return nil, fmt.Errorf("order %d cannot be confirmed: status is %s (must be DRAFT)", orderID, status)
	}

	// Shipping PO issuance is secondary: its failure never fails the
	// confirmation that already committed.
	if issuer != nil {
		if _, err := issuer.CreateShippingPO(ctx, orderID); err != nil {
			s.log.Error("failed to create shipping PO on confirmation",
				zap.String("order", orderNumber), zap.Int("order_id", orderID), zap.Error(err))
		}
	}

	return s.GetOrder(ctx, orderID)
}

func (s *orderService) CancelOrder(ctx context.Context, orderID int) (*SalesOrder, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx,
		"SELECT status FROM sales_orders WHERE id = $1 FOR UPDATE", orderID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("fetch order %d: %w", orderID, err)
	}
	if status != OrderStatusDraft {
		return nil, fmt.Errorf("order %d cannot be cancelled: status is %s (only DRAFT orders can be cancelled)", orderID, status)
	}

	if _, err := tx.Exec(ctx,
		"UPDATE sales_orders SET status = 'CANCELLED' WHERE id = $1", orderID,
	); err != nil {
		return nil, fmt.Errorf("cancel order %d: %w", orderID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel order: %w", err)
	}
	return s.GetOrder(ctx, orderID)
}

// ── Recomputation ────────────────────────────────────────────────────────────

// recompute derives and stores the operational fields of an order from its
// current header, lines and carrier. Lead-time lookup failures are logged
// and read as zero so the triggering edit always goes through.
func (s *orderService) recompute(ctx context.Context, orderID int) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	shippingType := ShippingTypeFor(order.DestinationCity)

	var carrier *ShippingCarrier
	if order.CarrierID != nil {
		carrier, err = s.loadCarrier(ctx, *order.CarrierID)
		if err != nil {
			s.log.Error("failed to load carrier for delivery computation",
				zap.String("order", order.OrderNumber), zap.Error(err))
			carrier = nil
		}
	}

	mfgDays := 0
	daysByCategory, err := s.leadTimes.ActiveDaysByCategory(ctx, orderCategoryIDs(order.Lines))
	if err != nil {
		s.log.Error("failed to compute manufacturing days",
			zap.String("order", order.OrderNumber), zap.Error(err))
	} else {
		mfgDays = ManufacturingDays(daysByCategory, order.Lines)
	}

	shipDays := ShippingDays(order.ShippingExecution, carrier, shippingType)

	expected := ExpectedDeliveryDate(order.OrderDate, s.loc, mfgDays, shipDays)
	state := DeliveryStateOf(&expected, time.Now().In(s.loc))
	summary := ProductsSummary(order.Lines)

	if _, err := s.pool.Exec(ctx, `
		UPDATE sales_orders
		SET shipping_type = $1, expected_delivery_date = $2, delivery_state = $3, products_summary = $4
		WHERE id = $5`,
		shippingType, expected, state, summary, orderID,
	); err != nil {
		return fmt.Errorf("store computed fields for order %d: %w", orderID, err)
	}
	return nil
}

// orderCategoryIDs collects the distinct category ids of product lines.
func orderCategoryIDs(lines []SalesOrderLine) []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, l := range lines {
		if l.DisplayType != "" || l.ProductID == nil || l.CategoryID == nil {
			continue
		}
		if _, ok := seen[*l.CategoryID]; ok {
			continue
		}
		seen[*l.CategoryID] = struct{}{}
		ids = append(ids, *l.CategoryID)
	}
	return ids
}

func (s *orderService) loadCarrier(ctx context.Context, carrierID int) (*ShippingCarrier, error) {
	c, err := scanCarrier(s.pool.QueryRow(ctx,
		"SELECT "+carrierColumns+" FROM shipping_carriers WHERE id = $1", carrierID,
	))
	if err != nil {
		return nil, fmt.Errorf("load carrier %d: %w", carrierID, err)
	}
	return c, nil
}

// RefreshDeliveryStates re-derives delivery_state for all non-cancelled
// orders from their stored expected delivery date and today's date.
func (s *orderService) RefreshDeliveryStates(ctx context.Context) (int, error) {
	today := time.Now().In(s.loc).Format("2006-01-02")
	tag, err := s.pool.Exec(ctx, `
		UPDATE sales_orders
		SET delivery_state = CASE
			WHEN expected_delivery_date IS NULL THEN ''
			WHEN expected_delivery_date::date < $1::date THEN 'late'
			WHEN expected_delivery_date::date = $1::date THEN 'today'
			ELSE 'future'
		END
		WHERE status <> 'CANCELLED'`,
		today,
	)
	if err != nil {
		return 0, fmt.Errorf("refresh delivery states: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ── PO counters and views ────────────────────────────────────────────────────

// CountPOs returns the manufacturing/shipping PO counts for the stat
// buttons. A failed count query is logged and reported as zero so the view
// never breaks.
func (s *orderService) CountPOs(ctx context.Context, orderID int) (int, int) {
	mfg, err := s.pos.CountPOsForSaleOrder(ctx, orderID, POTypeManufacturing)
	if err != nil {
		s.log.Error("failed counting manufacturing POs", zap.Int("order_id", orderID), zap.Error(err))
		mfg = 0
	}
	shipping, err := s.pos.CountPOsForSaleOrder(ctx, orderID, POTypeShipping)
	if err != nil {
		s.log.Error("failed counting shipping POs", zap.Int("order_id", orderID), zap.Error(err))
		shipping = 0
	}
	return mfg, shipping
}

func (s *orderService) GetManufacturingPOs(ctx context.Context, orderID int) ([]PurchaseOrder, error) {
	t := POTypeManufacturing
	return s.pos.GetPOsForSaleOrder(ctx, orderID, &t)
}

func (s *orderService) GetShippingPOs(ctx context.Context, orderID int) ([]PurchaseOrder, error) {
	t := POTypeShipping
	return s.pos.GetPOsForSaleOrder(ctx, orderID, &t)
}

// ── Queries ──────────────────────────────────────────────────────────────────

const orderSelect = `
	SELECT so.id, COALESCE(so.order_number, ''), so.customer_name, so.status,
	       so.order_date, so.destination_city, so.shipping_execution,
	       so.carrier_id, COALESCE(sc.name, ''),
	       so.shipping_vendor_id, so.shipping_service_product_id,
	       so.stage_id, COALESCE(st.name, ''), COALESCE(so.notes, ''),
	       so.shipping_type, so.expected_delivery_date, so.delivery_state,
	       COALESCE(so.products_summary, ''),
	       so.created_at, so.confirmed_at
	FROM sales_orders so
	LEFT JOIN shipping_carriers sc ON sc.id = so.carrier_id
	LEFT JOIN ops_stages st ON st.id = so.stage_id`

func scanOrder(row pgx.Row) (*SalesOrder, error) {
	o := &SalesOrder{}
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.Status,
		&o.OrderDate, &o.DestinationCity, &o.ShippingExecution,
		&o.CarrierID, &o.CarrierName,
		&o.ShippingVendorID, &o.ShippingServiceProductID,
		&o.StageID, &o.StageName, &o.Notes,
		&o.ShippingType, &o.ExpectedDeliveryDate, &o.DeliveryState,
		&o.ProductsSummary,
		&o.CreatedAt, &o.ConfirmedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID int) (*SalesOrder, error) {
	o, err := scanOrder(s.pool.QueryRow(ctx, orderSelect+" WHERE so.id = $1", orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %d not found", orderID)
		}
		return nil, fmt.Errorf("fetch order %d: %w", orderID, err)
	}

	lines, err := fetchOrderLinesQ(ctx, s.pool, orderID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

func (s *orderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*SalesOrder, error) {
	var orderID int
	err := s.pool.QueryRow(ctx,
		"SELECT id FROM sales_orders WHERE order_number = $1", orderNumber,
	).Scan(&orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %s not found", orderNumber)
		}
		return nil, fmt.Errorf("lookup order by number: %w", err)
	}
	return s.GetOrder(ctx, orderID)
}

func (s *orderService) GetOrders(ctx context.Context, status *string, stageID *int) ([]SalesOrder, error) {
	query := orderSelect + " WHERE 1=1"
	var args []any
	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(" AND so.status = $%d", len(args))
	}
	if stageID != nil {
		args = append(args, *stageID)
		query += fmt.Sprintf(" AND so.stage_id = $%d", len(args))
	}
	query += " ORDER BY so.id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []SalesOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func fetchOrderLinesQ(ctx context.Context, q pgxRowQuerier, orderID int) ([]SalesOrderLine, error) {
	rows, err := q.Query(ctx, `
		SELECT sol.id, sol.order_id, sol.line_number, COALESCE(sol.display_type, ''),
		       sol.product_id, COALESCE(p.name, sol.description, ''), p.category_id,
		       sol.quantity, sol.unit_price, COALESCE(p.outside_shipping_cost, 0)
		FROM sales_order_lines sol
		LEFT JOIN products p ON p.id = sol.product_id
		WHERE sol.order_id = $1
		ORDER BY sol.line_number`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	var lines []SalesOrderLine
	for rows.Next() {
		var l SalesOrderLine
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.LineNumber, &l.DisplayType,
			&l.ProductID, &l.ProductName, &l.CategoryID,
			&l.Quantity, &l.UnitPrice, &l.OutsideShippingCost,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}
