package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PurchaseOrderService manages purchase orders and the count/list queries
// the pipeline exposes per sales order.
type PurchaseOrderService interface {
	// CreatePO creates a purchase order with its lines in one transaction.
	CreatePO(ctx context.Context, vendorID int, origin string, saleOrderID *int, poType *POType, lines []PurchaseOrderLineInput, notes string) (*PurchaseOrder, error)

	GetPO(ctx context.Context, poID int) (*PurchaseOrder, error)

	// GetPOsForSaleOrder lists purchase orders originating from a sales
	// order, optionally restricted to one type.
	GetPOsForSaleOrder(ctx context.Context, saleOrderID int, poType *POType) ([]PurchaseOrder, error)

	// CountPOsForSaleOrder counts purchase orders of the given type
	// attributed to a sales order.
	CountPOsForSaleOrder(ctx context.Context, saleOrderID int, poType POType) (int, error)
}

type purchaseOrderService struct {
	pool *pgxpool.Pool
}

// NewPurchaseOrderService constructs a PurchaseOrderService backed by PostgreSQL.
func NewPurchaseOrderService(pool *pgxpool.Pool) PurchaseOrderService {
	return &purchaseOrderService{pool: pool}
}

// CreatePO creates a new DRAFT purchase order with its lines. The header
// and every line commit together or not at all.
func (s *purchaseOrderService) CreatePO(ctx context.Context, vendorID int, origin string, saleOrderID *int, poType *POType, lines []PurchaseOrderLineInput, notes string) (*PurchaseOrder, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("purchase order must have at least one line")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var vendorExists bool
	if err := tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM vendors WHERE id = $1 AND is_active = true)",
		vendorID,
	).Scan(&vendorExists); err != nil {
		return nil, fmt.Errorf("validate vendor: %w", err)
	}
	if !vendorExists {
		return nil, fmt.Errorf("vendor %d not found", vendorID)
	}

	var total decimal.Decimal
	for _, l := range lines {
		total = total.Add(l.Quantity.Mul(l.UnitCost))
	}

	var toNotes *string
	if notes != "" {
		toNotes = &notes
	}

	var poID int
	if err := tx.QueryRow(ctx, `
		INSERT INTO purchase_orders (vendor_id, status, origin, sale_order_id, po_type, total, notes)
		VALUES ($1, 'DRAFT', $2, $3, $4, $5, $6)
		RETURNING id`,
		vendorID, origin, saleOrderID, poType, total, toNotes,
	).Scan(&poID); err != nil {
		return nil, fmt.Errorf("insert purchase order: %w", err)
	}

	for i, l := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO purchase_order_lines
			            (order_id, line_number, product_id, description, quantity, unit_cost, unit, planned_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			poID, i+1, l.ProductID, l.Description, l.Quantity, l.UnitCost, l.Unit, l.PlannedDate,
		); err != nil {
			return nil, fmt.Errorf("insert PO line %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit purchase order: %w", err)
	}

	return s.GetPO(ctx, poID)
}

const poSelect = `
	SELECT po.id, po.vendor_id, v.code, v.name, po.status, po.origin,
	       po.sale_order_id, po.po_type, po.total, COALESCE(po.notes, ''), po.created_at
	FROM purchase_orders po
	JOIN vendors v ON v.id = po.vendor_id`

func scanPO(row pgx.Row) (*PurchaseOrder, error) {
	po := &PurchaseOrder{}
	err := row.Scan(
		&po.ID, &po.VendorID, &po.VendorCode, &po.VendorName, &po.Status, &po.Origin,
		&po.SaleOrderID, &po.POType, &po.Total, &po.Notes, &po.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return po, nil
}

// GetPO returns a purchase order by its internal ID, including all lines.
func (s *purchaseOrderService) GetPO(ctx context.Context, poID int) (*PurchaseOrder, error) {
	po, err := scanPO(s.pool.QueryRow(ctx, poSelect+" WHERE po.id = $1", poID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("purchase order %d not found", poID)
		}
		return nil, fmt.Errorf("get purchase order %d: %w", poID, err)
	}

	lines, err := s.fetchLines(ctx, poID)
	if err != nil {
		return nil, err
	}
	po.Lines = lines
	return po, nil
}

// GetPOsForSaleOrder lists purchase orders attributed to a sales order.
func (s *purchaseOrderService) GetPOsForSaleOrder(ctx context.Context, saleOrderID int, poType *POType) ([]PurchaseOrder, error) {
	query := poSelect + " WHERE po.sale_order_id = $1"
	args := []any{saleOrderID}
	if poType != nil {
		query += " AND po.po_type = $2"
		args = append(args, *poType)
	}
	query += " ORDER BY po.created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders for sale order %d: %w", saleOrderID, err)
	}
	defer rows.Close()

	var orders []PurchaseOrder
	for rows.Next() {
		po, err := scanPO(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, *po)
	}
	return orders, nil
}

// CountPOsForSaleOrder counts purchase orders of one type for a sales order.
func (s *purchaseOrderService) CountPOsForSaleOrder(ctx context.Context, saleOrderID int, poType POType) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM purchase_orders WHERE sale_order_id = $1 AND po_type = $2",
		saleOrderID, poType,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s purchase orders for sale order %d: %w", poType, saleOrderID, err)
	}
	return n, nil
}

// fetchLines returns all lines for a purchase order.
func (s *purchaseOrderService) fetchLines(ctx context.Context, poID int) ([]PurchaseOrderLine, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT pol.id, pol.order_id, pol.line_number,
		       pol.product_id, p.code,
		       pol.description, pol.quantity, pol.unit_cost, pol.unit, pol.planned_date
		FROM purchase_order_lines pol
		LEFT JOIN products p ON p.id = pol.product_id
		WHERE pol.order_id = $1
		ORDER BY pol.line_number`,
		poID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch PO lines for order %d: %w", poID, err)
	}
	defer rows.Close()

	var lines []PurchaseOrderLine
	for rows.Next() {
		var l PurchaseOrderLine
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.LineNumber,
			&l.ProductID, &l.ProductCode,
			&l.Description, &l.Quantity, &l.UnitCost, &l.Unit, &l.PlannedDate,
		); err != nil {
			return nil, fmt.Errorf("scan PO line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}
