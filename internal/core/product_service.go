package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productService struct {
	pool *pgxpool.Pool
}

// NewProductService constructs a ProductService backed by PostgreSQL.
func NewProductService(pool *pgxpool.Pool) ProductService {
	return &productService{pool: pool}
}

func (s *productService) CreateCategory(ctx context.Context, name string) (*ProductCategory, error) {
	if name == "" {
		return nil, NewValidationError("category name is required")
	}
	c := &ProductCategory{}
	err := s.pool.QueryRow(ctx,
		"INSERT INTO product_categories (name) VALUES ($1) RETURNING id, name", name,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, fmt.Errorf("create category %q: %w", name, err)
	}
	return c, nil
}

func (s *productService) GetCategories(ctx context.Context) ([]ProductCategory, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name FROM product_categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer rows.Close()

	var cats []ProductCategory
	for rows.Next() {
		var c ProductCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, nil
}

const productSelect = `
	SELECT p.id, p.code, p.name, p.category_id, COALESCE(c.name, ''),
	       p.list_price, p.unit, p.purchase_unit, p.is_service,
	       p.manufacturing_vendor_id, p.outside_shipping_cost, p.is_active, p.created_at
	FROM products p
	LEFT JOIN product_categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*Product, error) {
	p := &Product{}
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.CategoryID, &p.CategoryName,
		&p.ListPrice, &p.Unit, &p.PurchaseUnit, &p.IsService,
		&p.ManufacturingVendorID, &p.OutsideShippingCost, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var purchaseUnit *string
	if input.PurchaseUnit != "" {
		purchaseUnit = &input.PurchaseUnit
	}

	var id int
	err := s.pool.QueryRow(ctx, `
		INSERT INTO products (code, name, category_id, list_price, unit, purchase_unit,
		                      is_service, manufacturing_vendor_id, outside_shipping_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		input.Code, input.Name, input.CategoryID, input.ListPrice, input.Unit, purchaseUnit,
		input.IsService, input.ManufacturingVendorID, input.OutsideShippingCost,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create product %q: %w", input.Code, err)
	}
	return s.GetProduct(ctx, id)
}

func (s *productService) UpdateProduct(ctx context.Context, id int, input ProductInput) (*Product, error) {
	var purchaseUnit *string
	if input.PurchaseUnit != "" {
		purchaseUnit = &input.PurchaseUnit
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE products
		SET code = $1, name = $2, category_id = $3, list_price = $4, unit = $5, purchase_unit = $6,
		    is_service = $7, manufacturing_vendor_id = $8, outside_shipping_cost = $9
		WHERE id = $10`,
		input.Code, input.Name, input.CategoryID, input.ListPrice, input.Unit, purchaseUnit,
		input.IsService, input.ManufacturingVendorID, input.OutsideShippingCost, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("product %d not found", id)
	}
	return s.GetProduct(ctx, id)
}

func (s *productService) GetProduct(ctx context.Context, id int) (*Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx, productSelect+" WHERE p.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d not found", id)
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *productService) GetProductByCode(ctx context.Context, code string) (*Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx, productSelect+" WHERE p.code = $1", code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %q not found", code)
		}
		return nil, fmt.Errorf("get product %q: %w", code, err)
	}
	return p, nil
}

func (s *productService) GetProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, productSelect+" WHERE p.is_active = true ORDER BY p.code")
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, nil
}
