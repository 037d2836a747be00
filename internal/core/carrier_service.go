package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type carrierService struct {
	pool *pgxpool.Pool
}

// NewCarrierService constructs a CarrierService backed by PostgreSQL.
func NewCarrierService(pool *pgxpool.Pool) CarrierService {
	return &carrierService{pool: pool}
}

const carrierColumns = `id, name, sequence, is_internal, vendor_id, service_product_id,
	       cost_riyadh_flat, ship_days_riyadh, ship_days_outside, is_active, created_at`

func scanCarrier(row pgx.Row) (*ShippingCarrier, error) {
	c := &ShippingCarrier{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Sequence, &c.IsInternal, &c.VendorID, &c.ServiceProductID,
		&c.CostRiyadhFlat, &c.ShipDaysRiyadh, &c.ShipDaysOutside, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCarrier inserts a shipping carrier.
func (s *carrierService) CreateCarrier(ctx context.Context, input CarrierInput) (*ShippingCarrier, error) {
	if input.Name == "" {
		return nil, NewValidationError("carrier name is required")
	}
	c, err := scanCarrier(s.pool.QueryRow(ctx, `
		INSERT INTO shipping_carriers
		            (name, sequence, is_internal, vendor_id, service_product_id,
		             cost_riyadh_flat, ship_days_riyadh, ship_days_outside)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+carrierColumns,
		input.Name, input.Sequence, input.IsInternal, input.VendorID, input.ServiceProductID,
		input.CostRiyadhFlat, input.ShipDaysRiyadh, input.ShipDaysOutside,
	))
	if err != nil {
		return nil, fmt.Errorf("create carrier %q: %w", input.Name, err)
	}
	return c, nil
}

// UpdateCarrier updates a shipping carrier.
func (s *carrierService) UpdateCarrier(ctx context.Context, id int, input CarrierInput) (*ShippingCarrier, error) {
	if input.Name == "" {
		return nil, NewValidationError("carrier name is required")
	}
	c, err := scanCarrier(s.pool.QueryRow(ctx, `
		UPDATE shipping_carriers
		SET name = $1, sequence = $2, is_internal = $3, vendor_id = $4, service_product_id = $5,
		    cost_riyadh_flat = $6, ship_days_riyadh = $7, ship_days_outside = $8
		WHERE id = $9
		RETURNING `+carrierColumns,
		input.Name, input.Sequence, input.IsInternal, input.VendorID, input.ServiceProductID,
		input.CostRiyadhFlat, input.ShipDaysRiyadh, input.ShipDaysOutside, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("carrier %d not found", id)
		}
		return nil, fmt.Errorf("update carrier %d: %w", id, err)
	}
	return c, nil
}

// GetCarrier returns a carrier by id.
func (s *carrierService) GetCarrier(ctx context.Context, id int) (*ShippingCarrier, error) {
	c, err := scanCarrier(s.pool.QueryRow(ctx,
		"SELECT "+carrierColumns+" FROM shipping_carriers WHERE id = $1", id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("carrier %d not found", id)
		}
		return nil, fmt.Errorf("get carrier %d: %w", id, err)
	}
	return c, nil
}

// GetCarriers returns all active carriers ordered by sequence, then id.
func (s *carrierService) GetCarriers(ctx context.Context) ([]ShippingCarrier, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+carrierColumns+" FROM shipping_carriers WHERE is_active = true ORDER BY sequence, id",
	)
	if err != nil {
		return nil, fmt.Errorf("get carriers: %w", err)
	}
	defer rows.Close()

	var carriers []ShippingCarrier
	for rows.Next() {
		c, err := scanCarrier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan carrier: %w", err)
		}
		carriers = append(carriers, *c)
	}
	return carriers, nil
}

// DeactivateCarrier hides a carrier from selection without losing history.
func (s *carrierService) DeactivateCarrier(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE shipping_carriers SET is_active = false WHERE id = $1", id,
	)
	if err != nil {
		return fmt.Errorf("deactivate carrier %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("carrier %d not found", id)
	}
	return nil
}
