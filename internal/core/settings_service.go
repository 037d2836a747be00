package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// SettingsService is a key/value configuration store. It replaces ambient
// global parameters with explicit lookups so the calculators stay
// injectable and testable.
type SettingsService interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error

	// GetDecimal parses the value for key as a decimal.
	// A missing key or an unparsable value yields zero, not an error.
	GetDecimal(ctx context.Context, key string) (decimal.Decimal, error)
}

type settingsService struct {
	pool *pgxpool.Pool
}

// NewSettingsService constructs a SettingsService backed by the settings table.
func NewSettingsService(pool *pgxpool.Pool) SettingsService {
	return &settingsService{pool: pool}
}

// Get returns the value for key. A missing key returns a descriptive error.
func (s *settingsService) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		"SELECT value FROM settings WHERE key = $1", key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("setting %q not found", key)
		}
		return "", fmt.Errorf("resolve setting %q: %w", key, err)
	}
	return value, nil
}

// Set upserts the value for key.
func (s *settingsService) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// GetDecimal returns the value for key parsed as a decimal. Missing keys
// and malformed values both read as zero, matching the source's permissive
// parameter lookup.
func (s *settingsService) GetDecimal(ctx context.Context, key string) (decimal.Decimal, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		"SELECT value FROM settings WHERE key = $1", key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("resolve setting %q: %w", key, err)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, nil
	}
	return d, nil
}
