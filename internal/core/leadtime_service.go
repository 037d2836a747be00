package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type leadTimeService struct {
	pool *pgxpool.Pool
}

// NewLeadTimeService constructs a LeadTimeService backed by PostgreSQL.
func NewLeadTimeService(pool *pgxpool.Pool) LeadTimeService {
	return &leadTimeService{pool: pool}
}

// CreateRule inserts a lead-time rule after checking the one-active-rule-
// per-category invariant. The partial unique index on the table backstops
// the check against concurrent writers.
func (s *leadTimeService) CreateRule(ctx context.Context, input LeadTimeInput) (*ManufacturingLeadTime, error) {
	if input.Days < 0 {
		return nil, NewValidationError("manufacturing days must not be negative")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if input.IsActive {
		if err := assertNoActiveRule(ctx, tx, input.CategoryID, 0); err != nil {
			return nil, err
		}
	}

	r := &ManufacturingLeadTime{}
	err = tx.QueryRow(ctx, `
		INSERT INTO manufacturing_lead_times (category_id, days, note, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, category_id, days, COALESCE(note, ''), is_active, created_at`,
		input.CategoryID, input.Days, input.Note, input.IsActive,
	).Scan(&r.ID, &r.CategoryID, &r.Days, &r.Note, &r.IsActive, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create lead-time rule for category %d: %w", input.CategoryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit lead-time rule: %w", err)
	}
	return r, nil
}

// UpdateRule updates a rule, re-checking the active-rule invariant when the
// rule is (or becomes) active.
func (s *leadTimeService) UpdateRule(ctx context.Context, id int, input LeadTimeInput) (*ManufacturingLeadTime, error) {
	if input.Days < 0 {
		return nil, NewValidationError("manufacturing days must not be negative")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if input.IsActive {
		if err := assertNoActiveRule(ctx, tx, input.CategoryID, id); err != nil {
			return nil, err
		}
	}

	r := &ManufacturingLeadTime{}
	err = tx.QueryRow(ctx, `
		UPDATE manufacturing_lead_times
		SET category_id = $1, days = $2, note = $3, is_active = $4
		WHERE id = $5
		RETURNING id, category_id, days, COALESCE(note, ''), is_active, created_at`,
		input.CategoryID, input.Days, input.Note, input.IsActive, id,
	).Scan(&r.ID, &r.CategoryID, &r.Days, &r.Note, &r.IsActive, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("lead-time rule %d not found", id)
		}
		return nil, fmt.Errorf("update lead-time rule %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit lead-time rule update: %w", err)
	}
	return r, nil
}

// assertNoActiveRule rejects a second active rule for the same category.
// excludeID skips the rule being updated.
func assertNoActiveRule(ctx context.Context, q pgxQuerier, categoryID, excludeID int) error {
	var exists bool
	if err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM manufacturing_lead_times
			WHERE category_id = $1 AND is_active = true AND id <> $2
		)`, categoryID, excludeID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check active lead-time rule for category %d: %w", categoryID, err)
	}
	if exists {
		return NewValidationError(
			fmt.Sprintf("an active manufacturing lead-time rule already exists for category %d", categoryID))
	}
	return nil
}

// GetRules returns all rules with their category names, active first.
func (s *leadTimeService) GetRules(ctx context.Context) ([]ManufacturingLeadTime, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.category_id, c.name, r.days, COALESCE(r.note, ''), r.is_active, r.created_at
		FROM manufacturing_lead_times r
		JOIN product_categories c ON c.id = r.category_id
		ORDER BY r.is_active DESC, c.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("get lead-time rules: %w", err)
	}
	defer rows.Close()

	var rules []ManufacturingLeadTime
	for rows.Next() {
		var r ManufacturingLeadTime
		if err := rows.Scan(&r.ID, &r.CategoryID, &r.CategoryName, &r.Days, &r.Note, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead-time rule: %w", err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// DeleteRule removes a rule.
func (s *leadTimeService) DeleteRule(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM manufacturing_lead_times WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete lead-time rule %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lead-time rule %d not found", id)
	}
	return nil
}

// ActiveDaysByCategory returns active rule days keyed by category id.
func (s *leadTimeService) ActiveDaysByCategory(ctx context.Context, categoryIDs []int) (map[int]int, error) {
	days := make(map[int]int, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return days, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT category_id, days
		FROM manufacturing_lead_times
		WHERE is_active = true AND category_id = ANY($1)`,
		categoryIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("get active lead-time days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID, d int
		if err := rows.Scan(&categoryID, &d); err != nil {
			return nil, fmt.Errorf("scan lead-time days: %w", err)
		}
		days[categoryID] = d
	}
	return days, nil
}
