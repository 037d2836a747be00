package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type stageService struct {
	pool *pgxpool.Pool
}

// NewStageService constructs a StageService backed by PostgreSQL.
func NewStageService(pool *pgxpool.Pool) StageService {
	return &stageService{pool: pool}
}

func (s *stageService) CreateStage(ctx context.Context, input StageInput) (*OpsStage, error) {
	if input.Name == "" {
		return nil, NewValidationError("stage name is required")
	}
	area := input.Area
	if area == "" {
		area = AreaOther
	}
	st := &OpsStage{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO ops_stages (name, sequence, fold, is_done, area, color)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, sequence, fold, is_done, area, color`,
		input.Name, input.Sequence, input.Fold, input.IsDone, area, input.Color,
	).Scan(&st.ID, &st.Name, &st.Sequence, &st.Fold, &st.IsDone, &st.Area, &st.Color)
	if err != nil {
		return nil, fmt.Errorf("create stage %q: %w", input.Name, err)
	}
	return st, nil
}

func (s *stageService) UpdateStage(ctx context.Context, id int, input StageInput) (*OpsStage, error) {
	if input.Name == "" {
		return nil, NewValidationError("stage name is required")
	}
	st := &OpsStage{}
	err := s.pool.QueryRow(ctx, `
		UPDATE ops_stages
		SET name = $1, sequence = $2, fold = $3, is_done = $4, area = $5, color = $6
		WHERE id = $7
		RETURNING id, name, sequence, fold, is_done, area, color`,
		input.Name, input.Sequence, input.Fold, input.IsDone, input.Area, input.Color, id,
	).Scan(&st.ID, &st.Name, &st.Sequence, &st.Fold, &st.IsDone, &st.Area, &st.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("stage %d not found", id)
		}
		return nil, fmt.Errorf("update stage %d: %w", id, err)
	}
	return st, nil
}

func (s *stageService) GetStages(ctx context.Context) ([]OpsStage, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, sequence, fold, is_done, area, color FROM ops_stages ORDER BY sequence, id",
	)
	if err != nil {
		return nil, fmt.Errorf("get stages: %w", err)
	}
	defer rows.Close()

	var stages []OpsStage
	for rows.Next() {
		var st OpsStage
		if err := rows.Scan(&st.ID, &st.Name, &st.Sequence, &st.Fold, &st.IsDone, &st.Area, &st.Color); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		stages = append(stages, st)
	}
	return stages, nil
}

func (s *stageService) DeleteStage(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM ops_stages WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete stage %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stage %d not found", id)
	}
	return nil
}

// MoveOrderToStage assigns an order to a pipeline stage.
func (s *stageService) MoveOrderToStage(ctx context.Context, orderID, stageID int) error {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM ops_stages WHERE id = $1)", stageID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check stage %d: %w", stageID, err)
	}
	if !exists {
		return fmt.Errorf("stage %d not found", stageID)
	}

	tag, err := s.pool.Exec(ctx,
		"UPDATE sales_orders SET stage_id = $1 WHERE id = $2", stageID, orderID,
	)
	if err != nil {
		return fmt.Errorf("move order %d to stage %d: %w", orderID, stageID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}
