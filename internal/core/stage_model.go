package core

import "context"

// OpsStage is a column in the operations pipeline. Orders move through
// stages manually; IsDone marks terminal stages.
type OpsStage struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Sequence int       `json:"sequence"`
	Fold     bool      `json:"fold"`
	IsDone   bool      `json:"is_done"`
	Area     StageArea `json:"area"`
	Color    int       `json:"color"`
}

// StageInput holds the editable fields of a pipeline stage.
type StageInput struct {
	Name     string
	Sequence int
	Fold     bool
	IsDone   bool
	Area     StageArea
	Color    int
}

// StageService manages pipeline stages and order stage assignment.
type StageService interface {
	CreateStage(ctx context.Context, input StageInput) (*OpsStage, error)
	UpdateStage(ctx context.Context, id int, input StageInput) (*OpsStage, error)
	// GetStages returns all stages ordered by sequence, then id.
	GetStages(ctx context.Context) ([]OpsStage, error)
	DeleteStage(ctx context.Context, id int) error

	// MoveOrderToStage assigns an order to a stage.
	MoveOrderToStage(ctx context.Context, orderID, stageID int) error
}
