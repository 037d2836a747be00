package core_test

import (
	"context"
	"testing"

	"sale-ops-pipeline/internal/core"
)

func TestStageService_PipelineBoard(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewStageService(pool)
	orders, _ := newOrderService(pool)
	ctx := context.Background()

	mfg, err := svc.CreateStage(ctx, core.StageInput{Name: "Manufacturing", Sequence: 10, Area: core.AreaManufacturing})
	if err != nil {
		t.Fatalf("CreateStage failed: %v", err)
	}
	done, err := svc.CreateStage(ctx, core.StageInput{Name: "Delivered", Sequence: 20, IsDone: true, Fold: true, Area: core.AreaDone})
	if err != nil {
		t.Fatalf("CreateStage failed: %v", err)
	}

	stages, err := svc.GetStages(ctx)
	if err != nil {
		t.Fatalf("GetStages failed: %v", err)
	}
	if len(stages) != 2 || stages[0].ID != mfg.ID || stages[1].ID != done.ID {
		t.Errorf("expected stages ordered by sequence, got %+v", stages)
	}

	order, err := orders.CreateOrder(ctx, core.OrderInput{
		CustomerName:      "Board Co",
		DestinationCity:   "Riyadh",
		ShippingExecution: core.ExecutionCompany,
		StageID:           &mfg.ID,
	}, []core.OrderLineInput{
		{ProductCode: "SOFA-3S", Quantity: dec("1")},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.StageName != "Manufacturing" {
		t.Errorf("expected stage name joined onto the order, got %q", order.StageName)
	}

	if err := svc.MoveOrderToStage(ctx, order.ID, done.ID); err != nil {
		t.Fatalf("MoveOrderToStage failed: %v", err)
	}
	moved, err := orders.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if moved.StageID == nil || *moved.StageID != done.ID {
		t.Errorf("expected order in stage %d, got %v", done.ID, moved.StageID)
	}

	// Filtering the board by stage.
	inDone, err := orders.GetOrders(ctx, nil, &done.ID)
	if err != nil {
		t.Fatalf("GetOrders failed: %v", err)
	}
	if len(inDone) != 1 || inDone[0].ID != order.ID {
		t.Errorf("expected one order in the done stage, got %+v", inDone)
	}

	if err := svc.MoveOrderToStage(ctx, order.ID, 999); err == nil {
		t.Error("expected error moving to an unknown stage")
	}
}
