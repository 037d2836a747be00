package core_test

import (
	"context"
	"errors"
	"testing"

	"sale-ops-pipeline/internal/core"
)

func TestLeadTimeService_OneActiveRulePerCategory(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewLeadTimeService(pool)
	ctx := context.Background()

	// Seed already holds an active rule for Sofas; a second active one must
	// be rejected.
	_, err := svc.CreateRule(ctx, core.LeadTimeInput{
		CategoryID: seedCategorySofas, Days: 12, IsActive: true,
	})
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for second active rule, got %v", err)
	}

	// An inactive rule for the same category is fine.
	inactive, err := svc.CreateRule(ctx, core.LeadTimeInput{
		CategoryID: seedCategorySofas, Days: 12, Note: "seasonal", IsActive: false,
	})
	if err != nil {
		t.Fatalf("CreateRule (inactive) failed: %v", err)
	}

	// Activating it while the seeded rule is still active must fail too.
	_, err = svc.UpdateRule(ctx, inactive.ID, core.LeadTimeInput{
		CategoryID: seedCategorySofas, Days: 12, Note: "seasonal", IsActive: true,
	})
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError on activation, got %v", err)
	}

	// Updating the active rule itself must not trip over its own row.
	rules, err := svc.GetRules(ctx)
	if err != nil {
		t.Fatalf("GetRules failed: %v", err)
	}
	var activeID int
	for _, r := range rules {
		if r.CategoryID == seedCategorySofas && r.IsActive {
			activeID = r.ID
		}
	}
	if activeID == 0 {
		t.Fatal("seeded active rule not found")
	}
	updated, err := svc.UpdateRule(ctx, activeID, core.LeadTimeInput{
		CategoryID: seedCategorySofas, Days: 14, IsActive: true,
	})
	if err != nil {
		t.Fatalf("UpdateRule (self) failed: %v", err)
	}
	if updated.Days != 14 {
		t.Errorf("expected 14 days, got %d", updated.Days)
	}
}

func TestLeadTimeService_NegativeDaysRejected(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewLeadTimeService(pool)
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, core.LeadTimeInput{
		CategoryID: seedCategoryTables, Days: -1, IsActive: false,
	})
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for negative days, got %v", err)
	}
}

func TestLeadTimeService_ActiveDaysByCategory(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewLeadTimeService(pool)
	ctx := context.Background()

	days, err := svc.ActiveDaysByCategory(ctx, []int{seedCategorySofas, seedCategoryTables, 999})
	if err != nil {
		t.Fatalf("ActiveDaysByCategory failed: %v", err)
	}
	if days[seedCategorySofas] != 10 || days[seedCategoryTables] != 7 {
		t.Errorf("unexpected day map: %v", days)
	}
	if _, ok := days[999]; ok {
		t.Error("unknown category must not appear in the map")
	}

	// Deleting the Tables rule drops it from the map.
	rules, err := svc.GetRules(ctx)
	if err != nil {
		t.Fatalf("GetRules failed: %v", err)
	}
	for _, r := range rules {
		if r.CategoryID == seedCategoryTables {
			if err := svc.DeleteRule(ctx, r.ID); err != nil {
				t.Fatalf("DeleteRule failed: %v", err)
			}
		}
	}
	days, err = svc.ActiveDaysByCategory(ctx, []int{seedCategoryTables})
	if err != nil {
		t.Fatalf("ActiveDaysByCategory failed: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("expected empty map after delete, got %v", days)
	}
}
