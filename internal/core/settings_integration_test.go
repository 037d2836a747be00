package core_test

import (
	"context"
	"testing"

	"sale-ops-pipeline/internal/core"
)

func TestSettingsService_GetSetRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewSettingsService(pool)
	ctx := context.Background()

	if err := svc.Set(ctx, "pipeline.motd", "hello"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := svc.Get(ctx, "pipeline.motd")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}

	// Set is an upsert.
	if err := svc.Set(ctx, "pipeline.motd", "updated"); err != nil {
		t.Fatalf("Set (update) failed: %v", err)
	}
	got, _ = svc.Get(ctx, "pipeline.motd")
	if got != "updated" {
		t.Errorf("expected %q, got %q", "updated", got)
	}

	if _, err := svc.Get(ctx, "no.such.key"); err == nil {
		t.Error("expected not-found error for unknown key")
	}
}

func TestSettingsService_GetDecimalPermissive(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	svc := core.NewSettingsService(pool)
	ctx := context.Background()

	d, err := svc.GetDecimal(ctx, core.SettingRiyadhFlatCost)
	if err != nil {
		t.Fatalf("GetDecimal failed: %v", err)
	}
	if !d.Equal(dec("50")) {
		t.Errorf("expected seeded 50, got %s", d)
	}

	// Missing and malformed values read as zero, never as an error: a bad
	// configuration must not block order confirmation.
	d, err = svc.GetDecimal(ctx, "no.such.key")
	if err != nil {
		t.Fatalf("GetDecimal (missing) failed: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("expected zero for missing key, got %s", d)
	}

	if err := svc.Set(ctx, "broken.number", "not a number"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	d, err = svc.GetDecimal(ctx, "broken.number")
	if err != nil {
		t.Fatalf("GetDecimal (malformed) failed: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("expected zero for malformed value, got %s", d)
	}
}
