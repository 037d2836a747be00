package core

import (
	"context"
	"time"
)

// ManufacturingLeadTime maps a product category to its manufacturing days.
// A category may have at most one active rule at a time.
type ManufacturingLeadTime struct {
	ID           int       `json:"id"`
	CategoryID   int       `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"` // joined
	Days         int       `json:"days"`
	Note         string    `json:"note,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// LeadTimeInput holds the editable fields of a manufacturing lead-time rule.
type LeadTimeInput struct {
	CategoryID int
	Days       int
	Note       string
	IsActive   bool
}

// LeadTimeService manages manufacturing lead-time rules.
type LeadTimeService interface {
	// CreateRule creates a rule. Returns a ValidationError if an active rule
	// already exists for the category and the new rule is active.
	CreateRule(ctx context.Context, input LeadTimeInput) (*ManufacturingLeadTime, error)

	// UpdateRule updates a rule, enforcing the same one-active-per-category check.
	UpdateRule(ctx context.Context, id int, input LeadTimeInput) (*ManufacturingLeadTime, error)

	GetRules(ctx context.Context) ([]ManufacturingLeadTime, error)
	DeleteRule(ctx context.Context, id int) error

	// ActiveDaysByCategory returns active rule days keyed by category id,
	// restricted to the given categories. Unknown categories are absent.
	ActiveDaysByCategory(ctx context.Context, categoryIDs []int) (map[int]int, error)
}
