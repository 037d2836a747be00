package core

import (
	"context"
	"time"
)

// Vendor represents a supplier: a factory for manufacturing orders or a
// shipping company behind a carrier configuration.
type Vendor struct {
	ID            int
	Code          string
	Name          string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	IsActive      bool
	CreatedAt     time.Time
}

// VendorInput holds the fields required to create a new vendor.
type VendorInput struct {
	Code          string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

// VendorService provides vendor master data operations.
type VendorService interface {
	// CreateVendor creates a new vendor record.
	CreateVendor(ctx context.Context, input VendorInput) (*Vendor, error)

	// GetVendors returns all active vendors.
	GetVendors(ctx context.Context) ([]Vendor, error)

	// GetVendorByCode returns a specific vendor by its code.
	GetVendorByCode(ctx context.Context, code string) (*Vendor, error)
}
