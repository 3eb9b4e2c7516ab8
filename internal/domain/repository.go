package domain

import "context"

// ProductLookup defines the interface for fetching a product record by barcode
type ProductLookup interface {
	GetProduct(ctx context.Context, barcode string) (*Record, error)
}
