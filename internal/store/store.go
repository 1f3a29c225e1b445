// Package store defines the catalog row store boundary: three typed tables
// (products, images, options) behind a small interface, so the backing
// technology — a hosted spreadsheet, Postgres, or an in-memory map — is an
// interchangeable adapter.
package store

import (
	"context"
	"errors"

	"github.com/acryfusion/storefront/internal/model"
)

var (
	// ErrNotFound is returned when no row matches the requested product id.
	ErrNotFound = errors.New("product not found")
)

// Store is the only write surface into the catalog tables. Reads return rows
// in source order; the normalizer depends on option row order for group
// metadata.
type Store interface {
	// Products returns every product row.
	Products(ctx context.Context) ([]model.ProductRow, error)
	// Images returns every image row.
	Images(ctx context.Context) ([]model.ImageRow, error)
	// Options returns every option row in source order.
	Options(ctx context.Context) ([]model.OptionRow, error)

	// AppendProduct appends a product row.
	AppendProduct(ctx context.Context, row model.ProductRow) error
	// UpdateProduct overwrites the row whose product id matches row.ProductID.
	// Returns ErrNotFound if no such row exists.
	UpdateProduct(ctx context.Context, row model.ProductRow) error
	// DeleteProduct removes the row with the given product id. Returns
	// ErrNotFound if no such row exists.
	DeleteProduct(ctx context.Context, productID string) error

	// AppendImage appends an image row.
	AppendImage(ctx context.Context, row model.ImageRow) error
}
