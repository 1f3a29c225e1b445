// Package memory is an in-memory catalog store for tests and local
// development. Row order is append order, matching what a spreadsheet range
// read returns.
package memory

import (
	"context"
	"sync"

	"github.com/acryfusion/storefront/internal/model"
	"github.com/acryfusion/storefront/internal/store"
)

// Store holds the three catalog tables in slices behind one lock.
type Store struct {
	mu       sync.RWMutex
	products []model.ProductRow
	images   []model.ImageRow
	options  []model.OptionRow
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Seed replaces the table contents wholesale. Test setup helper.
func (s *Store) Seed(products []model.ProductRow, images []model.ImageRow, options []model.OptionRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]model.ProductRow(nil), products...)
	s.images = append([]model.ImageRow(nil), images...)
	s.options = append([]model.OptionRow(nil), options...)
}

func (s *Store) Products(_ context.Context) ([]model.ProductRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ProductRow(nil), s.products...), nil
}

func (s *Store) Images(_ context.Context) ([]model.ImageRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ImageRow(nil), s.images...), nil
}

func (s *Store) Options(_ context.Context) ([]model.OptionRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.OptionRow(nil), s.options...), nil
}

func (s *Store) AppendProduct(_ context.Context, row model.ProductRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, row)
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, row model.ProductRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ProductID == row.ProductID {
			s.products[i] = row
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteProduct(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ProductID == productID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) AppendImage(_ context.Context, row model.ImageRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, row)
	return nil
}
