package store

import (
	"context"

	"github.com/matzehuels/ghostleg/pkg/round"
)

// NullStore is a no-op store that never keeps anything.
// Used when a round should not be saved.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Get always reports the round as missing.
func (s *NullStore) Get(ctx context.Context, id string) (*round.Round, error) {
	err := notFound(id)
	observeLoad(ctx, "none", id, err)
	return nil, err
}

// Put does nothing.
func (s *NullStore) Put(ctx context.Context, r *round.Round) error {
	return nil
}

// List always returns an empty listing.
func (s *NullStore) List(ctx context.Context, limit int) ([]Summary, error) {
	return []Summary{}, nil
}

// Delete always reports the round as missing.
func (s *NullStore) Delete(ctx context.Context, id string) error {
	return notFound(id)
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
