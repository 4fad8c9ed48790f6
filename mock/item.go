package mock

import (
	"context"

	"github.com/fwojciec/kbharvest"
)

// Compile-time interface verification.
var (
	_ kbharvest.Source    = (*Source)(nil)
	_ kbharvest.ItemStore = (*ItemStore)(nil)
)

// Source is a mock implementation of kbharvest.Source.
type Source struct {
	NameFn    func() string
	HarvestFn func(ctx context.Context) ([]*kbharvest.Item, error)
}

func (s *Source) Name() string {
	return s.NameFn()
}

func (s *Source) Harvest(ctx context.Context) ([]*kbharvest.Item, error) {
	return s.HarvestFn(ctx)
}

// ItemStore is a mock implementation of kbharvest.ItemStore.
type ItemStore struct {
	SaveFn   func(ctx context.Context, item *kbharvest.Item) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ItemStore) Save(ctx context.Context, item *kbharvest.Item) error {
	return s.SaveFn(ctx, item)
}

func (s *ItemStore) Commit() error {
	return s.CommitFn()
}

func (s *ItemStore) Abort() error {
	return s.AbortFn()
}
