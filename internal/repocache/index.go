package repocache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/quantmind-br/docprep/internal/cache"
	"github.com/quantmind-br/docprep/internal/domain"
)

// clearer is implemented by stores that can drop a key prefix
type clearer interface {
	Clear(prefix string) error
}

// Index persists metadata about published checkouts
type Index struct {
	store domain.Cache
}

// NewIndex creates an Index backed by store
func NewIndex(store domain.Cache) *Index {
	return &Index{store: store}
}

// Record stores rec under its checkout key
func (i *Index) Record(ctx context.Context, rec domain.CheckoutRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return i.store.Set(ctx, cache.CheckoutKey(rec.Key), data, 0)
}

// Lookup returns the record for the checkout directory key
func (i *Index) Lookup(ctx context.Context, key string) (*domain.CheckoutRecord, error) {
	data, err := i.store.Get(ctx, cache.CheckoutKey(key))
	if errors.Is(err, domain.ErrCacheMiss) {
		return nil, fmt.Errorf("%w: no record for %s", domain.ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}

	var rec domain.CheckoutRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode checkout record: %w", err)
	}
	return &rec, nil
}

// List returns all records sorted by key
func (i *Index) List(ctx context.Context) ([]domain.CheckoutRecord, error) {
	var records []domain.CheckoutRecord
	err := i.store.Scan(ctx, cache.CheckoutPrefix(), func(_ string, value []byte) error {
		var rec domain.CheckoutRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("decode checkout record: %w", err)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(a, b int) bool {
		return records[a].Key < records[b].Key
	})
	return records, nil
}

// Clear removes every checkout record
func (i *Index) Clear() error {
	if c, ok := i.store.(clearer); ok {
		return c.Clear(cache.CheckoutPrefix())
	}

	ctx := context.Background()
	var keys []string
	if err := i.store.Scan(ctx, cache.CheckoutPrefix(), func(key string, _ []byte) error {
		keys = append(keys, key)
		return nil
	}); err != nil {
		return err
	}
	for _, k := range keys {
		if err := i.store.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
