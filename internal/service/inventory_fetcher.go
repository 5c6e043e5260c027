// Package service holds the domain operations that sit between handlers
// and repositories, plus publishers for domain events.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/inventory-service/internal/apperr"
	"github.com/iliyamo/inventory-service/internal/metrics"
	"github.com/iliyamo/inventory-service/internal/model"
	"github.com/iliyamo/inventory-service/internal/repository"
)

// InventoryStore looks up inventory rows by barcode.
type InventoryStore interface {
	GetByBarcode(ctx context.Context, barcode string) (model.Inventory, error)
}

// InventoryFetcher resolves barcodes into public inventory records. It
// holds no state between calls; every lookup hits the store.
type InventoryFetcher struct {
	store   InventoryStore
	metrics *metrics.Metrics
}

func NewInventoryFetcher(store InventoryStore, m *metrics.Metrics) *InventoryFetcher {
	return &InventoryFetcher{store: store, metrics: m}
}

// FindByBarcode returns the item registered under barcode. An unknown
// barcode yields *apperr.UnregisteredBarcodeError, which matches
// apperr.ErrUnregisteredBarcode.
func (f *InventoryFetcher) FindByBarcode(ctx context.Context, barcode string) (model.InventoryDAO, error) {
	inv, err := f.store.GetByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			f.metrics.InventoryLookup(metrics.LookupUnregistered)
			return model.InventoryDAO{}, &apperr.UnregisteredBarcodeError{Barcode: barcode}
		}
		return model.InventoryDAO{}, fmt.Errorf("find inventory %q: %w", barcode, err)
	}
	f.metrics.InventoryLookup(metrics.LookupFound)
	return inv.DAO(), nil
}
