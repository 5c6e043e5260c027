package repository

import (
	"context"

	"github.com/iliyamo/inventory-service/internal/model"
)

// InventoryRepo reads the inventorys table.
type InventoryRepo struct{ DB Queryer }

func NewInventoryRepo(db Queryer) *InventoryRepo { return &InventoryRepo{DB: db} }

// GetByBarcode returns the item with barcode or ErrNotFound. The match is
// exact.
func (r *InventoryRepo) GetByBarcode(ctx context.Context, barcode string) (model.Inventory, error) {
	var inv model.Inventory
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, barcode, name, price, stock FROM inventorys WHERE barcode = ? LIMIT 1", barcode).
		Scan(&inv.ID, &inv.Barcode, &inv.Name, &inv.Price, &inv.Stock)
	return inv, notFound(err)
}
