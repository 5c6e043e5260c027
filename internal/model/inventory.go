package model

// Inventory mirrors a row of the `inventorys` table. Rows are seeded
// externally; this service only reads them. The barcode is unique.
type Inventory struct {
	ID      int64  // inventorys.id
	Barcode string // inventorys.barcode
	Name    string // inventorys.name
	Price   int64  // inventorys.price
	Stock   int64  // inventorys.stock
}

// InventoryDAO is the public shape of an inventory item.
type InventoryDAO struct {
	Barcode string `json:"barcode"`
	Name    string `json:"name"`
	Price   int64  `json:"price"`
	Stock   int64  `json:"stock"`
}

// DAO converts the record into its public shape.
func (i Inventory) DAO() InventoryDAO {
	return InventoryDAO{Barcode: i.Barcode, Name: i.Name, Price: i.Price, Stock: i.Stock}
}
