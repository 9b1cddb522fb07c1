package orderitem

import "github.com/shopspring/decimal"

// OrderItem represents a product line within an order.
// LineTotal is stored as computed at order time, not derived on read.
type OrderItem struct {
	ID        int64           `json:"item_id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}
