package dataset

import (
	"github.com/corray333/backend-labs/payreport/internal/service/models/order"
	"github.com/corray333/backend-labs/payreport/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/payreport/internal/service/models/payment"
	"github.com/corray333/backend-labs/payreport/internal/service/models/product"
	"github.com/corray333/backend-labs/payreport/internal/service/models/user"
)

// Table names in load order. Parents come before children.
const (
	TableUsers      = "users"
	TableProducts   = "products"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
	TablePayments   = "payments"
)

// LoadOrder is the order tables are inserted in.
var LoadOrder = []string{TableUsers, TableProducts, TableOrders, TableOrderItems, TablePayments}

// Dataset is the full content of the five report tables.
type Dataset struct {
	Users      []user.User
	Products   []product.Product
	Orders     []order.Order
	OrderItems []orderitem.OrderItem
	Payments   []payment.Payment
}

// Counts maps table name to row count.
type Counts map[string]int

// Counts returns the number of rows per table.
func (d *Dataset) Counts() Counts {
	return Counts{
		TableUsers:      len(d.Users),
		TableProducts:   len(d.Products),
		TableOrders:     len(d.Orders),
		TableOrderItems: len(d.OrderItems),
		TablePayments:   len(d.Payments),
	}
}
