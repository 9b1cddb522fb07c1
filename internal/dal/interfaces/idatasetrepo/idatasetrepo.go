package idatasetrepo

import (
	"context"

	"github.com/corray333/backend-labs/payreport/internal/service/models/order"
	"github.com/corray333/backend-labs/payreport/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/payreport/internal/service/models/payment"
	"github.com/corray333/backend-labs/payreport/internal/service/models/product"
	"github.com/corray333/backend-labs/payreport/internal/service/models/user"
)

// IDatasetRepository is an interface for loading report tables into the store.
type IDatasetRepository interface {
	InsertUsers(ctx context.Context, users []user.User) error
	InsertProducts(ctx context.Context, products []product.Product) error
	InsertOrders(ctx context.Context, orders []order.Order) error
	InsertOrderItems(ctx context.Context, items []orderitem.OrderItem) error
	InsertPayments(ctx context.Context, payments []payment.Payment) error
}
