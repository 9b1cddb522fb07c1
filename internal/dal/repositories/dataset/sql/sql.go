package sqlrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/payreport/internal/service/models/order"
	"github.com/corray333/backend-labs/payreport/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/payreport/internal/service/models/payment"
	"github.com/corray333/backend-labs/payreport/internal/service/models/product"
	"github.com/corray333/backend-labs/payreport/internal/service/models/user"
	"github.com/jmoiron/sqlx"
)

// rowsPerStatement keeps bind parameters under SQLite's legacy 999 limit.
const rowsPerStatement = 150

// DatasetRepository loads report tables into the store.
type DatasetRepository struct {
	conn sqlx.ExecerContext
	sb   sq.StatementBuilderType
}

// NewDatasetRepository creates a dataset repository over conn, which may be a transaction.
func NewDatasetRepository(conn sqlx.ExecerContext, placeholder sq.PlaceholderFormat) *DatasetRepository {
	return &DatasetRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// InsertUsers inserts users with their ids.
func (r *DatasetRepository) InsertUsers(ctx context.Context, users []user.User) error {
	return r.insert(ctx, "users",
		[]string{"user_id", "full_name", "email", "signup_date", "phone_number"},
		len(users),
		func(i int) []any {
			u := users[i]

			return []any{u.ID, u.FullName, u.Email, u.SignupDate, nullable(u.PhoneNumber)}
		},
	)
}

// InsertProducts inserts products with their ids.
func (r *DatasetRepository) InsertProducts(ctx context.Context, products []product.Product) error {
	return r.insert(ctx, "products",
		[]string{"product_id", "product_name", "category", "price", "stock_quantity"},
		len(products),
		func(i int) []any {
			p := products[i]

			return []any{p.ID, p.Name, p.Category.String(), p.Price, p.StockQuantity}
		},
	)
}

// InsertOrders inserts orders with their ids.
func (r *DatasetRepository) InsertOrders(ctx context.Context, orders []order.Order) error {
	return r.insert(ctx, "orders",
		[]string{"order_id", "user_id", "order_date", "total_amount", "order_status"},
		len(orders),
		func(i int) []any {
			o := orders[i]

			return []any{o.ID, o.UserID, o.OrderDate, o.TotalAmount, o.Status.String()}
		},
	)
}

// InsertOrderItems inserts order items with their ids.
func (r *DatasetRepository) InsertOrderItems(ctx context.Context, items []orderitem.OrderItem) error {
	return r.insert(ctx, "order_items",
		[]string{"item_id", "order_id", "product_id", "quantity", "unit_price", "line_total"},
		len(items),
		func(i int) []any {
			oi := items[i]

			return []any{oi.ID, oi.OrderID, oi.ProductID, oi.Quantity, oi.UnitPrice, oi.LineTotal}
		},
	)
}

// InsertPayments inserts payments with their ids.
func (r *DatasetRepository) InsertPayments(ctx context.Context, payments []payment.Payment) error {
	return r.insert(ctx, "payments",
		[]string{"payment_id", "order_id", "payment_method", "payment_status", "payment_date", "amount_paid"},
		len(payments),
		func(i int) []any {
			p := payments[i]

			return []any{p.ID, p.OrderID, p.Method.String(), p.Status.String(), p.Date, p.AmountPaid}
		},
	)
}

func (r *DatasetRepository) insert(
	ctx context.Context,
	table string,
	columns []string,
	n int,
	values func(i int) []any,
) error {
	for start := 0; start < n; start += rowsPerStatement {
		end := min(start+rowsPerStatement, n)

		builder := r.sb.Insert(table).Columns(columns...)
		for i := start; i < end; i++ {
			builder = builder.Values(values(i)...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build %s insert query: %w", table, err)
		}

		if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}
