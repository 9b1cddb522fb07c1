package sqlrepo_test

import (
	"context"
	"testing"

	sq "github.com/Masterminds/squirrel"
	datasetrepo "github.com/corray333/backend-labs/payreport/internal/dal/repositories/dataset/sql"
	sqlrepo "github.com/corray333/backend-labs/payreport/internal/dal/repositories/report/sql"
	"github.com/corray333/backend-labs/payreport/internal/dal/store"
	"github.com/corray333/backend-labs/payreport/internal/dal/store/storetest"
	"github.com/corray333/backend-labs/payreport/internal/dal/storeerr"
	"github.com/corray333/backend-labs/payreport/internal/service/models/date"
	"github.com/corray333/backend-labs/payreport/internal/service/models/order"
	"github.com/corray333/backend-labs/payreport/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/payreport/internal/service/models/payment"
	"github.com/corray333/backend-labs/payreport/internal/service/models/product"
	"github.com/corray333/backend-labs/payreport/internal/service/models/report"
	"github.com/corray333/backend-labs/payreport/internal/service/models/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seed loads a small store:
//
//	order 1: Alice, two items, one successful payment
//	order 2: failed payment only
//	order 3: one item, two successful payments
//	order 4: no payment
//	order 5: successful payment, no items
//	order 6: newest order, one item, successful payment
func seed(t *testing.T, client *store.Client) {
	t.Helper()
	ctx := context.Background()
	repo := datasetrepo.NewDatasetRepository(client.DB(), client.Placeholder())

	require.NoError(t, repo.InsertUsers(ctx, []user.User{
		{ID: 1, FullName: "Alice Smith", Email: "alice@example.com", SignupDate: date.New(2023, 6, 1), PhoneNumber: "555-0001"},
		{ID: 2, FullName: "Bob Jones", Email: "bob@example.com", SignupDate: date.New(2023, 7, 1)},
	}))
	require.NoError(t, repo.InsertProducts(ctx, []product.Product{
		{ID: 1, Name: "Widget", Category: product.CategoryHome, Price: money("19.99"), StockQuantity: 10},
		{ID: 2, Name: "Gadget", Category: product.CategoryElectronics, Price: money("20.00"), StockQuantity: 5},
	}))
	require.NoError(t, repo.InsertOrders(ctx, []order.Order{
		{ID: 1, UserID: 1, OrderDate: date.New(2024, 1, 10), TotalAmount: money("59.98"), Status: order.StatusCompleted},
		{ID: 2, UserID: 2, OrderDate: date.New(2024, 1, 15), TotalAmount: money("19.99"), Status: order.StatusPending},
		{ID: 3, UserID: 2, OrderDate: date.New(2023, 12, 5), TotalAmount: money("40.00"), Status: order.StatusCompleted},
		{ID: 4, UserID: 1, OrderDate: date.New(2024, 1, 20), TotalAmount: money("20.00"), Status: order.StatusPending},
		{ID: 5, UserID: 1, OrderDate: date.New(2024, 2, 1), TotalAmount: money("10.00"), Status: order.StatusCompleted},
		{ID: 6, UserID: 2, OrderDate: date.New(2024, 2, 20), TotalAmount: money("19.99"), Status: order.StatusCompleted},
	}))
	require.NoError(t, repo.InsertOrderItems(ctx, []orderitem.OrderItem{
		{ID: 1, OrderID: 1, ProductID: 1, Quantity: 2, UnitPrice: money("19.99"), LineTotal: money("39.98")},
		{ID: 2, OrderID: 1, ProductID: 2, Quantity: 1, UnitPrice: money("20.00"), LineTotal: money("20.00")},
		{ID: 3, OrderID: 2, ProductID: 1, Quantity: 1, UnitPrice: money("19.99"), LineTotal: money("19.99")},
		{ID: 4, OrderID: 3, ProductID: 2, Quantity: 2, UnitPrice: money("20.00"), LineTotal: money("40.00")},
		{ID: 5, OrderID: 4, ProductID: 2, Quantity: 1, UnitPrice: money("20.00"), LineTotal: money("20.00")},
		{ID: 6, OrderID: 6, ProductID: 1, Quantity: 1, UnitPrice: money("19.99"), LineTotal: money("19.99")},
	}))
	require.NoError(t, repo.InsertPayments(ctx, []payment.Payment{
		{ID: 1, OrderID: 1, Method: payment.MethodCreditCard, Status: payment.StatusSuccessful, Date: date.New(2024, 1, 11), AmountPaid: money("59.98")},
		{ID: 2, OrderID: 2, Method: payment.MethodUPI, Status: payment.StatusFailed, Date: date.New(2024, 1, 15), AmountPaid: money("19.99")},
		{ID: 3, OrderID: 3, Method: payment.MethodDebitCard, Status: payment.StatusSuccessful, Date: date.New(2023, 12, 6), AmountPaid: money("20.00")},
		{ID: 4, OrderID: 3, Method: payment.MethodNetBanking, Status: payment.StatusSuccessful, Date: date.New(2023, 12, 7), AmountPaid: money("20.00")},
		{ID: 5, OrderID: 5, Method: payment.MethodUPI, Status: payment.StatusSuccessful, Date: date.New(2024, 2, 2), AmountPaid: money("10.00")},
		{ID: 6, OrderID: 6, Method: payment.MethodCreditCard, Status: payment.StatusSuccessful, Date: date.New(2024, 2, 21), AmountPaid: money("19.99")},
	}))
}

func newRepo(t *testing.T) *sqlrepo.ReportRepository {
	t.Helper()

	client := storetest.NewMigratedSQLite(t)
	seed(t, client)

	return sqlrepo.NewReportRepository(client.DB(), client.Placeholder())
}

func orderIDs(rows []report.Row) []int64 {
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.OrderID
	}

	return ids
}

func TestQuery_JoinsFiltersAndSorts(t *testing.T) {
	rows, err := newRepo(t).Query(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{6, 1, 1, 3, 3}, orderIDs(rows))
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].OrderDate.After(rows[i-1].OrderDate.Time), "row %d is newer than row %d", i, i-1)
	}
	for _, r := range rows {
		assert.Equal(t, payment.StatusSuccessful, r.PaymentStatus)
	}
}

func TestQuery_OrderWithTwoItems(t *testing.T) {
	rows, err := newRepo(t).Query(context.Background())
	require.NoError(t, err)

	var alice []report.Row
	for _, r := range rows {
		if r.OrderID == 1 {
			alice = append(alice, r)
		}
	}
	require.Len(t, alice, 2)

	byProduct := map[string]report.Row{}
	for _, r := range alice {
		assert.Equal(t, "Alice Smith", r.FullName)
		assert.Equal(t, "alice@example.com", r.Email)
		assert.Equal(t, "2024-01-10", r.OrderDate.String())
		assert.True(t, money("59.98").Equal(r.TotalAmount), "total_amount %s", r.TotalAmount)
		assert.Equal(t, payment.MethodCreditCard, r.PaymentMethod)
		assert.Equal(t, "2024-01-11", r.PaymentDate.String())
		byProduct[r.ProductName] = r
	}

	widget := byProduct["Widget"]
	assert.Equal(t, 2, widget.Quantity)
	assert.True(t, money("19.99").Equal(widget.UnitPrice))
	assert.True(t, money("39.98").Equal(widget.LineTotal))

	gadget := byProduct["Gadget"]
	assert.Equal(t, 1, gadget.Quantity)
	assert.True(t, money("20.00").Equal(gadget.UnitPrice))
	assert.True(t, money("20.00").Equal(gadget.LineTotal))
}

func TestQuery_EachSuccessfulPaymentRepeatsItems(t *testing.T) {
	rows, err := newRepo(t).Query(context.Background())
	require.NoError(t, err)

	var methods []payment.Method
	for _, r := range rows {
		if r.OrderID == 3 {
			methods = append(methods, r.PaymentMethod)
			assert.Equal(t, 2, r.Quantity)
		}
	}
	assert.ElementsMatch(t, []payment.Method{payment.MethodDebitCard, payment.MethodNetBanking}, methods)
}

func TestQuery_ExcludesUnpaidAndItemlessOrders(t *testing.T) {
	rows, err := newRepo(t).Query(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, orderIDs(rows), int64(2))
	assert.NotContains(t, orderIDs(rows), int64(4))
	assert.NotContains(t, orderIDs(rows), int64(5))
}

func TestQuery_EmptyStore(t *testing.T) {
	client := storetest.NewMigratedSQLite(t)
	repo := sqlrepo.NewReportRepository(client.DB(), client.Placeholder())

	rows, err := repo.Query(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestQuery_RepeatedRunsReturnSameRows(t *testing.T) {
	repo := newRepo(t)

	first, err := repo.Query(context.Background())
	require.NoError(t, err)
	second, err := repo.Query(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, first, second)
}

func TestQuery_MissingSchema(t *testing.T) {
	client := storetest.NewSQLite(t)
	repo := sqlrepo.NewReportRepository(client.DB(), client.Placeholder())

	rows, err := repo.Query(context.Background())
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.Equal(t, storeerr.KindSchemaMismatch, storeerr.KindOf(err))
}

func TestStatement(t *testing.T) {
	repo := sqlrepo.NewReportRepository(nil, sq.Dollar)

	query, args, err := repo.Statement()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM orders o JOIN users u ON o.user_id = u.user_id")
	assert.Contains(t, query, "WHERE pay.payment_status = $1")
	assert.Contains(t, query, "ORDER BY o.order_date DESC")
	assert.NotContains(t, query, "LEFT JOIN")
	assert.Equal(t, []any{"successful"}, args)
}
