package datasetsvc

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/corray333/backend-labs/payreport/internal/service/models/dataset"
	"github.com/corray333/backend-labs/payreport/internal/service/models/date"
	"github.com/corray333/backend-labs/payreport/internal/service/models/order"
	"github.com/corray333/backend-labs/payreport/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/payreport/internal/service/models/payment"
	"github.com/corray333/backend-labs/payreport/internal/service/models/product"
	"github.com/corray333/backend-labs/payreport/internal/service/models/user"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	minUsers        = 50
	minProducts     = 40
	maxItemsByOrder = 5
	maxQuantity     = 5
	signupYearsBack = 2
)

var ErrInvalidRows = errors.New("rows must be a positive integer")

var (
	orderStatusWeights = []weighted[order.Status]{
		{order.StatusPending, 0.2},
		{order.StatusCompleted, 0.7},
		{order.StatusCancelled, 0.1},
	}
	paymentStatusWeights = []weighted[payment.Status]{
		{payment.StatusSuccessful, 0.75},
		{payment.StatusFailed, 0.15},
		{payment.StatusPending, 0.1},
	}
)

type weighted[T any] struct {
	value  T
	weight float64
}

// DatasetService generates synthetic e-commerce datasets.
type DatasetService struct {
	now func() time.Time
}

// option is a function that configures the DatasetService.
type option func(*DatasetService)

// MustNewDatasetService creates a new DatasetService.
func MustNewDatasetService(opts ...option) *DatasetService {
	s := &DatasetService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithClock sets the source of "today" for generated dates.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *DatasetService) {
		s.now = now
	}
}

// Generate builds a dataset around the given number of orders.
// A zero seed picks a random one; the seed used is returned so a run can be reproduced.
func (s *DatasetService) Generate(rows int, seed uint64) (*dataset.Dataset, uint64, error) {
	if rows <= 0 {
		return nil, 0, fmt.Errorf("%w: %d", ErrInvalidRows, rows)
	}
	if seed == 0 {
		seed = rand.Uint64N(1_000_000) + 1
	}
	slog.Info("Using random seed", "seed", seed)

	g := &generator{
		faker: gofakeit.New(seed),
		today: date.FromTime(s.now()),
		title: cases.Title(language.English),
	}

	numUsers := max(int(float64(rows)*0.6), minUsers)
	numProducts := max(int(float64(rows)*0.5), minProducts)

	ds := &dataset.Dataset{}
	ds.Users = g.users(numUsers)
	ds.Products = g.products(numProducts)
	ds.Orders = g.orders(rows, ds.Users)
	ds.OrderItems = g.orderItems(ds.Orders, ds.Products)
	ds.Payments = g.payments(ds.Orders)

	slog.Info("Dataset generated",
		"users", len(ds.Users),
		"products", len(ds.Products),
		"orders", len(ds.Orders),
		"order_items", len(ds.OrderItems),
		"payments", len(ds.Payments))

	return ds, seed, nil
}

type generator struct {
	faker *gofakeit.Faker
	today date.Date
	title cases.Caser
}

func (g *generator) users(n int) []user.User {
	emails := make(map[string]struct{}, n)
	phones := make(map[string]struct{}, n)
	users := make([]user.User, 0, n)

	for id := 1; id <= n; id++ {
		users = append(users, user.User{
			ID:          int64(id),
			FullName:    g.faker.Name(),
			Email:       unique(emails, g.faker.Email),
			PhoneNumber: unique(phones, g.faker.Phone),
			SignupDate:  g.between(g.today.AddDate(-signupYearsBack, 0, 0), g.today),
		})
	}

	return users
}

func (g *generator) products(n int) []product.Product {
	products := make([]product.Product, 0, n)

	for id := 1; id <= n; id++ {
		products = append(products, product.Product{
			ID:            int64(id),
			Name:          g.faker.Color() + " " + g.title.String(g.faker.Word()),
			Category:      product.Categories[g.faker.IntRange(0, len(product.Categories)-1)],
			Price:         g.money(5, 500),
			StockQuantity: g.faker.IntRange(0, 500),
		})
	}

	return products
}

func (g *generator) orders(n int, users []user.User) []order.Order {
	orders := make([]order.Order, 0, n)

	for id := 1; id <= n; id++ {
		u := users[g.faker.IntRange(0, len(users)-1)]
		orders = append(orders, order.Order{
			ID:        int64(id),
			UserID:    u.ID,
			OrderDate: g.between(u.SignupDate.Time, g.today),
			Status:    pick(g, orderStatusWeights),
		})
	}

	return orders
}

// orderItems also fills in each order's total from its line totals.
func (g *generator) orderItems(orders []order.Order, products []product.Product) []orderitem.OrderItem {
	var items []orderitem.OrderItem
	itemID := int64(1)

	for i := range orders {
		total := decimal.Zero
		count := g.faker.IntRange(1, maxItemsByOrder)

		for range count {
			p := products[g.faker.IntRange(0, len(products)-1)]
			quantity := g.faker.IntRange(1, maxQuantity)
			price := p.Price.InexactFloat64()
			unitPrice := g.money(price*0.9, price*1.1)
			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)

			items = append(items, orderitem.OrderItem{
				ID:        itemID,
				OrderID:   orders[i].ID,
				ProductID: p.ID,
				Quantity:  quantity,
				UnitPrice: unitPrice,
				LineTotal: lineTotal,
			})

			total = total.Add(lineTotal)
			itemID++
		}

		orders[i].TotalAmount = total.Round(2)
	}

	return items
}

func (g *generator) payments(orders []order.Order) []payment.Payment {
	payments := make([]payment.Payment, 0, len(orders))
	minPaid := decimal.RequireFromString("0.01")

	for _, o := range orders {
		status := pick(g, paymentStatusWeights)
		method := payment.Methods[g.faker.IntRange(0, len(payment.Methods)-1)]
		paymentDate := g.between(o.OrderDate.Time, g.today)

		var amount decimal.Decimal
		if status == payment.StatusSuccessful {
			amount = o.TotalAmount.Round(2)
		} else {
			amount = g.money(1, max(o.TotalAmount.InexactFloat64(), 1))
		}

		payments = append(payments, payment.Payment{
			ID:         o.ID,
			OrderID:    o.ID,
			Method:     method,
			Status:     status,
			Date:       paymentDate,
			AmountPaid: decimal.Max(amount, minPaid),
		})
	}

	return payments
}

// between returns a uniformly chosen day in [from, to].
func (g *generator) between(from time.Time, to date.Date) date.Date {
	start := date.FromTime(from)

	return start.AddDays(g.faker.IntRange(0, max(start.DaysUntil(to), 0)))
}

func (g *generator) money(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(g.faker.Float64Range(lo, hi)).Round(2)
}

func pick[T any](g *generator, choices []weighted[T]) T {
	var sum float64
	for _, c := range choices {
		sum += c.weight
	}

	x := g.faker.Float64Range(0, sum)
	for _, c := range choices {
		if x < c.weight {
			return c.value
		}
		x -= c.weight
	}

	return choices[len(choices)-1].value
}

func unique(seen map[string]struct{}, next func() string) string {
	for {
		v := next()
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}

			return v
		}
	}
}
