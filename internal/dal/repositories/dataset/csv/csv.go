package csvrepo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/corray333/backend-labs/payreport/internal/service/models/dataset"
	"github.com/corray333/backend-labs/payreport/internal/service/models/date"
	"github.com/corray333/backend-labs/payreport/internal/service/models/order"
	"github.com/corray333/backend-labs/payreport/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/payreport/internal/service/models/payment"
	"github.com/corray333/backend-labs/payreport/internal/service/models/product"
	"github.com/corray333/backend-labs/payreport/internal/service/models/user"
	"github.com/shopspring/decimal"
)

var ErrDataDirMissing = errors.New("data directory does not exist, run the generate command first")

var (
	userColumns      = []string{"user_id", "full_name", "email", "signup_date", "phone_number"}
	productColumns   = []string{"product_id", "product_name", "category", "price", "stock_quantity"}
	orderColumns     = []string{"order_id", "user_id", "order_date", "total_amount", "order_status"}
	orderItemColumns = []string{"item_id", "order_id", "product_id", "quantity", "unit_price", "line_total"}
	paymentColumns   = []string{"payment_id", "order_id", "payment_method", "payment_status", "payment_date", "amount_paid"}
)

// DatasetRepository reads and writes the five tables as CSV files in a directory.
type DatasetRepository struct {
	dir string
}

// NewDatasetRepository creates a CSV repository rooted at dir.
func NewDatasetRepository(dir string) *DatasetRepository {
	return &DatasetRepository{dir: dir}
}

// Dir returns the directory the repository reads from and writes to.
func (r *DatasetRepository) Dir() string {
	return r.dir
}

// Write exports every table, creating the directory if needed.
func (r *DatasetRepository) Write(ds *dataset.Dataset) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	users := make([][]string, len(ds.Users))
	for i, u := range ds.Users {
		users[i] = []string{itoa(u.ID), u.FullName, u.Email, u.SignupDate.String(), u.PhoneNumber}
	}

	products := make([][]string, len(ds.Products))
	for i, p := range ds.Products {
		products[i] = []string{itoa(p.ID), p.Name, p.Category.String(), p.Price.String(), strconv.Itoa(p.StockQuantity)}
	}

	orders := make([][]string, len(ds.Orders))
	for i, o := range ds.Orders {
		orders[i] = []string{itoa(o.ID), itoa(o.UserID), o.OrderDate.String(), o.TotalAmount.String(), o.Status.String()}
	}

	items := make([][]string, len(ds.OrderItems))
	for i, oi := range ds.OrderItems {
		items[i] = []string{
			itoa(oi.ID), itoa(oi.OrderID), itoa(oi.ProductID),
			strconv.Itoa(oi.Quantity), oi.UnitPrice.String(), oi.LineTotal.String(),
		}
	}

	payments := make([][]string, len(ds.Payments))
	for i, p := range ds.Payments {
		payments[i] = []string{
			itoa(p.ID), itoa(p.OrderID), p.Method.String(),
			p.Status.String(), p.Date.String(), p.AmountPaid.String(),
		}
	}

	tables := []struct {
		name    string
		columns []string
		records [][]string
	}{
		{dataset.TableUsers, userColumns, users},
		{dataset.TableProducts, productColumns, products},
		{dataset.TableOrders, orderColumns, orders},
		{dataset.TableOrderItems, orderItemColumns, items},
		{dataset.TablePayments, paymentColumns, payments},
	}

	for _, t := range tables {
		if err := r.writeFile(t.name, t.columns, t.records); err != nil {
			return err
		}
	}

	return nil
}

// Read loads every table from the directory.
func (r *DatasetRepository) Read() (*dataset.Dataset, error) {
	if _, err := os.Stat(r.dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataDirMissing, r.dir)
		}

		return nil, fmt.Errorf("failed to stat data directory: %w", err)
	}

	ds := &dataset.Dataset{}

	err := r.readFile(dataset.TableUsers, userColumns, func(rec record) error {
		signup, err := rec.asDate("signup_date")
		if err != nil {
			return err
		}
		id, err := rec.asInt64("user_id")
		if err != nil {
			return err
		}
		ds.Users = append(ds.Users, user.User{
			ID:          id,
			FullName:    rec.get("full_name"),
			Email:       rec.get("email"),
			SignupDate:  signup,
			PhoneNumber: rec.get("phone_number"),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.readFile(dataset.TableProducts, productColumns, func(rec record) error {
		id, err := rec.asInt64("product_id")
		if err != nil {
			return err
		}
		category, err := product.ParseCategory(rec.get("category"))
		if err != nil {
			return err
		}
		price, err := rec.asDecimal("price")
		if err != nil {
			return err
		}
		stock, err := rec.asInt("stock_quantity")
		if err != nil {
			return err
		}
		ds.Products = append(ds.Products, product.Product{
			ID:            id,
			Name:          rec.get("product_name"),
			Category:      category,
			Price:         price,
			StockQuantity: stock,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.readFile(dataset.TableOrders, orderColumns, func(rec record) error {
		id, err := rec.asInt64("order_id")
		if err != nil {
			return err
		}
		userID, err := rec.asInt64("user_id")
		if err != nil {
			return err
		}
		orderDate, err := rec.asDate("order_date")
		if err != nil {
			return err
		}
		total, err := rec.asDecimal("total_amount")
		if err != nil {
			return err
		}
		status, err := order.ParseStatus(rec.get("order_status"))
		if err != nil {
			return err
		}
		ds.Orders = append(ds.Orders, order.Order{
			ID:          id,
			UserID:      userID,
			OrderDate:   orderDate,
			TotalAmount: total,
			Status:      status,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.readFile(dataset.TableOrderItems, orderItemColumns, func(rec record) error {
		id, err := rec.asInt64("item_id")
		if err != nil {
			return err
		}
		orderID, err := rec.asInt64("order_id")
		if err != nil {
			return err
		}
		productID, err := rec.asInt64("product_id")
		if err != nil {
			return err
		}
		quantity, err := rec.asInt("quantity")
		if err != nil {
			return err
		}
		unitPrice, err := rec.asDecimal("unit_price")
		if err != nil {
			return err
		}
		lineTotal, err := rec.asDecimal("line_total")
		if err != nil {
			return err
		}
		ds.OrderItems = append(ds.OrderItems, orderitem.OrderItem{
			ID:        id,
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = r.readFile(dataset.TablePayments, paymentColumns, func(rec record) error {
		id, err := rec.asInt64("payment_id")
		if err != nil {
			return err
		}
		orderID, err := rec.asInt64("order_id")
		if err != nil {
			return err
		}
		method, err := payment.ParseMethod(rec.get("payment_method"))
		if err != nil {
			return err
		}
		status, err := payment.ParseStatus(rec.get("payment_status"))
		if err != nil {
			return err
		}
		paymentDate, err := rec.asDate("payment_date")
		if err != nil {
			return err
		}
		amount, err := rec.asDecimal("amount_paid")
		if err != nil {
			return err
		}
		ds.Payments = append(ds.Payments, payment.Payment{
			ID:         id,
			OrderID:    orderID,
			Method:     method,
			Status:     status,
			Date:       paymentDate,
			AmountPaid: amount,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ds, nil
}

func (r *DatasetRepository) path(table string) string {
	return filepath.Join(r.dir, table+".csv")
}

func (r *DatasetRepository) writeFile(table string, columns []string, records [][]string) error {
	f, err := os.Create(r.path(table))
	if err != nil {
		return fmt.Errorf("failed to create %s.csv: %w", table, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("failed to write %s.csv header: %w", table, err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s.csv: %w", table, err)
	}

	return f.Close()
}

// readFile calls fn for every data row, addressing fields by header name.
func (r *DatasetRepository) readFile(table string, columns []string, fn func(record) error) error {
	f, err := os.Open(r.path(table))
	if err != nil {
		return fmt.Errorf("failed to open %s.csv: %w", table, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read %s.csv: %w", table, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s.csv has no header", table)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return fmt.Errorf("%s.csv is missing column %q", table, c)
		}
	}

	for line, fields := range rows[1:] {
		if err := fn(record{index: index, fields: fields}); err != nil {
			return fmt.Errorf("%s.csv line %d: %w", table, line+2, err)
		}
	}

	return nil
}

type record struct {
	index  map[string]int
	fields []string
}

func (rec record) get(column string) string {
	return rec.fields[rec.index[column]]
}

func (rec record) asInt64(column string) (int64, error) {
	v, err := strconv.ParseInt(rec.get(column), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", column, err)
	}

	return v, nil
}

func (rec record) asInt(column string) (int, error) {
	v, err := strconv.Atoi(rec.get(column))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", column, err)
	}

	return v, nil
}

func (rec record) asDecimal(column string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(rec.get(column))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s: %w", column, err)
	}

	return v, nil
}

func (rec record) asDate(column string) (date.Date, error) {
	return date.Parse(rec.get(column))
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
