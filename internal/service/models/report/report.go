package report

import (
	"strconv"

	"github.com/corray333/backend-labs/payreport/internal/service/models/date"
	"github.com/corray333/backend-labs/payreport/internal/service/models/payment"
	"github.com/shopspring/decimal"
)

// Columns is the report projection, in output order.
var Columns = []string{
	"full_name",
	"email",
	"order_id",
	"order_date",
	"product_name",
	"quantity",
	"unit_price",
	"line_total",
	"total_amount",
	"payment_method",
	"payment_status",
	"payment_date",
}

// Row is one (order, order item, successful payment) combination.
type Row struct {
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	OrderID       int64           `json:"order_id"`
	OrderDate     date.Date       `json:"order_date"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod payment.Method  `json:"payment_method"`
	PaymentStatus payment.Status  `json:"payment_status"`
	PaymentDate   date.Date       `json:"payment_date"`
}

// Record returns the row's fields as strings, in Columns order.
func (r Row) Record() []string {
	return []string{
		r.FullName,
		r.Email,
		strconv.FormatInt(r.OrderID, 10),
		r.OrderDate.String(),
		r.ProductName,
		strconv.Itoa(r.Quantity),
		r.UnitPrice.String(),
		r.LineTotal.String(),
		r.TotalAmount.String(),
		r.PaymentMethod.String(),
		r.PaymentStatus.String(),
		r.PaymentDate.String(),
	}
}
