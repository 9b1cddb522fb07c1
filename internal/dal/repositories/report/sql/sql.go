package sqlrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/payreport/internal/service/models/date"
	"github.com/corray333/backend-labs/payreport/internal/service/models/payment"
	"github.com/corray333/backend-labs/payreport/internal/service/models/report"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// RowDal represents a report row as returned by the store.
type RowDal struct {
	FullName      string          `db:"full_name"`
	Email         string          `db:"email"`
	OrderID       int64           `db:"order_id"`
	OrderDate     date.Date       `db:"order_date"`
	ProductName   string          `db:"product_name"`
	Quantity      int             `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	LineTotal     decimal.Decimal `db:"line_total"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PaymentMethod string          `db:"payment_method"`
	PaymentStatus string          `db:"payment_status"`
	PaymentDate   date.Date       `db:"payment_date"`
}

// ToModel converts RowDal to service layer report Row.
// Method and status are passed through as stored.
func (r *RowDal) ToModel() report.Row {
	return report.Row{
		FullName:      r.FullName,
		Email:         r.Email,
		OrderID:       r.OrderID,
		OrderDate:     r.OrderDate,
		ProductName:   r.ProductName,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		LineTotal:     r.LineTotal,
		TotalAmount:   r.TotalAmount,
		PaymentMethod: payment.Method(r.PaymentMethod),
		PaymentStatus: payment.Status(r.PaymentStatus),
		PaymentDate:   r.PaymentDate,
	}
}

// ReportRepository runs the successful payments report.
type ReportRepository struct {
	conn sqlx.QueryerContext
	sb   sq.StatementBuilderType
}

// NewReportRepository creates a report repository over conn.
func NewReportRepository(conn sqlx.QueryerContext, placeholder sq.PlaceholderFormat) *ReportRepository {
	return &ReportRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Statement builds the report SELECT.
//
// All joins are inner: an order with N items and M successful payments
// yields N*M rows. Rows are sorted by order date only.
func (r *ReportRepository) Statement() (string, []any, error) {
	return r.sb.
		Select(
			"u.full_name AS full_name",
			"u.email AS email",
			"o.order_id AS order_id",
			"o.order_date AS order_date",
			"p.product_name AS product_name",
			"oi.quantity AS quantity",
			"oi.unit_price AS unit_price",
			"oi.line_total AS line_total",
			"o.total_amount AS total_amount",
			"pay.payment_method AS payment_method",
			"pay.payment_status AS payment_status",
			"pay.payment_date AS payment_date",
		).
		From("orders o").
		Join("users u ON o.user_id = u.user_id").
		Join("order_items oi ON o.order_id = oi.order_id").
		Join("products p ON oi.product_id = p.product_id").
		Join("payments pay ON o.order_id = pay.order_id").
		Where(sq.Eq{"pay.payment_status": payment.StatusSuccessful.String()}).
		OrderBy("o.order_date DESC").
		ToSql()
}

// Query executes the report once and returns its rows in store order.
func (r *ReportRepository) Query(ctx context.Context) ([]report.Row, error) {
	query, args, err := r.Statement()
	if err != nil {
		return nil, fmt.Errorf("failed to build report query: %w", err)
	}

	var dals []RowDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query payment report: %w", err)
	}

	result := make([]report.Row, 0, len(dals))
	for i := range dals {
		result = append(result, dals[i].ToModel())
	}

	return result, nil
}
