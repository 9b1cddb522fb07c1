package order

import (
	"errors"

	"github.com/corray333/backend-labs/payreport/internal/service/models/date"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusCompleted, StatusCancelled}

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if st.String() == s {
			return st, nil
		}
	}

	return "", ErrInvalidStatus
}

// Order represents an order placed by a user.
type Order struct {
	ID          int64           `json:"order_id"`
	UserID      int64           `json:"user_id"`
	OrderDate   date.Date       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      Status          `json:"order_status"`
}
