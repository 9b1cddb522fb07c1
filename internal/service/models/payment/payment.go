package payment

import (
	"errors"

	"github.com/corray333/backend-labs/payreport/internal/service/models/date"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
	StatusPending    Status = "pending"
)

var Statuses = []Status{StatusSuccessful, StatusFailed, StatusPending}

type Method string

const (
	MethodCreditCard Method = "credit_card"
	MethodDebitCard  Method = "debit_card"
	MethodUPI        Method = "upi"
	MethodNetBanking Method = "net_banking"
)

var Methods = []Method{MethodCreditCard, MethodDebitCard, MethodUPI, MethodNetBanking}

var (
	ErrInvalidStatus = errors.New("invalid payment status")
	ErrInvalidMethod = errors.New("invalid payment method")
)

func (s Status) String() string {
	return string(s)
}

func (m Method) String() string {
	return string(m)
}

func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if st.String() == s {
			return st, nil
		}
	}

	return "", ErrInvalidStatus
}

func ParseMethod(s string) (Method, error) {
	for _, m := range Methods {
		if m.String() == s {
			return m, nil
		}
	}

	return "", ErrInvalidMethod
}

// Payment is a payment attempt against an order.
type Payment struct {
	ID         int64           `json:"payment_id"`
	OrderID    int64           `json:"order_id"`
	Method     Method          `json:"payment_method"`
	Status     Status          `json:"payment_status"`
	Date       date.Date       `json:"payment_date"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
}
