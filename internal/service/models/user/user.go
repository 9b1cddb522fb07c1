package user

import "github.com/corray333/backend-labs/payreport/internal/service/models/date"

// User represents a customer.
type User struct {
	ID          int64     `json:"user_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	SignupDate  date.Date `json:"signup_date"`
	PhoneNumber string    `json:"phone_number,omitempty"`
}
