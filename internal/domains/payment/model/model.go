package model

import (
	"time"

	"homestay/shared/model"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldGuestName     = "guest_name"
	FieldAmount        = "amount"
	FieldPaymentDate   = "payment_date"
	FieldPaymentMethod = "payment_method"
	FieldTransactionID = "transaction_id"
	FieldDescription   = "description"
	FieldStatus        = "status"

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"

	MethodUPI          = "UPI"
	MethodCreditCard   = "Credit Card"
	MethodDebitCard    = "Debit Card"
	MethodBankTransfer = "Bank Transfer"
	MethodCash         = "Cash"
	MethodOther        = "Other"
)

var (
	Statuses = []string{StatusPending, StatusCompleted, StatusFailed, StatusRefunded}
	Methods  = []string{MethodUPI, MethodCreditCard, MethodDebitCard, MethodBankTransfer, MethodCash, MethodOther}
)

type Payment struct {
	ID            string    `db:"id"`
	BookingID     string    `db:"booking_id"`
	GuestName     string    `db:"guest_name"`
	Amount        float64   `db:"amount"`
	PaymentDate   time.Time `db:"payment_date"`
	PaymentMethod string    `db:"payment_method"`
	TransactionID string    `db:"transaction_id"`
	Description   string    `db:"description"`
	Status        string    `db:"status"`
	model.Metadata
}

// GroupTotal is one row of a grouped count/sum aggregation.
type GroupTotal struct {
	Key         string  `db:"key"`
	Count       int     `db:"count"`
	TotalAmount float64 `db:"total_amount"`
}

// MonthlyTotal is one month of the completed-payment breakdown.
type MonthlyTotal struct {
	Year        int     `db:"year"`
	Month       int     `db:"month"`
	Count       int     `db:"count"`
	TotalAmount float64 `db:"total_amount"`
}
