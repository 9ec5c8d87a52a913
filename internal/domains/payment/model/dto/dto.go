package dto

import (
	"time"

	bookingModel "homestay/internal/domains/booking/model"
	"homestay/internal/domains/payment/model"
	"homestay/shared"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
	"homestay/shared/timezone"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	BookingID     string  `json:"booking_id"     validate:"required,uuid4"`
	GuestName     string  `json:"guest_name"     validate:"required,min=2,max=100"`
	Amount        float64 `json:"amount"         validate:"required,gt=0"`
	PaymentDate   string  `json:"payment_date"   validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=UPI 'Credit Card' 'Debit Card' 'Bank Transfer' Cash Other"`
	TransactionID string  `json:"transaction_id" validate:"omitempty,max=200"`
	Description   string  `json:"description"    validate:"omitempty,max=1000"`
	Status        string  `json:"status"         validate:"omitempty,oneof=pending completed failed refunded"`
}

func (c *CreatePaymentRequest) ToModel(createdBy string) (model.Payment, error) {
	paymentDate := timezone.Now()

	if c.PaymentDate != "" {
		parsed, err := time.Parse(constant.DateOnlyFormat, c.PaymentDate)
		if err != nil {
			return model.Payment{}, err
		}

		paymentDate = parsed
	}

	status := c.Status
	if status == "" {
		status = model.StatusCompleted
	}

	return model.Payment{
		ID:            uuid.NewString(),
		BookingID:     c.BookingID,
		GuestName:     c.GuestName,
		Amount:        c.Amount,
		PaymentDate:   paymentDate,
		PaymentMethod: c.PaymentMethod,
		TransactionID: c.TransactionID,
		Description:   c.Description,
		Status:        status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}, nil
}

type UpdatePaymentRequest struct {
	BookingID     string  `db:"booking_id"     json:"booking_id"     validate:"omitempty,uuid4"`
	GuestName     string  `db:"guest_name"     json:"guest_name"     validate:"omitempty,min=2,max=100"`
	Amount        float64 `db:"amount"         json:"amount"         validate:"omitempty,gt=0"`
	PaymentDate   string  `json:"payment_date"                       validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string  `db:"payment_method" json:"payment_method" validate:"omitempty,oneof=UPI 'Credit Card' 'Debit Card' 'Bank Transfer' Cash Other"`
	TransactionID string  `db:"transaction_id" json:"transaction_id" validate:"omitempty,max=200"`
	Description   string  `db:"description"    json:"description"    validate:"omitempty,max=1000"`
	Status        string  `db:"status"         json:"status"         validate:"omitempty,oneof=pending completed failed refunded"`
}

type PaymentResponse struct {
	ID            string  `json:"id"`
	BookingID     string  `json:"booking_id"`
	GuestName     string  `json:"guest_name"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"payment_date"`
	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Description   string  `json:"description,omitempty"`
	Status        string  `json:"status"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(payment model.Payment) {
	r.ID = payment.ID
	r.BookingID = payment.BookingID
	r.GuestName = payment.GuestName
	r.Amount = payment.Amount
	r.PaymentDate = payment.PaymentDate.Format(constant.DateOnlyFormat)
	r.PaymentMethod = payment.PaymentMethod
	r.TransactionID = payment.TransactionID
	r.Description = payment.Description
	r.Status = payment.Status
	r.Metadata.FromModel(payment.Metadata)
}

type GetPaymentsResponse struct {
	Items      []PaymentResponse `json:"items"`
	Pagination gDto.Pagination   `json:"pagination"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, params gDto.QueryParams, total int) {
	r.Items = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}

	r.Pagination = gDto.NewPagination(params, total, shared.CalculateTotalPage(total, params.Limit))
}

// LedgerBooking summarizes the booking side of a per-booking ledger.
type LedgerBooking struct {
	ID              string  `json:"id"`
	Reference       string  `json:"reference"`
	TotalAmount     float64 `json:"total_amount"`
	TotalPaid       float64 `json:"total_paid"`
	RemainingAmount float64 `json:"remaining_amount"`
}

type BookingLedgerResponse struct {
	Booking  LedgerBooking     `json:"booking"`
	Payments []PaymentResponse `json:"payments"`
}

func (r *BookingLedgerResponse) FromModels(booking bookingModel.Booking, payments []model.Payment, totalPaid float64) {
	r.Booking = LedgerBooking{
		ID:              booking.ID,
		Reference:       booking.Reference,
		TotalAmount:     booking.TotalPrice,
		TotalPaid:       totalPaid,
		RemainingAmount: booking.TotalPrice - totalPaid,
	}

	r.Payments = make([]PaymentResponse, len(payments))
	for i, payment := range payments {
		r.Payments[i].FromModel(payment)
	}
}

type MonthlyStat struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

type GroupStat struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

type PaymentStatisticsResponse struct {
	Total       int                  `json:"total"`
	TotalAmount float64              `json:"total_amount"`
	ByMethod    map[string]GroupStat `json:"by_method"`
	ByStatus    map[string]GroupStat `json:"by_status"`
	Monthly     []MonthlyStat        `json:"monthly"`
}
