package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Installment statuses.
const (
	InstallmentStatusPending       InstallmentStatus = "pending"
	InstallmentStatusPartiallyPaid InstallmentStatus = "partially_paid"
	InstallmentStatusPaid          InstallmentStatus = "paid"
	InstallmentStatusOverdue       InstallmentStatus = "overdue"
)

type InstallmentStatus string

// Installment is one scheduled repayment of a financed order. Number and
// Amount are fixed at schedule generation; AmountPaid and Status mutate as
// payments are reconciled.
type Installment struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	OrderID           uuid.UUID         `json:"order_id" db:"order_id"`
	Number            int               `json:"number" db:"number"`
	DueDate           time.Time         `json:"due_date" db:"due_date"`
	Amount            decimal.Decimal   `json:"amount" db:"amount"`
	AmountPaid        decimal.Decimal   `json:"amount_paid" db:"amount_paid"`
	Status            InstallmentStatus `json:"status" db:"status"`
	PaymentDate       *time.Time        `json:"payment_date,omitempty" db:"payment_date"`
	PaymentMethodUsed string            `json:"payment_method_used,omitempty" db:"payment_method_used"`
	Notes             string            `json:"notes,omitempty" db:"notes"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
}

// Outstanding reports whether the installment can still absorb payment.
func (i *Installment) Outstanding() bool {
	switch i.Status {
	case InstallmentStatusPending, InstallmentStatusPartiallyPaid, InstallmentStatusOverdue:
		return true
	}
	return false
}

// Room returns the unpaid portion of the installment amount.
func (i *Installment) Room() decimal.Decimal {
	return i.Amount.Sub(i.AmountPaid)
}
