package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bluimports/opsdesk/internal/domain"
	customError "github.com/bluimports/opsdesk/pkg/errors"
)

// ApplyPayment applies one received payment against the order's installments,
// oldest obligation first (ascending number). Installments are filled in
// place: partially when the payment runs out mid-installment, fully otherwise,
// with paymentDate and method stamped on full payment. The unabsorbed portion
// of an overpayment is returned as the remainder; recording it as a credit
// balance is left to the caller.
func ApplyPayment(installments []*domain.Installment, amount decimal.Decimal, date time.Time, method string) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, customError.WrapInvalidInput("payment amount must be greater than zero")
	}
	if len(installments) == 0 {
		return decimal.Zero, customError.ErrNoInstallments
	}
	for _, inst := range installments {
		if inst.AmountPaid.GreaterThan(inst.Amount) {
			return decimal.Zero, customError.WrapInconsistentState(
				fmt.Sprintf("installment %d has amount paid %s exceeding amount %s",
					inst.Number, inst.AmountPaid.String(), inst.Amount.String()))
		}
	}

	remaining := amount
	for _, inst := range sortedByNumber(installments) {
		if remaining.IsZero() {
			break
		}
		if !inst.Outstanding() {
			continue
		}

		room := inst.Room()
		if room.LessThanOrEqual(decimal.Zero) {
			continue
		}

		applied := decimal.Min(room, remaining)
		inst.AmountPaid = inst.AmountPaid.Add(applied)
		remaining = remaining.Sub(applied)

		if inst.AmountPaid.Equal(inst.Amount) {
			inst.Status = domain.InstallmentStatusPaid
			paidAt := date
			inst.PaymentDate = &paidAt
			inst.PaymentMethodUsed = method
		} else if inst.AmountPaid.GreaterThan(decimal.Zero) {
			inst.Status = domain.InstallmentStatusPartiallyPaid
		}
	}

	return remaining, nil
}

// sortedByNumber returns a copy of the slice ordered ascending by installment
// number; the installment pointers are shared so mutations land in the
// caller's slice.
func sortedByNumber(installments []*domain.Installment) []*domain.Installment {
	out := make([]*domain.Installment, len(installments))
	copy(out, installments)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
