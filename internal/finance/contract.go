package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bluimports/opsdesk/internal/domain"
	"github.com/bluimports/opsdesk/pkg/utils"
)

// ResolveContractStatus derives the aggregate financing health of an order
// from its installment set. Precedence: cancellation overrides everything,
// then full repayment, then any outstanding installment past due (date-only
// comparison), then current. Pure; same inputs always yield the same status.
func ResolveContractStatus(installments []*domain.Installment, today time.Time, isCancelled bool) domain.ContractStatus {
	if isCancelled {
		return domain.ContractStatusCancelado
	}

	allPaid := len(installments) > 0
	for _, inst := range installments {
		if inst.Status != domain.InstallmentStatusPaid {
			allPaid = false
			break
		}
	}
	if allPaid {
		return domain.ContractStatusPagoIntegralmente
	}

	for _, inst := range installments {
		if inst.Outstanding() && utils.DateBefore(inst.DueDate, today) {
			return domain.ContractStatusAtrasado
		}
	}

	return domain.ContractStatusEmDia
}

// EffectiveStatus is the read-time projection of an installment's status: an
// unpaid installment past its due date reads as overdue even while the stored
// status still says pending or partially paid. The stored value is only
// materialized to overdue by the scheduler sweep.
func EffectiveStatus(inst *domain.Installment, today time.Time) domain.InstallmentStatus {
	if inst.Outstanding() && utils.DateBefore(inst.DueDate, today) {
		return domain.InstallmentStatusOverdue
	}
	return inst.Status
}

// SweepOverdue stamps the stored overdue status on every date-overdue
// installment, returning how many were changed.
func SweepOverdue(installments []*domain.Installment, today time.Time) int {
	changed := 0
	for _, inst := range installments {
		if inst.Status == domain.InstallmentStatusOverdue {
			continue
		}
		if EffectiveStatus(inst, today) == domain.InstallmentStatusOverdue {
			inst.Status = domain.InstallmentStatusOverdue
			changed++
		}
	}
	return changed
}

// TotalPaid sums amount paid across the installment set.
func TotalPaid(installments []*domain.Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		total = total.Add(inst.AmountPaid)
	}
	return total
}

// TotalOutstanding sums the unpaid portion across the installment set.
func TotalOutstanding(installments []*domain.Installment) decimal.Decimal {
	total := decimal.Zero
	for _, inst := range installments {
		total = total.Add(inst.Room())
	}
	return total
}
