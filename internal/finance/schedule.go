package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bluimports/opsdesk/internal/domain"
	customError "github.com/bluimports/opsdesk/pkg/errors"
	"github.com/bluimports/opsdesk/pkg/utils"
)

// GenerateSchedule materializes the installment records for a financed order.
// Installment i (1-based) falls due i calendar months after the start date,
// day of month preserved and clamped to month end. Every installment carries
// the same value; the schedule is generated exactly once per order and never
// rebuilt on edit, since rebuilding would discard payment history.
func GenerateSchedule(orderID uuid.UUID, installmentCount int, installmentValue decimal.Decimal, startDate time.Time) ([]*domain.Installment, error) {
	if installmentCount <= 0 {
		return nil, customError.WrapInvalidInput("installment count must be at least 1")
	}
	if installmentValue.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidInput("installment value must be greater than zero")
	}

	installments := make([]*domain.Installment, 0, installmentCount)
	for number := 1; number <= installmentCount; number++ {
		installments = append(installments, &domain.Installment{
			ID:         uuid.New(),
			OrderID:    orderID,
			Number:     number,
			DueDate:    utils.AddMonthsClamped(utils.TruncateToDay(startDate), number),
			Amount:     installmentValue,
			AmountPaid: decimal.Zero,
			Status:     domain.InstallmentStatusPending,
		})
	}

	return installments, nil
}
