package finance

import (
	"github.com/shopspring/decimal"

	customError "github.com/bluimports/opsdesk/pkg/errors"
	"github.com/bluimports/opsdesk/pkg/utils"
)

// Terms holds the computed financing terms for an order.
type Terms struct {
	FinancedAmount    decimal.Decimal `json:"financed_amount"`
	TotalWithInterest decimal.Decimal `json:"total_with_interest"`
	InstallmentValue  decimal.Decimal `json:"installment_value"`
}

var twelve = decimal.NewFromInt(12)

// ComputeAmortization computes the flat/simple-interest terms of a financed
// order:
//
//	financedAmount   = max(productValue - downPayment, 0)
//	totalInterest    = financedAmount * (annualRate/12) * installmentCount
//	installmentValue = (financedAmount + totalInterest) / installmentCount
//
// Monetary outputs are rounded to 2 decimal places at the end, not
// mid-calculation. A down payment covering the full product value is a valid
// zero-terms result, not an error. Note that installmentValue * count may
// drift from totalWithInterest by a few cents; no installment absorbs the
// rounding remainder.
func ComputeAmortization(productValue, downPayment decimal.Decimal, installmentCount int, annualRate decimal.Decimal) (Terms, error) {
	if installmentCount <= 0 {
		return Terms{}, customError.WrapInvalidInput("installment count must be at least 1")
	}
	if productValue.LessThanOrEqual(decimal.Zero) {
		return Terms{}, customError.WrapInvalidInput("product value must be greater than zero")
	}
	if downPayment.IsNegative() {
		return Terms{}, customError.WrapInvalidInput("down payment must not be negative")
	}
	if annualRate.IsNegative() {
		return Terms{}, customError.WrapInvalidInput("annual rate must not be negative")
	}

	financed := productValue.Sub(downPayment)
	if financed.LessThanOrEqual(decimal.Zero) {
		// Fully covered by the down payment.
		return Terms{
			FinancedAmount:    decimal.Zero,
			TotalWithInterest: decimal.Zero,
			InstallmentValue:  decimal.Zero,
		}, nil
	}

	monthlyRate := annualRate.Div(twelve)
	totalInterest := financed.Mul(monthlyRate).Mul(decimal.NewFromInt(int64(installmentCount)))
	totalWithInterest := financed.Add(totalInterest)
	installmentValue := totalWithInterest.Div(decimal.NewFromInt(int64(installmentCount)))

	return Terms{
		FinancedAmount:    utils.RoundMoney(financed),
		TotalWithInterest: utils.RoundMoney(totalWithInterest),
		InstallmentValue:  utils.RoundMoney(installmentValue),
	}, nil
}
