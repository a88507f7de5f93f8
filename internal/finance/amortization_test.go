package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAmortization(t *testing.T) {
	tests := []struct {
		name             string
		productValue     decimal.Decimal
		downPayment      decimal.Decimal
		installmentCount int
		annualRate       decimal.Decimal
		expected         Terms
	}{
		{
			name:             "three installments at 36 percent",
			productValue:     decimal.NewFromInt(3000),
			downPayment:      decimal.Zero,
			installmentCount: 3,
			annualRate:       decimal.NewFromFloat(0.36),
			expected: Terms{
				// monthlyRate 0.03, interest 3000*0.03*3 = 270
				FinancedAmount:    decimal.NewFromInt(3000),
				TotalWithInterest: decimal.NewFromInt(3270),
				InstallmentValue:  decimal.NewFromInt(1090),
			},
		},
		{
			name:             "down payment reduces financed amount",
			productValue:     decimal.NewFromInt(3000),
			downPayment:      decimal.NewFromInt(1000),
			installmentCount: 2,
			annualRate:       decimal.NewFromFloat(0.36),
			expected: Terms{
				// interest 2000*0.03*2 = 120
				FinancedAmount:    decimal.NewFromInt(2000),
				TotalWithInterest: decimal.NewFromInt(2120),
				InstallmentValue:  decimal.NewFromInt(1060),
			},
		},
		{
			name:             "zero interest rate",
			productValue:     decimal.NewFromInt(1200),
			downPayment:      decimal.Zero,
			installmentCount: 12,
			annualRate:       decimal.Zero,
			expected: Terms{
				FinancedAmount:    decimal.NewFromInt(1200),
				TotalWithInterest: decimal.NewFromInt(1200),
				InstallmentValue:  decimal.NewFromInt(100),
			},
		},
		{
			name:             "down payment covers full value",
			productValue:     decimal.NewFromInt(2500),
			downPayment:      decimal.NewFromInt(2500),
			installmentCount: 6,
			annualRate:       decimal.NewFromFloat(0.35),
			expected: Terms{
				FinancedAmount:    decimal.Zero,
				TotalWithInterest: decimal.Zero,
				InstallmentValue:  decimal.Zero,
			},
		},
		{
			name:             "down payment exceeds value",
			productValue:     decimal.NewFromInt(2500),
			downPayment:      decimal.NewFromInt(9000),
			installmentCount: 6,
			annualRate:       decimal.NewFromFloat(0.35),
			expected: Terms{
				FinancedAmount:    decimal.Zero,
				TotalWithInterest: decimal.Zero,
				InstallmentValue:  decimal.Zero,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, err := ComputeAmortization(tt.productValue, tt.downPayment, tt.installmentCount, tt.annualRate)
			require.NoError(t, err)
			assert.True(t, terms.FinancedAmount.Equal(tt.expected.FinancedAmount),
				"financed amount: expected %v, got %v", tt.expected.FinancedAmount, terms.FinancedAmount)
			assert.True(t, terms.TotalWithInterest.Equal(tt.expected.TotalWithInterest),
				"total with interest: expected %v, got %v", tt.expected.TotalWithInterest, terms.TotalWithInterest)
			assert.True(t, terms.InstallmentValue.Equal(tt.expected.InstallmentValue),
				"installment value: expected %v, got %v", tt.expected.InstallmentValue, terms.InstallmentValue)
		})
	}
}

func TestComputeAmortization_InvalidInput(t *testing.T) {
	tests := []struct {
		name             string
		productValue     decimal.Decimal
		downPayment      decimal.Decimal
		installmentCount int
		annualRate       decimal.Decimal
	}{
		{"zero installments", decimal.NewFromInt(1000), decimal.Zero, 0, decimal.NewFromFloat(0.35)},
		{"negative installments", decimal.NewFromInt(1000), decimal.Zero, -3, decimal.NewFromFloat(0.35)},
		{"zero product value", decimal.Zero, decimal.Zero, 3, decimal.NewFromFloat(0.35)},
		{"negative product value", decimal.NewFromInt(-50), decimal.Zero, 3, decimal.NewFromFloat(0.35)},
		{"negative down payment", decimal.NewFromInt(1000), decimal.NewFromInt(-1), 3, decimal.NewFromFloat(0.35)},
		{"negative rate", decimal.NewFromInt(1000), decimal.Zero, 3, decimal.NewFromFloat(-0.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeAmortization(tt.productValue, tt.downPayment, tt.installmentCount, tt.annualRate)
			assert.Error(t, err)
		})
	}
}

// The flat-interest identity must hold within rounding tolerance, and the sum
// of equal installments must stay within count*0.01 of the rounded total.
func TestComputeAmortization_RoundingBounds(t *testing.T) {
	cases := []struct {
		productValue decimal.Decimal
		downPayment  decimal.Decimal
		count        int
		rate         decimal.Decimal
	}{
		{decimal.NewFromFloat(2749.99), decimal.NewFromFloat(350.50), 7, decimal.NewFromFloat(0.35)},
		{decimal.NewFromFloat(9999.99), decimal.Zero, 24, decimal.NewFromFloat(0.24)},
		{decimal.NewFromFloat(101.01), decimal.NewFromFloat(0.01), 13, decimal.NewFromFloat(0.19)},
		{decimal.NewFromFloat(4333.33), decimal.NewFromFloat(1234.56), 11, decimal.NewFromFloat(0.42)},
	}

	for _, c := range cases {
		terms, err := ComputeAmortization(c.productValue, c.downPayment, c.count, c.rate)
		require.NoError(t, err)

		financed := c.productValue.Sub(c.downPayment)
		interest := financed.Mul(c.rate.Div(decimal.NewFromInt(12))).Mul(decimal.NewFromInt(int64(c.count)))
		expectedTotal := financed.Add(interest)

		tolerance := decimal.NewFromFloat(0.01)
		assert.True(t, terms.TotalWithInterest.Sub(expectedTotal).Abs().LessThanOrEqual(tolerance),
			"total %v drifted from identity %v", terms.TotalWithInterest, expectedTotal)

		sum := terms.InstallmentValue.Mul(decimal.NewFromInt(int64(c.count)))
		bound := decimal.NewFromFloat(0.01).Mul(decimal.NewFromInt(int64(c.count)))
		assert.True(t, sum.Sub(terms.TotalWithInterest).Abs().LessThanOrEqual(bound),
			"installment sum %v drifted more than %v from total %v", sum, bound, terms.TotalWithInterest)
	}
}
