package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluimports/opsdesk/internal/domain"
)

func TestResolveContractStatus(t *testing.T) {
	installments := newTestSchedule(t, 3, decimal.NewFromFloat(1090.00))
	// Due dates: Apr 1, May 1, Jun 1 2024.

	t.Run("all pending before first due date is current", func(t *testing.T) {
		today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, domain.ContractStatusEmDia, ResolveContractStatus(installments, today, false))
	})

	t.Run("pending past due date is overdue", func(t *testing.T) {
		today := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, domain.ContractStatusAtrasado, ResolveContractStatus(installments, today, false))
	})

	t.Run("due today is not yet overdue", func(t *testing.T) {
		// Date-only comparison: the due day itself is still current, whatever
		// the time of day.
		today := time.Date(2024, 4, 1, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, domain.ContractStatusEmDia, ResolveContractStatus(installments, today, false))
	})

	t.Run("cancellation wins over everything", func(t *testing.T) {
		today := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, domain.ContractStatusCancelado, ResolveContractStatus(installments, today, true))
	})

	t.Run("fully paid wins regardless of date", func(t *testing.T) {
		paid := newTestSchedule(t, 3, decimal.NewFromFloat(1090.00))
		for _, inst := range paid {
			inst.AmountPaid = inst.Amount
			inst.Status = domain.InstallmentStatusPaid
		}
		today := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, domain.ContractStatusPagoIntegralmente, ResolveContractStatus(paid, today, false))
	})

	t.Run("empty set is current", func(t *testing.T) {
		assert.Equal(t, domain.ContractStatusEmDia, ResolveContractStatus(nil, time.Now(), false))
	})
}

func TestResolveContractStatus_Idempotent(t *testing.T) {
	installments := newTestSchedule(t, 3, decimal.NewFromInt(500))
	today := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	first := ResolveContractStatus(installments, today, false)
	second := ResolveContractStatus(installments, today, false)
	assert.Equal(t, first, second)
}

func TestEffectiveStatus(t *testing.T) {
	installments := newTestSchedule(t, 2, decimal.NewFromInt(500))
	// Due Apr 1 and May 1 2024.

	beforeDue := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	afterFirst := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, domain.InstallmentStatusPending, EffectiveStatus(installments[0], beforeDue))
	assert.Equal(t, domain.InstallmentStatusOverdue, EffectiveStatus(installments[0], afterFirst))
	assert.Equal(t, domain.InstallmentStatusPending, EffectiveStatus(installments[1], afterFirst))

	// A paid installment never projects to overdue.
	installments[0].AmountPaid = installments[0].Amount
	installments[0].Status = domain.InstallmentStatusPaid
	assert.Equal(t, domain.InstallmentStatusPaid, EffectiveStatus(installments[0], afterFirst))
}

func TestSweepOverdue(t *testing.T) {
	installments := newTestSchedule(t, 3, decimal.NewFromInt(500))
	// Due Apr 1, May 1, Jun 1 2024.
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	changed := SweepOverdue(installments, today)
	assert.Equal(t, 2, changed)
	assert.Equal(t, domain.InstallmentStatusOverdue, installments[0].Status)
	assert.Equal(t, domain.InstallmentStatusOverdue, installments[1].Status)
	assert.Equal(t, domain.InstallmentStatusPending, installments[2].Status)

	// Second sweep is a no-op.
	assert.Equal(t, 0, SweepOverdue(installments, today))
}

func TestTotals(t *testing.T) {
	installments := newTestSchedule(t, 3, decimal.NewFromInt(500))
	require.True(t, TotalPaid(installments).IsZero())
	require.True(t, TotalOutstanding(installments).Equal(decimal.NewFromInt(1500)))

	_, err := ApplyPayment(installments, decimal.NewFromInt(700), time.Now(), "cash")
	require.NoError(t, err)

	assert.True(t, TotalPaid(installments).Equal(decimal.NewFromInt(700)))
	assert.True(t, TotalOutstanding(installments).Equal(decimal.NewFromInt(800)))
}
