package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmortize_ClearsBalance(t *testing.T) {
	s := Amortize(400_000, 6, 30, 12)

	require.Len(t, s.Rows, 360)
	assert.Equal(t, 0.0, s.Rows[len(s.Rows)-1].Balance)
	assert.InDelta(t, 2_398.20, s.Payment, 0.01)

	prev := s.Principal
	var principalPaid float64
	for _, row := range s.Rows {
		require.LessOrEqual(t, row.Balance, prev, "balance rose at period %d", row.Period)
		prev = row.Balance
		principalPaid += row.Principal
	}
	assert.InDelta(t, 400_000, principalPaid, 0.01)
	assert.InDelta(t, s.Payment*360-400_000, s.TotalInterest(), 0.5)
}

func TestAmortize_ZeroRate(t *testing.T) {
	s := Amortize(1_200, 0, 1, 12)

	assert.Equal(t, 100.0, s.Payment)
	assert.Equal(t, 0.0, s.TotalInterest())
	assert.InDelta(t, 600, s.Rows[5].Balance, 1e-9)
	assert.Equal(t, 0.0, s.BalanceAfterYear(1))
}

func TestSchedule_BalanceAfterYear(t *testing.T) {
	s := Amortize(300_000, 5, 10, 12)

	assert.Equal(t, 300_000.0, s.BalanceAfterYear(0))
	assert.Equal(t, s.Rows[11].Balance, s.BalanceAfterYear(1))
	assert.Equal(t, 0.0, s.BalanceAfterYear(10))
	assert.Equal(t, 0.0, s.BalanceAfterYear(25))
	assert.Less(t, s.BalanceAfterYear(5), s.BalanceAfterYear(4))
}

func TestPeriodicPayment_NoPeriods(t *testing.T) {
	assert.Equal(t, 0.0, PeriodicPayment(1_000, 0.01, 0))
}
