package profit

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shop-analytics/internal/service/ledger"
	"shop-analytics/internal/service/period"
	"shop-analytics/internal/storage"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSummarize_EndToEnd(t *testing.T) {
	p, err := period.Resolve(period.Monthly, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	done := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)
	l := ledger.Reduce(p,
		nil,
		[]storage.OrderRecord{{ID: 1, Status: "completed", CompletedAt: &done, TotalCost: dec("1000"), MaterialCost: dec("300"), LabourCost: dec("200")}},
		[]storage.OverheadEntry{{ID: 1, Month: p.Start, Amount: dec("100")}},
		nil,
		[]storage.PaymentEntry{{ID: 1, PaidAt: done, Amount: dec("600")}},
	)

	s := Summarize(l)

	assert.True(t, s.Revenue.Equal(dec("1000")))
	assert.True(t, s.TotalCosts.Equal(dec("600")))
	assert.True(t, s.NetProfit.Equal(dec("400")))
	assert.True(t, s.ProfitMargin.Equal(dec("40")))
	assert.True(t, s.CashFlow.IsZero())
	assert.True(t, s.PaymentsReceived.Equal(dec("600")))
}

func TestSummarize_Identities(t *testing.T) {
	cases := []ledger.Totals{
		{},
		{Revenue: dec("0"), MaterialCost: dec("10.10"), Overhead: dec("5")},
		{Revenue: dec("333.33"), MaterialCost: dec("100.01"), LabourCost: dec("50.5"), Overhead: dec("12.34"), OtherExpenses: dec("7.77")},
		{Revenue: dec("100"), MaterialCost: dec("150")},
	}

	for _, acc := range cases {
		s := Summarize(ledger.Ledger{Accrual: acc, Cash: ledger.Totals{PaymentsReceived: dec("42.42")}})

		total := acc.MaterialCost.Add(acc.LabourCost).Add(acc.Overhead).Add(acc.OtherExpenses)
		assert.True(t, s.TotalCosts.Equal(total))
		assert.True(t, s.NetProfit.Equal(acc.Revenue.Sub(total)))
		assert.True(t, s.CashFlow.Equal(dec("42.42").Sub(total)))

		if acc.Revenue.IsZero() {
			assert.True(t, s.ProfitMargin.IsZero())
		}
	}

	loss := Summarize(ledger.Ledger{Accrual: ledger.Totals{Revenue: dec("100"), MaterialCost: dec("150")}})
	assert.True(t, loss.ProfitMargin.Equal(dec("-50")))
}

func TestChange(t *testing.T) {
	assert.True(t, change(dec("150"), dec("100")).Equal(dec("50")))
	assert.True(t, change(dec("50"), dec("100")).Equal(dec("-50")))
	assert.True(t, change(dec("50"), dec("0")).IsZero())
	assert.True(t, change(dec("-50"), dec("-100")).Equal(dec("50")))
}
