package profit

import (
	"github.com/shopspring/decimal"
	"shop-analytics/internal/money"
	"shop-analytics/internal/service/ledger"
	"shop-analytics/internal/service/period"
)

var hundred = decimal.NewFromInt(100)

// FinancialSummary — P&L одного периода. Выручка и затраты по методу начисления,
// поступления — по кассовому.
type FinancialSummary struct {
	Period           period.Period   `json:"period"`
	Revenue          decimal.Decimal `json:"revenue"`
	MaterialCost     decimal.Decimal `json:"material_cost"`
	LabourCost       decimal.Decimal `json:"labour_cost"`
	Overhead         decimal.Decimal `json:"overhead"`
	OtherExpenses    decimal.Decimal `json:"other_expenses"`
	PaymentsReceived decimal.Decimal `json:"payments_received"`
	TotalCosts       decimal.Decimal `json:"total_costs"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	ProfitMargin     decimal.Decimal `json:"profit_margin"`
	CashFlow         decimal.Decimal `json:"cash_flow"`

	TotalOrders     int `json:"total_orders"`
	PendingOrders   int `json:"pending_orders"`
	CancelledOrders int `json:"cancelled_orders"`
	CompletedOrders int `json:"completed_orders"`
}

// Summarize не ходит в хранилище, только считает по итогам леджера.
func Summarize(l ledger.Ledger) FinancialSummary {
	acc := l.Accrual

	totalCosts := acc.MaterialCost.Add(acc.LabourCost).Add(acc.Overhead).Add(acc.OtherExpenses)
	netProfit := acc.Revenue.Sub(totalCosts)

	return FinancialSummary{
		Period:           l.Period,
		Revenue:          acc.Revenue,
		MaterialCost:     acc.MaterialCost,
		LabourCost:       acc.LabourCost,
		Overhead:         acc.Overhead,
		OtherExpenses:    acc.OtherExpenses,
		PaymentsReceived: l.Cash.PaymentsReceived,
		TotalCosts:       totalCosts,
		NetProfit:        netProfit,
		ProfitMargin:     percentOf(netProfit, acc.Revenue),
		CashFlow:         l.Cash.PaymentsReceived.Sub(totalCosts),
		TotalOrders:      l.Counts.Total,
		PendingOrders:    l.Counts.Pending,
		CancelledOrders:  l.Counts.Cancelled,
		CompletedOrders:  l.Counts.Completed,
	}
}

// percentOf возвращает part/whole*100, округлённое до копеек; 0 при whole == 0.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return money.Round(part.Div(whole).Mul(hundred))
}

// change: относительное изменение в процентах от предыдущего значения.
func change(cur, prev decimal.Decimal) decimal.Decimal {
	return percentOf(cur.Sub(prev), prev.Abs())
}
