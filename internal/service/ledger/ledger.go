package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"shop-analytics/internal/constants"
	"shop-analytics/internal/money"
	"shop-analytics/internal/service/period"
	"shop-analytics/internal/storage"
)

// Storage читает пять категорий проводок. Диапазон полуоткрытый: [from, to).
type Storage interface {
	GetOrdersPlaced(ctx context.Context, from, to time.Time) ([]storage.OrderRecord, error)
	GetOrdersCompleted(ctx context.Context, from, to time.Time) ([]storage.OrderRecord, error)
	GetOverheadCosts(ctx context.Context, from, to time.Time) ([]storage.OverheadEntry, error)
	GetExpenses(ctx context.Context, from, to time.Time) ([]storage.ExpenseEntry, error)
	GetPayments(ctx context.Context, from, to time.Time) ([]storage.PaymentEntry, error)
}

// Totals — денежные итоги периода на одной базе учёта.
type Totals struct {
	Revenue          decimal.Decimal `json:"revenue"`
	MaterialCost     decimal.Decimal `json:"material_cost"`
	LabourCost       decimal.Decimal `json:"labour_cost"`
	Overhead         decimal.Decimal `json:"overhead"`
	OtherExpenses    decimal.Decimal `json:"other_expenses"`
	PaymentsReceived decimal.Decimal `json:"payments_received"`
}

// OrderCounts считаются по заказам, созданным в периоде, а не завершённым.
type OrderCounts struct {
	Total     int `json:"total_orders"`
	Pending   int `json:"pending_orders"`
	Cancelled int `json:"cancelled_orders"`
	Completed int `json:"completed_orders"`
}

type Ledger struct {
	Period  period.Period `json:"period"`
	Accrual Totals        `json:"accrual"`
	Cash    Totals        `json:"cash"`
	Counts  OrderCounts   `json:"counts"`
}

type Aggregator struct {
	storage Storage
}

func NewAggregator(storage Storage) *Aggregator {
	return &Aggregator{storage: storage}
}

// Aggregate читает все пять категорий параллельно и сводит их в итоги.
// Если не прочиталась хоть одна категория, итогов нет вообще.
func (a *Aggregator) Aggregate(ctx context.Context, p period.Period) (Ledger, error) {
	var (
		placed    []storage.OrderRecord
		completed []storage.OrderRecord
		overhead  []storage.OverheadEntry
		expenses  []storage.ExpenseEntry
		payments  []storage.PaymentEntry
	)

	from, to := p.Start, p.EndExclusive()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		placed, err = a.storage.GetOrdersPlaced(gCtx, from, to)
		if err != nil {
			return storage.NewReadError(storage.SourceOrdersPlaced, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		completed, err = a.storage.GetOrdersCompleted(gCtx, from, to)
		if err != nil {
			return storage.NewReadError(storage.SourceOrdersCompleted, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		overhead, err = a.storage.GetOverheadCosts(gCtx, from, to)
		if err != nil {
			return storage.NewReadError(storage.SourceOverhead, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = a.storage.GetExpenses(gCtx, from, to)
		if err != nil {
			return storage.NewReadError(storage.SourceExpenses, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		payments, err = a.storage.GetPayments(gCtx, from, to)
		if err != nil {
			return storage.NewReadError(storage.SourcePayments, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Ledger{}, err
	}

	return Reduce(p, placed, completed, overhead, expenses, payments), nil
}

// Reduce сворачивает строки в итоги без побочных эффектов. Строки вне периода игнорируются,
// даже если хранилище их вернуло.
func Reduce(
	p period.Period,
	placed []storage.OrderRecord,
	completed []storage.OrderRecord,
	overhead []storage.OverheadEntry,
	expenses []storage.ExpenseEntry,
	payments []storage.PaymentEntry,
) Ledger {
	var accrual, cash Totals

	for _, o := range completed {
		if !constants.RevenueStatuses[normalize(o.Status)] || o.CompletedAt == nil || !p.Contains(*o.CompletedAt) {
			continue
		}
		accrual.Revenue = accrual.Revenue.Add(money.NonNegative(o.TotalCost))
		accrual.MaterialCost = accrual.MaterialCost.Add(money.NonNegative(o.MaterialCost))
		accrual.LabourCost = accrual.LabourCost.Add(money.NonNegative(o.LabourCost))
	}

	var overheadSum decimal.Decimal
	for _, e := range overhead {
		if !p.Contains(e.Month) {
			continue
		}
		overheadSum = overheadSum.Add(money.NonNegative(e.Amount))
	}

	var otherSum decimal.Decimal
	for _, e := range expenses {
		if !p.Contains(e.Date) || constants.LabourExpenseCategories[normalize(e.Category)] {
			continue
		}
		otherSum = otherSum.Add(money.NonNegative(e.Amount))
	}

	var paid decimal.Decimal
	for _, pay := range payments {
		if !p.Contains(pay.PaidAt) {
			continue
		}
		paid = paid.Add(money.NonNegative(pay.Amount))
	}

	accrual.Overhead = overheadSum
	accrual.OtherExpenses = otherSum

	// Кассовый метод: приход = фактические платежи, расход = датированные в окне накладные и прочие расходы
	cash.Revenue = paid
	cash.PaymentsReceived = paid
	cash.Overhead = overheadSum
	cash.OtherExpenses = otherSum

	return Ledger{
		Period:  p,
		Accrual: accrual.rounded(),
		Cash:    cash.rounded(),
		Counts:  countOrders(p, placed),
	}
}

func countOrders(p period.Period, placed []storage.OrderRecord) OrderCounts {
	var c OrderCounts
	for _, o := range placed {
		if !p.Contains(o.OrderDate) {
			continue
		}
		c.Total++

		status := normalize(o.Status)
		switch {
		case constants.PendingStatuses[status]:
			c.Pending++
		case constants.CancelledStatuses[status]:
			c.Cancelled++
		case constants.RevenueStatuses[status]:
			c.Completed++
		}
	}
	return c
}

func (t Totals) rounded() Totals {
	return Totals{
		Revenue:          money.Round(t.Revenue),
		MaterialCost:     money.Round(t.MaterialCost),
		LabourCost:       money.Round(t.LabourCost),
		Overhead:         money.Round(t.Overhead),
		OtherExpenses:    money.Round(t.OtherExpenses),
		PaymentsReceived: money.Round(t.PaymentsReceived),
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
