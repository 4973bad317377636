package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shop-analytics/internal/money"
	"shop-analytics/internal/storage"
)

func (s *Storage) GetOverheadCosts(ctx context.Context, from, to time.Time) ([]storage.OverheadEntry, error) {
	const op = "storage.mysql.GetOverheadCosts"

	stmt := `SELECT id, month, COALESCE(category, ''), amount
		FROM overhead_costs
		WHERE month >= ? AND month < ?`

	rows, err := s.db.QueryContext(ctx, stmt, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения накладных расходов: %w", op, err)
	}
	defer rows.Close()

	entries := []storage.OverheadEntry{}
	for rows.Next() {
		var e storage.OverheadEntry
		var amount sql.NullString

		if err := rows.Scan(&e.ID, &e.Month, &e.Category, &amount); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
		}
		e.Amount = money.NonNegative(money.FromNull(amount))

		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк: %w", op, err)
	}

	return entries, nil
}

func (s *Storage) GetExpenses(ctx context.Context, from, to time.Time) ([]storage.ExpenseEntry, error) {
	const op = "storage.mysql.GetExpenses"

	stmt := `SELECT id, expense_date, COALESCE(category, ''), amount
		FROM expenses
		WHERE expense_date >= ? AND expense_date < ?`

	rows, err := s.db.QueryContext(ctx, stmt, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения расходов: %w", op, err)
	}
	defer rows.Close()

	entries := []storage.ExpenseEntry{}
	for rows.Next() {
		var e storage.ExpenseEntry
		var amount sql.NullString

		if err := rows.Scan(&e.ID, &e.Date, &e.Category, &amount); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
		}
		e.Amount = money.NonNegative(money.FromNull(amount))

		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк: %w", op, err)
	}

	return entries, nil
}

func (s *Storage) GetPayments(ctx context.Context, from, to time.Time) ([]storage.PaymentEntry, error) {
	const op = "storage.mysql.GetPayments"

	stmt := `SELECT id, order_id, payment_date, amount
		FROM payments
		WHERE payment_date >= ? AND payment_date < ?`

	rows, err := s.db.QueryContext(ctx, stmt, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения платежей: %w", op, err)
	}
	defer rows.Close()

	payments := []storage.PaymentEntry{}
	for rows.Next() {
		var p storage.PaymentEntry
		var orderID sql.NullInt64
		var amount sql.NullString

		if err := rows.Scan(&p.ID, &orderID, &p.PaidAt, &amount); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
		}
		if orderID.Valid {
			id := orderID.Int64
			p.OrderID = &id
		}
		p.Amount = money.NonNegative(money.FromNull(amount))

		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк: %w", op, err)
	}

	return payments, nil
}
