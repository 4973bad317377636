package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shop-analytics/internal/constants"
	"shop-analytics/internal/money"
	"shop-analytics/internal/storage"
)

const orderColumns = `id, status, order_date, completed_at, total_cost, material_cost, labour_cost, overhead_cost`

// GetOrdersPlaced отдаёт заказы, созданные в [from, to), в любом статусе.
func (s *Storage) GetOrdersPlaced(ctx context.Context, from, to time.Time) ([]storage.OrderRecord, error) {
	const op = "storage.mysql.GetOrdersPlaced"

	stmt := `SELECT ` + orderColumns + `
		FROM orders
		WHERE order_date >= ? AND order_date < ?`

	orders, err := s.queryOrders(ctx, stmt, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения созданных заказов: %w", op, err)
	}

	return orders, nil
}

// GetOrdersCompleted отдаёт заказы completed/delivered, завершённые в [from, to).
func (s *Storage) GetOrdersCompleted(ctx context.Context, from, to time.Time) ([]storage.OrderRecord, error) {
	const op = "storage.mysql.GetOrdersCompleted"

	stmt := `SELECT ` + orderColumns + `
		FROM orders
		WHERE status IN (?, ?)
		  AND completed_at IS NOT NULL
		  AND completed_at >= ? AND completed_at < ?`

	orders, err := s.queryOrders(ctx, stmt, constants.OrderCompleted, constants.OrderDelivered, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения завершённых заказов: %w", op, err)
	}

	return orders, nil
}

func (s *Storage) queryOrders(ctx context.Context, stmt string, args ...interface{}) ([]storage.OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []storage.OrderRecord{}
	for rows.Next() {
		var o storage.OrderRecord
		var completedAt sql.NullTime
		var total, material, labour, overheadCost sql.NullString

		err := rows.Scan(&o.ID, &o.Status, &o.OrderDate, &completedAt, &total, &material, &labour, &overheadCost)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строк: %w", err)
		}

		if completedAt.Valid {
			t := completedAt.Time
			o.CompletedAt = &t
		}

		o.TotalCost = money.NonNegative(money.FromNull(total))
		o.MaterialCost = money.NonNegative(money.FromNull(material))
		o.LabourCost = money.NonNegative(money.FromNull(labour))
		o.OverheadCost = money.NonNegative(money.FromNull(overheadCost))

		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}

	return orders, nil
}
