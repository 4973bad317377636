package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"shop-analytics/internal/constants"
	"shop-analytics/internal/money"
	"shop-analytics/internal/storage"
)

func (s *Storage) GetStagesByStatus(ctx context.Context, status string) ([]storage.StageRecord, error) {
	const op = "storage.mysql.GetStagesByStatus"

	stmt := `SELECT id, batch_id, stage_name, status, started_at, completed_at
		FROM production_stages
		WHERE status = ? AND started_at IS NOT NULL`

	rows, err := s.db.QueryContext(ctx, stmt, status)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения этапов производства: %w", op, err)
	}
	defer rows.Close()

	stages := []storage.StageRecord{}
	for rows.Next() {
		var st storage.StageRecord
		var completedAt sql.NullTime

		if err := rows.Scan(&st.ID, &st.BatchID, &st.StageName, &st.Status, &st.StartedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
		}
		if completedAt.Valid {
			t := completedAt.Time
			st.CompletedAt = &t
		}

		stages = append(stages, st)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк: %w", op, err)
	}

	return stages, nil
}

func (s *Storage) GetMaterials(ctx context.Context) ([]storage.Material, error) {
	const op = "storage.mysql.GetMaterials"

	stmt := `SELECT id, name, COALESCE(unit, ''), quantity, min_stock_level FROM materials`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения материалов: %w", op, err)
	}
	defer rows.Close()

	materials := []storage.Material{}
	for rows.Next() {
		var m storage.Material
		var onHand, minLevel sql.NullString

		if err := rows.Scan(&m.ID, &m.Name, &m.Unit, &onHand, &minLevel); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
		}
		m.OnHand = money.FromNull(onHand)
		m.MinStockLevel = money.FromNull(minLevel)

		materials = append(materials, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк: %w", op, err)
	}

	return materials, nil
}

// GetOpenBookings возвращает потребности материалов по партиям, которые ещё не завершены.
func (s *Storage) GetOpenBookings(ctx context.Context) ([]storage.MaterialBooking, error) {
	const op = "storage.mysql.GetOpenBookings"

	stmt := `SELECT pm.batch_id, b.status, pm.material_id, pm.quantity_used
		FROM production_materials pm
		JOIN production_batches b ON b.id = pm.batch_id
		WHERE b.status IS NULL OR b.status <> ?`

	rows, err := s.db.QueryContext(ctx, stmt, constants.BatchCompleted)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения броней материалов: %w", op, err)
	}
	defer rows.Close()

	bookings := []storage.MaterialBooking{}
	for rows.Next() {
		var b storage.MaterialBooking
		var status, qty sql.NullString

		// партия без статуса ещё открыта
		if err := rows.Scan(&b.BatchID, &status, &b.MaterialID, &qty); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
		}
		b.BatchStatus = status.String
		b.QuantityUsed = money.NonNegative(money.FromNull(qty))

		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк: %w", op, err)
	}

	return bookings, nil
}
