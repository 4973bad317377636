package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderRecord struct {
	ID           int64           `json:"id"`
	Status       string          `json:"status"`
	OrderDate    time.Time       `json:"order_date"`
	CompletedAt  *time.Time      `json:"completed_at"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	LabourCost   decimal.Decimal `json:"labour_cost"`
	OverheadCost decimal.Decimal `json:"overhead_cost"`
}

type OverheadEntry struct {
	ID       int64           `json:"id"`
	Month    time.Time       `json:"month"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type ExpenseEntry struct {
	ID       int64           `json:"id"`
	Date     time.Time       `json:"date"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type PaymentEntry struct {
	ID      int64           `json:"id"`
	OrderID *int64          `json:"order_id"`
	PaidAt  time.Time       `json:"paid_at"`
	Amount  decimal.Decimal `json:"amount"`
}

// StageRecord — одно выполнение этапа производства в партии.
type StageRecord struct {
	ID          int64      `json:"id"`
	BatchID     int64      `json:"batch_id"`
	StageName   string     `json:"stage_name"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type Material struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	OnHand        decimal.Decimal `json:"on_hand"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
}

// MaterialBooking — потребность партии в материале (production_materials).
type MaterialBooking struct {
	BatchID      int64           `json:"batch_id"`
	BatchStatus  string          `json:"batch_status"`
	MaterialID   int64           `json:"material_id"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
}
