package storage

import "fmt"

// Источники данных, по которым строятся отчёты
const (
	SourceOrdersPlaced    = "orders_placed"
	SourceOrdersCompleted = "orders_completed"
	SourceOverhead        = "overhead_costs"
	SourceExpenses        = "expenses"
	SourcePayments        = "payments"
	SourceStagesCompleted = "stages_completed"
	SourceStagesActive    = "stages_in_progress"
	SourceMaterials       = "materials"
	SourceBookings        = "material_bookings"
)

// ReadError — чтение одной категории из хранилища не удалось.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("source read %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func NewReadError(source string, err error) error {
	return &ReadError{Source: source, Err: err}
}
