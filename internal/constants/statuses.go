package constants

// Статусы заказов
const (
	OrderPending    = "pending"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Статусы этапов и партий производства
const (
	StageInProgress = "in_progress"
	StageCompleted  = "completed"

	BatchCompleted = "completed"
)

var (
	// Выручка признаётся только по этим статусам
	RevenueStatuses = map[string]bool{
		OrderCompleted: true,
		OrderDelivered: true,
	}

	PendingStatuses = map[string]bool{
		OrderPending:    true,
		OrderInProgress: true,
	}

	CancelledStatuses = map[string]bool{
		OrderCancelled: true,
		"canceled":     true,
	}

	// Труд уже учтён в labour_cost заказа, в прочих расходах его не считаем
	LabourExpenseCategories = map[string]bool{
		"labour": true,
		"labor":  true,
	}
)
